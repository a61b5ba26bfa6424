package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
}

func TestDefaultKeyMap_Bindings(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		binding key.Binding
		keys    []string
	}{
		{"quit", km.Quit, []string{"q", "ctrl+c"}},
		{"help", km.Help, []string{"?"}},
		{"back", km.Back, []string{"esc"}},
		{"up", km.Up, []string{"up", "k"}},
		{"down", km.Down, []string{"down", "j"}},
		{"select", km.Select, []string{"enter"}},
		{"search", km.Search, []string{"/"}},
		{"status", km.StatusFilter, []string{"s"}},
		{"payment", km.PaymentFilter, []string{"p"}},
		{"new", km.New, []string{"n"}},
		{"delete", km.Delete, []string{"d", "delete"}},
		{"finish", km.Finish, []string{"f"}},
		{"reload", km.Reload, []string{"r"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.keys, tt.binding.Keys())
			assert.NotEmpty(t, tt.binding.Help().Desc)
		})
	}
}

func TestKeyMap_ShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	help := km.ShortHelp()

	require.Len(t, help, 2)
	assert.Equal(t, "q", help[0].Help().Key)
	assert.Equal(t, "?", help[1].Help().Key)
}

func TestKeyMap_GridHelp(t *testing.T) {
	km := DefaultKeyMap()

	keys := make([]string, 0)
	for _, b := range km.GridHelp() {
		keys = append(keys, b.Help().Key)
	}

	assert.Equal(t, []string{"/", "s", "p", "enter", "n", "d", "f", "r", "esc"}, keys)
}

func TestKeyMap_FullHelp(t *testing.T) {
	km := DefaultKeyMap()

	groups := km.FullHelp()

	require.Len(t, groups, 4)
	for _, g := range groups {
		assert.NotEmpty(t, g)
	}
}

func TestMatches(t *testing.T) {
	km := DefaultKeyMap()

	assert.True(t, Matches("q", km.Quit))
	assert.True(t, Matches("ctrl+c", km.Quit))
	assert.True(t, Matches("/", km.Search))
	assert.False(t, Matches("x", km.Quit))
	assert.False(t, Matches("", km.Search))
}
