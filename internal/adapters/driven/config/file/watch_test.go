package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_HandleFsEvent(t *testing.T) {
	tests := []struct {
		name     string
		file     string
		op       fsnotify.Op
		expected bool
	}{
		{"write config", "config.toml", fsnotify.Write, true},
		{"create config", "config.toml", fsnotify.Create, true},
		{"remove config", "config.toml", fsnotify.Remove, true},
		{"rename config", "config.toml", fsnotify.Rename, true},
		{"chmod config - ignored", "config.toml", fsnotify.Chmod, false},
		{"other file - ignored", "notes.txt", fsnotify.Write, false},
		{"editor swap file - ignored", ".config.toml.swp", fsnotify.Write, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			store, err := NewConfigStore(dir)
			require.NoError(t, err)
			w := NewWatcher(store)

			got := w.handleFsEvent(fsnotify.Event{Name: filepath.Join(dir, tt.file), Op: tt.op})

			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestWatcher_HandleFsEvent_ReloadsStore(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(store.Path(), []byte("[display]\npage_size = 42\n"), 0600))

	reloaded := NewWatcher(store).handleFsEvent(fsnotify.Event{Name: store.Path(), Op: fsnotify.Write})

	assert.True(t, reloaded)
	assert.Equal(t, 42, store.GetInt("display.page_size"))
}

func TestWatcher_HandleFsEvent_BadFileKeepsOldValues(t *testing.T) {
	dir := t.TempDir()
	store, err := NewConfigStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Set("display.locale", "pt-BR"))
	require.NoError(t, os.WriteFile(store.Path(), []byte("broken = ["), 0600))

	reloaded := NewWatcher(store).handleFsEvent(fsnotify.Event{Name: store.Path(), Op: fsnotify.Write})

	assert.False(t, reloaded)
	assert.Equal(t, "pt-BR", store.GetString("display.locale"))
}

func TestWatcher_Watch(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("display.locale", "pt-BR"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes, err := NewWatcher(store).Watch(ctx)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(store.Path(), []byte("[display]\nlocale = \"en-US\"\n"), 0600))

	// Truncation and write can arrive as separate events.
	timeout := time.After(5 * time.Second)
	for store.GetString("display.locale") != "en-US" {
		select {
		case <-changes:
		case <-timeout:
			t.Fatal("timed out waiting for config reload")
		}
	}
}

func TestWatcher_Watch_ClosesOnCancel(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	changes, err := NewWatcher(store).Watch(ctx)
	require.NoError(t, err)

	cancel()

	select {
	case _, ok := <-changes:
		assert.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}
