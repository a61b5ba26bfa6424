package file

import (
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore_Success(t *testing.T) {
	tmpDir := t.TempDir()

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Equal(t, filepath.Join(tmpDir, "config.toml"), store.Path())
}

func TestNewConfigStore_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	if runtime.GOOS == "windows" {
		t.Setenv("USERPROFILE", home)
	}

	store, err := NewConfigStore("")

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".ensaio", "config.toml"), store.Path())
}

func TestNewConfigStore_WithNestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")

	store, err := NewConfigStore(dir)

	require.NoError(t, err)
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, filepath.Join(dir, "config.toml"), store.Path())
}

func TestNewConfigStore_LoadCorruptedFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte("not = [valid"), 0600))

	store, err := NewConfigStore(tmpDir)

	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestConfigStore_SetAndGet(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Set("display.locale", "pt-BR"))

	val, ok := store.Get("display.locale")
	assert.True(t, ok)
	assert.Equal(t, "pt-BR", val)
	assert.Equal(t, "pt-BR", store.GetString("display.locale"))
}

func TestConfigStore_Get_NotFound(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	_, ok := store.Get("missing")
	assert.False(t, ok)
	assert.Empty(t, store.GetString("missing"))
	assert.Zero(t, store.GetInt("missing"))
	assert.Zero(t, store.GetFloat("missing"))
}

func TestConfigStore_TypedGetters_WrongType(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("k", true))

	assert.Empty(t, store.GetString("k"))
	assert.Zero(t, store.GetInt("k"))
	assert.Zero(t, store.GetFloat("k"))
}

func TestConfigStore_Persistence(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("display.locale", "en-US"))
	require.NoError(t, store.Set("display.page_size", 25))
	require.NoError(t, store.Set("server.rate_limit", 2.5))
	require.NoError(t, store.Set("server.rate_limit_burst", 5))

	reopened, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, "en-US", reopened.GetString("display.locale"))
	assert.Equal(t, 25, reopened.GetInt("display.page_size"))
	assert.Equal(t, 2.5, reopened.GetFloat("server.rate_limit"))
	assert.Equal(t, 5.0, reopened.GetFloat("server.rate_limit_burst"))
}

func TestConfigStore_WritesTables(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)

	require.NoError(t, store.Set("display.locale", "pt-BR"))
	require.NoError(t, store.Set("server.addr", ":8080"))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "[display]")
	assert.Contains(t, string(data), "[server]")
	assert.NotContains(t, string(data), "'display.locale'")
}

func TestConfigStore_Load_HandWrittenFile(t *testing.T) {
	tmpDir := t.TempDir()
	content := `
[display]
locale = "en-GB"
page_size = 30

[server]
url = "http://studio.local:9000"
rate_limit = 10
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), []byte(content), 0600))

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	assert.Equal(t, "en-GB", store.GetString("display.locale"))
	assert.Equal(t, 30, store.GetInt("display.page_size"))
	assert.Equal(t, "http://studio.local:9000", store.GetString("server.url"))
	assert.Equal(t, 10.0, store.GetFloat("server.rate_limit"))
}

func TestConfigStore_Load_EmptyFile(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.toml"), nil, 0600))

	store, err := NewConfigStore(tmpDir)

	require.NoError(t, err)
	_, ok := store.Get("anything")
	assert.False(t, ok)
}

func TestConfigStore_Load_PicksUpExternalEdits(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewConfigStore(tmpDir)
	require.NoError(t, err)
	require.NoError(t, store.Set("display.locale", "pt-BR"))

	require.NoError(t, os.WriteFile(store.Path(), []byte("[display]\nlocale = \"fr-FR\"\n"), 0600))
	require.NoError(t, store.Load())

	assert.Equal(t, "fr-FR", store.GetString("display.locale"))
}

func TestConfigStore_Load_FileRemoved(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("display.locale", "pt-BR"))

	require.NoError(t, os.Remove(store.Path()))
	require.NoError(t, store.Load())

	_, ok := store.Get("display.locale")
	assert.False(t, ok)
}

func TestConfigStore_FilePermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on windows")
	}
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.Set("k", "v"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestConfigStore_Save_Explicit(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save())

	_, err = os.Stat(store.Path())
	assert.NoError(t, err)
}

func TestConfigStore_Concurrency(t *testing.T) {
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = store.Set("display.page_size", i+1)
			_ = store.GetInt("display.page_size")
		}(i)
	}
	wg.Wait()

	assert.Positive(t, store.GetInt("display.page_size"))
}

func TestNestMap(t *testing.T) {
	nested := nestMap(map[string]any{
		"display.locale":    "pt-BR",
		"display.page_size": 10,
		"top":               true,
	})

	display, ok := nested["display"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "pt-BR", display["locale"])
	assert.Equal(t, 10, display["page_size"])
	assert.Equal(t, true, nested["top"])
}

func TestNestMap_FlattenRoundTrip(t *testing.T) {
	flat := map[string]any{
		"a.b.c": 1,
		"a.d":   "x",
		"e":     2.5,
	}

	assert.Equal(t, flat, flattenMap(nestMap(flat), ""))
}
