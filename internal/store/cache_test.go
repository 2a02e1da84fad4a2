package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectoryCache_PutGetRoundTrip(t *testing.T) {
	cache, err := NewDirectoryCache(t.TempDir())
	require.NoError(t, err)

	raw := []byte(`{"uid":"uid-1","name":"Brownies","hash":"h1"}`)
	require.NoError(t, cache.Put("uid-1", raw))

	got, ok := cache.Get("uid-1", "h1")
	require.True(t, ok)
	assert.Equal(t, raw, got)
}

func TestDirectoryCache_HashMismatchIsMiss(t *testing.T) {
	cache, err := NewDirectoryCache(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, cache.Put("uid-1", []byte(`{"uid":"uid-1","hash":"h1"}`)))

	_, ok := cache.Get("uid-1", "h2")
	assert.False(t, ok)
}

func TestDirectoryCache_MissingEntryIsMiss(t *testing.T) {
	cache, err := NewDirectoryCache(t.TempDir())
	require.NoError(t, err)

	_, ok := cache.Get("uid-unknown", "h1")
	assert.False(t, ok)
}

func TestDirectoryCache_CorruptEntryIsMiss(t *testing.T) {
	dir := t.TempDir()
	cache, err := NewDirectoryCache(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "uid-1.json"), []byte("not json"), 0o644))

	_, ok := cache.Get("uid-1", "h1")
	assert.False(t, ok)
}

func TestDirectoryCache_Remove(t *testing.T) {
	cache, err := NewDirectoryCache(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, cache.Put("uid-1", []byte(`{"uid":"uid-1","hash":"h1"}`)))
	cache.Remove("uid-1")

	_, ok := cache.Get("uid-1", "h1")
	assert.False(t, ok)
}

func TestNewDirectoryCache_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")

	_, err := NewDirectoryCache(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
