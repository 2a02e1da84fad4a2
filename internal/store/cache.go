package store

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/briantkatch/paprika-mcp/internal/errors"
)

// DirectoryCache stores raw recipe JSON on disk, one file per recipe UID,
// validated against the sync index hash. A file lock guards the directory
// against concurrent paprika-mcp processes sharing the same cache.
type DirectoryCache struct {
	dir  string
	lock *flock.Flock
}

// NewDirectoryCache opens (creating if needed) a cache directory.
func NewDirectoryCache(dir string) (*DirectoryCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeCacheWrite, err)
	}
	return &DirectoryCache{
		dir:  dir,
		lock: flock.New(filepath.Join(dir, ".lock")),
	}, nil
}

// cachedHash is the minimal shape needed to validate a cached recipe.
type cachedHash struct {
	Hash string `json:"hash"`
}

// Get returns the cached raw JSON for uid if its hash matches the sync
// index. A hash mismatch or unreadable entry is a miss, not an error.
func (c *DirectoryCache) Get(uid, hash string) ([]byte, bool) {
	if err := c.lock.RLock(); err != nil {
		return nil, false
	}
	defer func() { _ = c.lock.Unlock() }()

	data, err := os.ReadFile(c.path(uid))
	if err != nil {
		return nil, false
	}

	var ch cachedHash
	if err := json.Unmarshal(data, &ch); err != nil || ch.Hash != hash {
		return nil, false
	}

	return data, true
}

// Put stores the raw JSON for uid, replacing any previous entry.
func (c *DirectoryCache) Put(uid string, raw []byte) error {
	if err := c.lock.Lock(); err != nil {
		return errors.Wrap(errors.ErrCodeCacheLock, err)
	}
	defer func() { _ = c.lock.Unlock() }()

	if err := os.WriteFile(c.path(uid), raw, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeCacheWrite, err)
	}
	return nil
}

// Remove drops the cache entry for uid. Used after a successful upload so
// the next read re-fetches the authoritative copy.
func (c *DirectoryCache) Remove(uid string) {
	if err := c.lock.Lock(); err != nil {
		return
	}
	defer func() { _ = c.lock.Unlock() }()

	_ = os.Remove(c.path(uid))
}

func (c *DirectoryCache) path(uid string) string {
	return filepath.Join(c.dir, uid+".json")
}
