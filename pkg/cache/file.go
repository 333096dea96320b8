package cache

import (
	"context"
	"os"
	"path/filepath"
	"time"
)

// FileCache implements a file-based cache for CLI usage.
//
// Artifacts are stored as raw bytes (they are usually binary image data);
// entries with a TTL carry a small sidecar file holding the expiry time.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-based cache in the given directory.
// The directory will be created if it doesn't exist.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// Get retrieves a value from the cache.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path := c.path(key)

	if expired(path) {
		_ = os.Remove(path)
		_ = os.Remove(path + expirySuffix)
		return nil, false, nil
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set stores a value in the cache.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	path := c.path(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return err
	}
	if ttl > 0 {
		stamp := time.Now().Add(ttl).UTC().Format(time.RFC3339)
		return os.WriteFile(path+expirySuffix, []byte(stamp), 0644)
	}
	// No TTL: make sure a stale sidecar from an earlier Set cannot expire us.
	_ = os.Remove(path + expirySuffix)
	return nil
}

// Delete removes a value from the cache.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	path := c.path(key)
	_ = os.Remove(path + expirySuffix)
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for file cache.
func (c *FileCache) Close() error {
	return nil
}

const expirySuffix = ".expires"

// expired reports whether the entry at path has a sidecar with a past expiry.
// Unreadable or malformed sidecars count as expired.
func expired(path string) bool {
	raw, err := os.ReadFile(path + expirySuffix)
	if os.IsNotExist(err) {
		return false
	}
	if err != nil {
		return true
	}
	at, err := time.Parse(time.RFC3339, string(raw))
	if err != nil {
		return true
	}
	return time.Now().After(at)
}

// path converts a cache key to a file path.
// Uses a simple hash-based directory structure to avoid too many files in one dir.
func (c *FileCache) path(key string) string {
	hash := Hash([]byte(key))
	// Use first 2 chars as subdirectory for distribution
	subdir := hash[:2]
	filename := hash[2:] + ".bin"
	return filepath.Join(c.dir, subdir, filename)
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
