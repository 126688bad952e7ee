package caching

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Cache provides a simple file-based cache with a TTL. A TTL of zero or
// less never expires entries.
type Cache struct {
	path string
	ttl  time.Duration
}

// NewCache creates a new Cache instance.
// The cache path will be created if it doesn't exist.
func NewCache(path string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(path, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &Cache{
		path: path,
		ttl:  ttl,
	}, nil
}

// key generates a SHA256 hash of the cache key to use as a filename.
func (c *Cache) key(k string) string {
	hash := sha256.Sum256([]byte(k))
	return fmt.Sprintf("%x", hash)
}

// Get retrieves an item from the cache.
// It returns the data and true if the item is found and not expired.
// Otherwise, it returns nil and false.
func (c *Cache) Get(k string) ([]byte, bool) {
	filePath := filepath.Join(c.path, c.key(k))

	info, err := os.Stat(filePath)
	if err != nil {
		return nil, false // Cache miss
	}

	if c.ttl > 0 && time.Since(info.ModTime()) > c.ttl {
		return nil, false // Cache miss (expired)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, false // Cache miss (read error)
	}

	return data, true // Cache hit
}

// Set adds an item to the cache.
func (c *Cache) Set(k string, data []byte) error {
	filePath := filepath.Join(c.path, c.key(k))
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}
	return nil
}

// GetOrFill returns the cached item for k, calling fill on a miss and
// storing its result. A failed Set is not an error; the filled data is
// still returned.
func (c *Cache) GetOrFill(k string, fill func() ([]byte, error)) (data []byte, hit bool, err error) {
	if data, ok := c.Get(k); ok {
		return data, true, nil
	}
	data, err = fill()
	if err != nil {
		return nil, false, err
	}
	_ = c.Set(k, data)
	return data, false, nil
}
