package cache

import (
	"fmt"

	"github.com/dgraph-io/ristretto/v2"
)

// Cache is a read-through lookup cache for hot keys, one instance per
// collection. It wraps ristretto with every entry costed at 1 so MaxCost
// behaves as a plain entry cap.
type Cache struct {
	rc *ristretto.Cache[string, string]
}

// New creates a cache bounded to roughly maxEntries entries.
func New(maxEntries int64) (*Cache, error) {
	if maxEntries < 1 {
		return nil, fmt.Errorf("cache: maxEntries must be positive, got %d", maxEntries)
	}
	rc, err := ristretto.NewCache(&ristretto.Config[string, string]{
		NumCounters: maxEntries * 10,
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("cache: failed to create ristretto cache: %v", err)
	}
	return &Cache{rc: rc}, nil
}

// Get returns the cached value for key, if present.
func (c *Cache) Get(key string) (string, bool) {
	return c.rc.Get(key)
}

// Set records key/value. Admission is best-effort; a rejected set only
// costs a future cache miss.
func (c *Cache) Set(key, value string) {
	c.rc.Set(key, value, 1)
}

// Delete drops key from the cache. Used to invalidate on writes.
func (c *Cache) Delete(key string) {
	c.rc.Del(key)
}

// Clear drops every cached entry.
func (c *Cache) Clear() {
	c.rc.Clear()
}

// Wait blocks until buffered sets have been applied. Tests use this to make
// admission deterministic.
func (c *Cache) Wait() {
	c.rc.Wait()
}

// Close releases the cache's internal resources.
func (c *Cache) Close() {
	c.rc.Close()
}
