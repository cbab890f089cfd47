package database

import (
	"fmt"
	"sync"

	"treedb/bptree"
	"treedb/cache"
)

// lookupCacheEntries bounds the per-collection hot-key cache.
const lookupCacheEntries = 1 << 14

// Entry is one key/value pair of a collection.
type Entry = bptree.Entry[string, string]

// Stats describes the shape of a collection's index.
type Stats struct {
	Name   string `json:"name"`
	Order  int    `json:"order"`
	Keys   int    `json:"keys"`
	Height int    `json:"height"`
}

// Collection is a named key/value set over a single ordered index. The
// index itself is not safe for concurrent use, so every operation takes the
// collection lock: writers exclusively, readers shared.
type Collection struct {
	name  string
	lock  sync.RWMutex
	tree  *bptree.Tree[string, string]
	cache *cache.Cache
}

func newCollection(name string, order int) (*Collection, error) {
	tree, err := bptree.NewOrdered[string, string](order)
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %v", err)
	}
	lookups, err := cache.New(lookupCacheEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to create lookup cache: %v", err)
	}
	return &Collection{name: name, tree: tree, cache: lookups}, nil
}

// Name returns the collection name.
func (c *Collection) Name() string {
	return c.name
}

// Set stores value under key, replacing any previous value. It returns the
// previous value and whether one existed.
func (c *Collection) Set(key, value string) (string, bool) {
	c.lock.Lock()
	defer c.lock.Unlock()

	old, replaced := c.tree.Insert(key, value)
	c.invalidate(key)
	return old, replaced
}

// Get returns the value for key. Hot keys are served from the lookup cache;
// misses fall through to the index and populate the cache.
func (c *Collection) Get(key string) (string, bool) {
	c.lock.RLock()
	defer c.lock.RUnlock()

	if value, ok := c.cache.Get(key); ok {
		return value, true
	}
	value, ok := c.tree.Search(key)
	if ok {
		c.cache.Set(key, value)
	}
	return value, ok
}

// Delete removes key, reporting whether it was present.
func (c *Collection) Delete(key string) bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	_, deleted := c.tree.Delete(key)
	c.invalidate(key)
	return deleted
}

// invalidate drops key from the lookup cache. The cache buffers admissions,
// so pending sets from earlier reads are flushed first; otherwise one could
// land after the delete and resurrect a stale value.
func (c *Collection) invalidate(key string) {
	c.cache.Wait()
	c.cache.Delete(key)
}

// Scan returns every entry with from <= key <= to in ascending order.
func (c *Collection) Scan(from, to string) []Entry {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.tree.Entries(from, to)
}

// Dump returns every entry in ascending key order.
func (c *Collection) Dump() []Entry {
	c.lock.RLock()
	defer c.lock.RUnlock()

	entries := make([]Entry, 0, c.tree.Len())
	c.tree.All(func(key, value string) bool {
		entries = append(entries, Entry{Key: key, Value: value})
		return true
	})
	return entries
}

// Load bulk-inserts entries, replacing values of keys that already exist.
func (c *Collection) Load(entries []Entry) {
	c.lock.Lock()
	defer c.lock.Unlock()

	for _, e := range entries {
		c.tree.Insert(e.Key, e.Value)
	}
	c.cache.Clear()
}

// Len returns the number of keys stored.
func (c *Collection) Len() int {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return c.tree.Len()
}

// Stats returns the collection's index shape.
func (c *Collection) Stats() Stats {
	c.lock.RLock()
	defer c.lock.RUnlock()

	return Stats{
		Name:   c.name,
		Order:  c.tree.Order(),
		Keys:   c.tree.Len(),
		Height: c.tree.Height(),
	}
}

func (c *Collection) close() {
	c.cache.Close()
}
