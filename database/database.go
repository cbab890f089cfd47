package database

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Database is an in-memory set of named collections, each backed by its own
// ordered index. The database serializes collection management; per-key
// operations are serialized by each collection's own lock.
type Database struct {
	id          string
	lock        sync.RWMutex
	collections map[string]*Collection
}

// NewDatabase creates an empty database. When id is empty a short
// uuid-derived id of the form db_xxxxxxxx is generated.
func NewDatabase(id string) *Database {
	if id == "" {
		id = fmt.Sprintf("db_%s", strings.Split(uuid.NewString(), "-")[0])
	}
	return &Database{
		id:          id,
		collections: make(map[string]*Collection),
	}
}

// ID returns the database identifier.
func (db *Database) ID() string {
	return db.id
}

// CreateCollection creates a new collection with the given index order.
func (db *Database) CreateCollection(name string, order int) (*Collection, error) {
	db.lock.Lock()
	defer db.lock.Unlock()

	if name == "" {
		return nil, fmt.Errorf("collection name is required")
	}
	if _, exists := db.collections[name]; exists {
		return nil, fmt.Errorf("collection %q already exists", name)
	}

	coll, err := newCollection(name, order)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection %q: %v", name, err)
	}
	db.collections[name] = coll
	return coll, nil
}

// GetCollection returns a handle to the named collection.
func (db *Database) GetCollection(name string) (*Collection, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	coll, ok := db.collections[name]
	if !ok {
		return nil, fmt.Errorf("collection %q not found", name)
	}
	return coll, nil
}

// DropCollection removes the named collection and releases its cache.
func (db *Database) DropCollection(name string) error {
	db.lock.Lock()
	defer db.lock.Unlock()

	coll, ok := db.collections[name]
	if !ok {
		return fmt.Errorf("collection %q not found", name)
	}
	coll.close()
	delete(db.collections, name)
	return nil
}

// Collections returns the collection names in sorted order.
func (db *Database) Collections() []string {
	db.lock.RLock()
	defer db.lock.RUnlock()

	names := make([]string, 0, len(db.collections))
	for name := range db.collections {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close releases every collection.
func (db *Database) Close() {
	db.lock.Lock()
	defer db.lock.Unlock()

	for name, coll := range db.collections {
		coll.close()
		delete(db.collections, name)
	}
}
