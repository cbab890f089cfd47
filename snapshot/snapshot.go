package snapshot

import (
	"encoding/json"
	"fmt"

	"github.com/golang/snappy"

	"treedb/database"
)

// Snapshot is a point-in-time copy of one collection's contents, suitable
// for export over the API or between processes. It captures the entries and
// the index order so the collection can be rebuilt with the same shape.
type Snapshot struct {
	Collection string           `json:"collection"`
	Order      int              `json:"order"`
	Entries    []database.Entry `json:"entries"`
}

// Take captures the current contents of a collection.
func Take(coll *database.Collection) *Snapshot {
	return &Snapshot{
		Collection: coll.Name(),
		Order:      coll.Stats().Order,
		Entries:    coll.Dump(),
	}
}

// Encode serializes the snapshot to a snappy-compressed JSON blob.
func Encode(s *Snapshot) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %v", err)
	}
	return snappy.Encode(nil, data), nil
}

// Decode parses a blob produced by Encode.
func Decode(blob []byte) (*Snapshot, error) {
	data, err := snappy.Decode(nil, blob)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress snapshot: %v", err)
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot: %v", err)
	}
	return &s, nil
}

// Restore creates the snapshot's collection inside db and loads its
// entries. It fails if a collection with the same name already exists.
func Restore(db *database.Database, s *Snapshot) (*database.Collection, error) {
	coll, err := db.CreateCollection(s.Collection, s.Order)
	if err != nil {
		return nil, err
	}
	coll.Load(s.Entries)
	return coll, nil
}
