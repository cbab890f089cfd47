package snapshot_test

import (
	"fmt"
	"testing"

	"treedb/database"
	"treedb/snapshot"
)

func buildCollection(t *testing.T, db *database.Database, name string, count int) *database.Collection {
	t.Helper()
	coll, err := db.CreateCollection(name, 6)
	if err != nil {
		t.Fatalf("failed to create collection: %v", err)
	}
	for i := 0; i < count; i++ {
		coll.Set(fmt.Sprintf("key_%04d", i), fmt.Sprintf("value_%d", i))
	}
	return coll
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	src := database.NewDatabase("src")
	defer src.Close()
	coll := buildCollection(t, src, "events", 500)

	blob, err := snapshot.Encode(snapshot.Take(coll))
	if err != nil {
		t.Fatalf("failed to encode snapshot: %v", err)
	}

	snap, err := snapshot.Decode(blob)
	if err != nil {
		t.Fatalf("failed to decode snapshot: %v", err)
	}
	if snap.Collection != "events" || snap.Order != 6 {
		t.Errorf("snapshot header = (%q, %d), want (events, 6)", snap.Collection, snap.Order)
	}
	if len(snap.Entries) != 500 {
		t.Fatalf("snapshot holds %d entries, want 500", len(snap.Entries))
	}

	dst := database.NewDatabase("dst")
	defer dst.Close()
	restored, err := snapshot.Restore(dst, snap)
	if err != nil {
		t.Fatalf("failed to restore snapshot: %v", err)
	}
	if restored.Len() != 500 {
		t.Fatalf("restored collection holds %d keys, want 500", restored.Len())
	}
	for i := 0; i < 500; i++ {
		key := fmt.Sprintf("key_%04d", i)
		value, found := restored.Get(key)
		if !found || value != fmt.Sprintf("value_%d", i) {
			t.Fatalf("restored key %s = (%q, %v)", key, value, found)
		}
	}
	if s := restored.Stats(); s.Order != 6 {
		t.Errorf("restored collection order = %d, want 6", s.Order)
	}
}

func TestRestoreRejectsExistingCollection(t *testing.T) {
	db := database.NewDatabase("dup")
	defer db.Close()
	coll := buildCollection(t, db, "events", 10)

	blob, err := snapshot.Encode(snapshot.Take(coll))
	if err != nil {
		t.Fatalf("failed to encode snapshot: %v", err)
	}
	snap, err := snapshot.Decode(blob)
	if err != nil {
		t.Fatalf("failed to decode snapshot: %v", err)
	}
	if _, err := snapshot.Restore(db, snap); err == nil {
		t.Error("restoring over an existing collection should fail")
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := snapshot.Decode([]byte("not a snapshot")); err == nil {
		t.Error("garbage input should fail to decode")
	}
}

func TestEmptyCollectionSnapshot(t *testing.T) {
	db := database.NewDatabase("empty")
	defer db.Close()
	coll := buildCollection(t, db, "nothing", 0)

	blob, err := snapshot.Encode(snapshot.Take(coll))
	if err != nil {
		t.Fatalf("failed to encode snapshot: %v", err)
	}
	snap, err := snapshot.Decode(blob)
	if err != nil {
		t.Fatalf("failed to decode snapshot: %v", err)
	}
	if len(snap.Entries) != 0 {
		t.Errorf("empty snapshot holds %d entries", len(snap.Entries))
	}
}
