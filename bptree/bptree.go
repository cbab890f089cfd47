package bptree

import (
	"cmp"
	"errors"
)

// ErrInvalidOrder is returned by New when the branching factor is below 3.
var ErrInvalidOrder = errors.New("bptree: order must be at least 3")

// Entry is a single key/value pair stored in a leaf.
type Entry[K, V any] struct {
	Key   K
	Value V
}

// Tree is an in-memory B+ tree of order m: internal nodes hold up to m
// children, leaves hold up to m-1 entries and are chained in key order for
// range scans. The tree performs no locking of its own; callers must
// serialize mutation against all other access on the same instance.
type Tree[K, V any] struct {
	root  *node[K, V]
	order int
	size  int
	cmp   func(a, b K) int
}

// New creates an empty tree with the given order and key comparison
// function. The comparison must define a total order over keys.
func New[K, V any](order int, compare func(a, b K) int) (*Tree[K, V], error) {
	if order < 3 {
		return nil, ErrInvalidOrder
	}
	if compare == nil {
		return nil, errors.New("bptree: compare function is required")
	}
	return &Tree[K, V]{
		root:  &node[K, V]{leaf: true},
		order: order,
		cmp:   compare,
	}, nil
}

// NewOrdered creates a tree for keys with a natural ordering.
func NewOrdered[K cmp.Ordered, V any](order int) (*Tree[K, V], error) {
	return New[K, V](order, cmp.Compare[K])
}

// Order returns the branching factor the tree was built with.
func (t *Tree[K, V]) Order() int {
	return t.order
}

// Len returns the number of entries currently stored.
func (t *Tree[K, V]) Len() int {
	return t.size
}

// IsEmpty reports whether the tree holds no entries.
func (t *Tree[K, V]) IsEmpty() bool {
	return t.size == 0
}

// Height returns the number of levels from the root down to the leaves.
func (t *Tree[K, V]) Height() int {
	h := 1
	for n := t.root; !n.leaf; n = n.children[0] {
		h++
	}
	return h
}

// maxKeys is the largest number of keys any node may hold.
func (t *Tree[K, V]) maxKeys() int {
	return t.order - 1
}

// minKeys is the smallest number of keys a non-root node may hold:
// ceil(m/2)-1 entries for a leaf, ceil(m/2) children for an internal node.
func (t *Tree[K, V]) minKeys() int {
	return (t.order+1)/2 - 1
}
