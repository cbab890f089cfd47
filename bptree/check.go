package bptree

import "fmt"

// Check walks the whole tree and verifies its structural invariants: all
// leaves at the same depth, occupancy bounds on every non-root node,
// strictly ascending keys within nodes and across the leaf chain, and
// separator keys correctly bounding their subtrees. It returns the first
// violation found. Check exists for tests and debugging; the operational
// paths never call it.
func (t *Tree[K, V]) Check() error {
	c := &checker[K, V]{tree: t, leafDepth: -1}
	if err := c.node(t.root, 0, nil, nil); err != nil {
		return err
	}
	if c.entries != t.size {
		return fmt.Errorf("bptree: size counter is %d but tree holds %d entries", t.size, c.entries)
	}
	// The in-order leaf sequence must equal the leaf chain.
	chain := 0
	n := t.root
	for !n.leaf {
		n = n.children[0]
	}
	for ; n != nil; n = n.next {
		if chain >= len(c.leaves) || c.leaves[chain] != n {
			return fmt.Errorf("bptree: leaf chain diverges from tree order at leaf %d", chain)
		}
		chain++
	}
	if chain != len(c.leaves) {
		return fmt.Errorf("bptree: leaf chain has %d leaves, tree has %d", chain, len(c.leaves))
	}
	return nil
}

type checker[K, V any] struct {
	tree      *Tree[K, V]
	leafDepth int
	entries   int
	leaves    []*node[K, V]
	lastKey   *K
}

// node validates the subtree rooted at n, whose keys must lie in
// [low, high) when those bounds are present.
func (c *checker[K, V]) node(n *node[K, V], depth int, low, high *K) error {
	t := c.tree
	root := n == t.root

	if len(n.keys) > t.maxKeys() {
		return fmt.Errorf("bptree: node holds %d keys, maximum is %d", len(n.keys), t.maxKeys())
	}
	if !root && len(n.keys) < t.minKeys() {
		return fmt.Errorf("bptree: non-root node holds %d keys, minimum is %d", len(n.keys), t.minKeys())
	}
	for i, k := range n.keys {
		if i > 0 && t.cmp(n.keys[i-1], k) >= 0 {
			return fmt.Errorf("bptree: keys out of order within node at index %d", i)
		}
		if low != nil && t.cmp(k, *low) < 0 {
			return fmt.Errorf("bptree: key below subtree lower bound")
		}
		if high != nil && t.cmp(k, *high) >= 0 {
			return fmt.Errorf("bptree: key at or above subtree upper bound")
		}
	}

	if n.leaf {
		if len(n.values) != len(n.keys) {
			return fmt.Errorf("bptree: leaf has %d values for %d keys", len(n.values), len(n.keys))
		}
		if c.leafDepth == -1 {
			c.leafDepth = depth
		} else if depth != c.leafDepth {
			return fmt.Errorf("bptree: leaf at depth %d, expected %d", depth, c.leafDepth)
		}
		for i := range n.keys {
			if c.lastKey != nil && t.cmp(*c.lastKey, n.keys[i]) >= 0 {
				return fmt.Errorf("bptree: duplicate or out-of-order key across leaves")
			}
			k := n.keys[i]
			c.lastKey = &k
		}
		c.entries += len(n.keys)
		c.leaves = append(c.leaves, n)
		return nil
	}

	if len(n.children) != len(n.keys)+1 {
		return fmt.Errorf("bptree: internal node has %d children for %d keys", len(n.children), len(n.keys))
	}
	if root && len(n.children) < 2 {
		return fmt.Errorf("bptree: internal root has fewer than 2 children")
	}
	for i, child := range n.children {
		childLow, childHigh := low, high
		if i > 0 {
			childLow = &n.keys[i-1]
		}
		if i < len(n.keys) {
			childHigh = &n.keys[i]
		}
		if err := c.node(child, depth+1, childLow, childHigh); err != nil {
			return err
		}
	}
	return nil
}
