package bptree

import "slices"

// Insert stores value under key. If the key already exists its value is
// replaced in place and the previous value is returned with replaced=true;
// no structural change happens. Otherwise the entry is inserted at its
// sorted position and any resulting overflow is resolved bottom-up by
// splitting before Insert returns.
func (t *Tree[K, V]) Insert(key K, value V) (old V, replaced bool) {
	old, replaced, sep, right := t.insertInto(t.root, key, value)
	if right != nil {
		// The root split: grow the tree by one level.
		t.root = &node[K, V]{
			keys:     []K{sep},
			children: []*node[K, V]{t.root, right},
		}
	}
	if !replaced {
		t.size++
	}
	return old, replaced
}

// insertInto descends to the target leaf and inserts there. When the
// mutated node overflows it is split and the promoted separator plus the
// new right sibling are handed back to the caller's frame to link in.
func (t *Tree[K, V]) insertInto(n *node[K, V], key K, value V) (old V, replaced bool, sep K, right *node[K, V]) {
	if n.leaf {
		i, found := n.search(t.cmp, key)
		if found {
			old = n.values[i]
			n.values[i] = value
			replaced = true
			return
		}
		n.keys = slices.Insert(n.keys, i, key)
		n.values = slices.Insert(n.values, i, value)
		if len(n.keys) > t.maxKeys() {
			sep, right = t.splitLeaf(n)
		}
		return
	}

	i := n.childIndex(t.cmp, key)
	old, replaced, childSep, childRight := t.insertInto(n.children[i], key, value)
	if childRight != nil {
		n.keys = slices.Insert(n.keys, i, childSep)
		n.children = slices.Insert(n.children, i+1, childRight)
		if len(n.keys) > t.maxKeys() {
			sep, right = t.splitInternal(n)
		}
	}
	return
}

// splitLeaf divides an over-full leaf at the median. The right half's first
// key is copied up as the separator; the leaf chain is relinked so the new
// sibling follows n.
func (t *Tree[K, V]) splitLeaf(n *node[K, V]) (K, *node[K, V]) {
	mid := len(n.keys) / 2
	right := &node[K, V]{
		leaf:   true,
		keys:   slices.Clone(n.keys[mid:]),
		values: slices.Clone(n.values[mid:]),
		next:   n.next,
	}
	n.keys = n.keys[:mid:mid]
	n.values = n.values[:mid:mid]
	n.next = right
	return right.keys[0], right
}

// splitInternal divides an over-full internal node at the median. Unlike a
// leaf split the median key moves up to the parent rather than being copied.
func (t *Tree[K, V]) splitInternal(n *node[K, V]) (K, *node[K, V]) {
	mid := len(n.keys) / 2
	sep := n.keys[mid]
	right := &node[K, V]{
		keys:     slices.Clone(n.keys[mid+1:]),
		children: slices.Clone(n.children[mid+1:]),
	}
	n.keys = n.keys[:mid:mid]
	n.children = n.children[: mid+1 : mid+1]
	return sep, right
}
