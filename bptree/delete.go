package bptree

import "slices"

// Delete removes key and returns its value. The second return value is
// false when the key is absent, in which case the tree is untouched.
// Underflow caused by the removal is repaired bottom-up by borrowing from
// or merging with a sibling before Delete returns; if a merge empties the
// root, the root is replaced by its sole child and the tree shrinks by one
// level. Deleting the last entry leaves a valid single empty root leaf.
func (t *Tree[K, V]) Delete(key K) (V, bool) {
	old, deleted, _ := t.deleteFrom(t.root, key)
	if deleted {
		t.size--
		if !t.root.leaf && len(t.root.keys) == 0 {
			t.root = t.root.children[0]
		}
	}
	return old, deleted
}

// deleteFrom removes key from the subtree rooted at n. The underflow
// return tells the caller's frame that n has fallen below minimum occupancy
// and needs repair from its position in the parent. The root is exempt from
// occupancy bounds, so Delete ignores the top-level underflow signal.
func (t *Tree[K, V]) deleteFrom(n *node[K, V], key K) (old V, deleted, underflow bool) {
	if n.leaf {
		i, found := n.search(t.cmp, key)
		if !found {
			return
		}
		old = n.values[i]
		n.keys = slices.Delete(n.keys, i, i+1)
		n.values = slices.Delete(n.values, i, i+1)
		return old, true, len(n.keys) < t.minKeys()
	}

	i := n.childIndex(t.cmp, key)
	old, deleted, childUnderflow := t.deleteFrom(n.children[i], key)
	if !deleted || !childUnderflow {
		return old, deleted, false
	}
	t.repair(n, i)
	return old, true, len(n.keys) < t.minKeys()
}

// repair restores minimum occupancy of parent.children[i], preferring to
// borrow a boundary entry from a sibling with spare keys and merging with a
// sibling otherwise.
func (t *Tree[K, V]) repair(parent *node[K, V], i int) {
	var left, right *node[K, V]
	if i > 0 {
		left = parent.children[i-1]
	}
	if i < len(parent.children)-1 {
		right = parent.children[i+1]
	}

	switch {
	case left != nil && len(left.keys) > t.minKeys():
		t.borrowFromLeft(parent, i, left)
	case right != nil && len(right.keys) > t.minKeys():
		t.borrowFromRight(parent, i, right)
	case left != nil:
		t.merge(parent, i-1)
	default:
		t.merge(parent, i)
	}
}

// borrowFromLeft moves the left sibling's last entry (leaf) or rotates a
// separator and child through the parent (internal).
func (t *Tree[K, V]) borrowFromLeft(parent *node[K, V], i int, left *node[K, V]) {
	child := parent.children[i]
	last := len(left.keys) - 1
	if child.leaf {
		child.keys = slices.Insert(child.keys, 0, left.keys[last])
		child.values = slices.Insert(child.values, 0, left.values[last])
		left.keys = left.keys[:last]
		left.values = left.values[:last]
		parent.keys[i-1] = child.keys[0]
		return
	}
	child.keys = slices.Insert(child.keys, 0, parent.keys[i-1])
	parent.keys[i-1] = left.keys[last]
	left.keys = left.keys[:last]
	lastChild := len(left.children) - 1
	child.children = slices.Insert(child.children, 0, left.children[lastChild])
	left.children = left.children[:lastChild]
}

// borrowFromRight mirrors borrowFromLeft using the right sibling's first
// entry.
func (t *Tree[K, V]) borrowFromRight(parent *node[K, V], i int, right *node[K, V]) {
	child := parent.children[i]
	if child.leaf {
		child.keys = append(child.keys, right.keys[0])
		child.values = append(child.values, right.values[0])
		right.keys = slices.Delete(right.keys, 0, 1)
		right.values = slices.Delete(right.values, 0, 1)
		parent.keys[i] = right.keys[0]
		return
	}
	child.keys = append(child.keys, parent.keys[i])
	parent.keys[i] = right.keys[0]
	right.keys = slices.Delete(right.keys, 0, 1)
	child.children = append(child.children, right.children[0])
	right.children = slices.Delete(right.children, 0, 1)
}

// merge concatenates parent.children[i+1] into parent.children[i] and drops
// the separator between them. Leaf merges relink the leaf chain; internal
// merges pull the separator down between the two halves.
func (t *Tree[K, V]) merge(parent *node[K, V], i int) {
	dst := parent.children[i]
	src := parent.children[i+1]
	if dst.leaf {
		dst.keys = append(dst.keys, src.keys...)
		dst.values = append(dst.values, src.values...)
		dst.next = src.next
	} else {
		dst.keys = append(dst.keys, parent.keys[i])
		dst.keys = append(dst.keys, src.keys...)
		dst.children = append(dst.children, src.children...)
	}
	parent.keys = slices.Delete(parent.keys, i, i+1)
	parent.children = slices.Delete(parent.children, i+1, i+2)
}
