package bptree

// Search descends from the root to the leaf that may contain key and
// binary-searches it for an exact match. The second return value is false
// when the key is absent.
func (t *Tree[K, V]) Search(key K) (V, bool) {
	n := t.root
	for !n.leaf {
		n = n.children[n.childIndex(t.cmp, key)]
	}
	i, found := n.search(t.cmp, key)
	if !found {
		var zero V
		return zero, false
	}
	return n.values[i], true
}
