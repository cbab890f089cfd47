package bptree

// Scan visits every entry with lo <= key <= hi in ascending order, calling
// fn for each until fn returns false or the range is exhausted. It descends
// to the leaf holding the smallest key >= lo and then follows the leaf
// chain, so a scan costs O(log n + k) for k results. Scan does not mutate
// the tree and may be re-invoked to restart; it must not run concurrently
// with Insert or Delete on the same tree.
func (t *Tree[K, V]) Scan(lo, hi K, fn func(key K, value V) bool) {
	if t.cmp(lo, hi) > 0 {
		return
	}
	n := t.root
	for !n.leaf {
		n = n.children[n.childIndex(t.cmp, lo)]
	}
	i, _ := n.search(t.cmp, lo)
	for n != nil {
		for ; i < len(n.keys); i++ {
			if t.cmp(n.keys[i], hi) > 0 {
				return
			}
			if !fn(n.keys[i], n.values[i]) {
				return
			}
		}
		n = n.next
		i = 0
	}
}

// Entries collects the results of Scan(lo, hi) into a slice.
func (t *Tree[K, V]) Entries(lo, hi K) []Entry[K, V] {
	var out []Entry[K, V]
	t.Scan(lo, hi, func(key K, value V) bool {
		out = append(out, Entry[K, V]{Key: key, Value: value})
		return true
	})
	return out
}

// All visits every entry in ascending key order by walking the whole leaf
// chain from the leftmost leaf.
func (t *Tree[K, V]) All(fn func(key K, value V) bool) {
	n := t.root
	for !n.leaf {
		n = n.children[0]
	}
	for ; n != nil; n = n.next {
		for i := range n.keys {
			if !fn(n.keys[i], n.values[i]) {
				return
			}
		}
	}
}
