package bptree

// node is either an internal node (keys + children) or a leaf
// (keys + values + next). Leaves are linked in ascending key order; the
// next pointer is traversal-only and never owns the node it refers to.
type node[K, V any] struct {
	leaf     bool
	keys     []K
	values   []V           // leaves only, parallel to keys
	children []*node[K, V] // internal nodes only, len(keys)+1
	next     *node[K, V]   // leaf chain
}

// childIndex returns the index of the child to descend into for key.
// A key equal to a separator routes to the right child, so children[i]
// holds keys in [keys[i-1], keys[i]).
func (n *node[K, V]) childIndex(compare func(a, b K) int, key K) int {
	low, high := 0, len(n.keys)
	for low < high {
		mid := (low + high) / 2
		if compare(key, n.keys[mid]) < 0 {
			high = mid
		} else {
			low = mid + 1
		}
	}
	return low
}

// search binary-searches the node's keys for an exact match. When the key
// is absent it returns the position where it would be inserted.
func (n *node[K, V]) search(compare func(a, b K) int, key K) (int, bool) {
	low, high := 0, len(n.keys)
	for low < high {
		mid := (low + high) / 2
		switch c := compare(key, n.keys[mid]); {
		case c > 0:
			low = mid + 1
		case c < 0:
			high = mid
		default:
			return mid, true
		}
	}
	return low, false
}
