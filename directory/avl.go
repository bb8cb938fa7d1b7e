// Package directory provides a generic self-balancing (AVL) ordered map and set.
//
// Nodes live in an arena and refer to each other by index, so there are no parent
// pointers to keep in sync.  Height of an empty subtree is 0 and of a leaf is 1.
package directory

import (
	"cmp"
	"iter"
	"slices"
)

const nilNode = -1

type node[K cmp.Ordered, V any] struct {
	key    K
	val    V
	left   int
	right  int
	height int
}

// Tree is an AVL tree keyed by K with payloads of type V.  The zero value is not usable, call New.
type Tree[K cmp.Ordered, V any] struct {
	nodes []node[K, V]
	free  []int
	root  int
	size  int
}

// Entry is a key and payload pair, used for bulk building.
type Entry[K cmp.Ordered, V any] struct {
	Key   K
	Value V
}

// New returns an empty tree.
func New[K cmp.Ordered, V any]() *Tree[K, V] {
	return &Tree[K, V]{root: nilNode}
}

func (t *Tree[K, V]) alloc(key K, val V) int {
	n := node[K, V]{key: key, val: val, left: nilNode, right: nilNode, height: 1}
	if len(t.free) > 0 {
		i := t.free[len(t.free)-1]
		t.free = t.free[:len(t.free)-1]
		t.nodes[i] = n
		return i
	}
	t.nodes = append(t.nodes, n)
	return len(t.nodes) - 1
}

func (t *Tree[K, V]) release(i int) {
	t.nodes[i] = node[K, V]{left: nilNode, right: nilNode}
	t.free = append(t.free, i)
}

func (t *Tree[K, V]) height(i int) int {
	if i == nilNode {
		return 0
	}
	return t.nodes[i].height
}

func (t *Tree[K, V]) fix(i int) {
	n := &t.nodes[i]
	n.height = 1 + max(t.height(n.left), t.height(n.right))
}

func (t *Tree[K, V]) balanceFactor(i int) int {
	if i == nilNode {
		return 0
	}
	return t.height(t.nodes[i].left) - t.height(t.nodes[i].right)
}

func (t *Tree[K, V]) rotateLeft(z int) int {
	y := t.nodes[z].right
	t.nodes[z].right = t.nodes[y].left
	t.nodes[y].left = z
	t.fix(z)
	t.fix(y)
	return y
}

func (t *Tree[K, V]) rotateRight(z int) int {
	y := t.nodes[z].left
	t.nodes[z].left = t.nodes[y].right
	t.nodes[y].right = z
	t.fix(z)
	t.fix(y)
	return y
}

// rebalance restores the AVL invariant at i and returns the new subtree root.
func (t *Tree[K, V]) rebalance(i int) int {
	t.fix(i)
	bf := t.balanceFactor(i)
	switch {
	case bf > 1 && t.balanceFactor(t.nodes[i].left) >= 0: // left-left
		return t.rotateRight(i)
	case bf > 1: // left-right
		t.nodes[i].left = t.rotateLeft(t.nodes[i].left)
		return t.rotateRight(i)
	case bf < -1 && t.balanceFactor(t.nodes[i].right) <= 0: // right-right
		return t.rotateLeft(i)
	case bf < -1: // right-left
		t.nodes[i].right = t.rotateRight(t.nodes[i].right)
		return t.rotateLeft(i)
	}
	return i
}

// Insert adds key with the given payload.  If key is already present its payload is
// replaced in place and false is returned.
func (t *Tree[K, V]) Insert(key K, val V) bool {
	var created bool
	t.root = t.insert(t.root, key, val, &created)
	if created {
		t.size++
	}
	return created
}

func (t *Tree[K, V]) insert(i int, key K, val V, created *bool) int {
	if i == nilNode {
		*created = true
		return t.alloc(key, val)
	}
	switch c := cmp.Compare(key, t.nodes[i].key); {
	case c < 0:
		l := t.insert(t.nodes[i].left, key, val, created)
		t.nodes[i].left = l
	case c > 0:
		r := t.insert(t.nodes[i].right, key, val, created)
		t.nodes[i].right = r
	default:
		t.nodes[i].val = val
		return i
	}
	return t.rebalance(i)
}

// Remove deletes key, returning false if it wasn't present.
func (t *Tree[K, V]) Remove(key K) bool {
	var removed bool
	t.root = t.remove(t.root, key, &removed)
	if removed {
		t.size--
	}
	return removed
}

func (t *Tree[K, V]) remove(i int, key K, removed *bool) int {
	if i == nilNode {
		return nilNode
	}
	switch c := cmp.Compare(key, t.nodes[i].key); {
	case c < 0:
		l := t.remove(t.nodes[i].left, key, removed)
		t.nodes[i].left = l
	case c > 0:
		r := t.remove(t.nodes[i].right, key, removed)
		t.nodes[i].right = r
	default:
		n := t.nodes[i]
		if n.left == nilNode || n.right == nilNode {
			*removed = true
			child := n.left
			if child == nilNode {
				child = n.right
			}
			t.release(i)
			return child
		}
		// Two children: take over the in-order successor, then delete it from the right subtree
		succ := n.right
		for t.nodes[succ].left != nilNode {
			succ = t.nodes[succ].left
		}
		t.nodes[i].key = t.nodes[succ].key
		t.nodes[i].val = t.nodes[succ].val
		r := t.remove(n.right, t.nodes[i].key, removed)
		t.nodes[i].right = r
	}
	return t.rebalance(i)
}

func (t *Tree[K, V]) find(key K) int {
	i := t.root
	for i != nilNode {
		switch c := cmp.Compare(key, t.nodes[i].key); {
		case c < 0:
			i = t.nodes[i].left
		case c > 0:
			i = t.nodes[i].right
		default:
			return i
		}
	}
	return nilNode
}

// Contains reports whether key is present.
func (t *Tree[K, V]) Contains(key K) bool {
	return t.find(key) != nilNode
}

// Get returns the payload stored under key.
func (t *Tree[K, V]) Get(key K) (V, bool) {
	i := t.find(key)
	if i == nilNode {
		var zero V
		return zero, false
	}
	return t.nodes[i].val, true
}

// Len returns the number of keys in the tree.
func (t *Tree[K, V]) Len() int {
	return t.size
}

// Height returns the height of the whole tree.
func (t *Tree[K, V]) Height() int {
	return t.height(t.root)
}

// All iterates over the entries in ascending key order.
func (t *Tree[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		t.inorder(t.root, yield)
	}
}

func (t *Tree[K, V]) inorder(i int, yield func(K, V) bool) bool {
	if i == nilNode {
		return true
	}
	n := t.nodes[i]
	return t.inorder(n.left, yield) && yield(n.key, n.val) && t.inorder(n.right, yield)
}

// Keys returns all keys in ascending order.
func (t *Tree[K, V]) Keys() []K {
	keys := make([]K, 0, t.size)
	for k := range t.All() {
		keys = append(keys, k)
	}
	return keys
}

// Nest folds the tree bottom-up, handing f each node along with the results already
// computed for its left and right subtrees (nil for an empty subtree).
func Nest[K cmp.Ordered, V any, R any](t *Tree[K, V], f func(key K, val V, left, right *R) *R) *R {
	var walk func(i int) *R
	walk = func(i int) *R {
		if i == nilNode {
			return nil
		}
		n := t.nodes[i]
		return f(n.key, n.val, walk(n.left), walk(n.right))
	}
	return walk(t.root)
}

// Balanced checks the AVL and ordering invariants, including the stored heights.
func (t *Tree[K, V]) Balanced() bool {
	ok := true
	var check func(i int, lo, hi *K) int
	check = func(i int, lo, hi *K) int {
		if i == nilNode || !ok {
			return 0
		}
		n := t.nodes[i]
		if (lo != nil && n.key <= *lo) || (hi != nil && n.key >= *hi) {
			ok = false
			return 0
		}
		lh := check(n.left, lo, &n.key)
		rh := check(n.right, &n.key, hi)
		if d := lh - rh; d > 1 || d < -1 {
			ok = false
		}
		h := 1 + max(lh, rh)
		if h != n.height {
			ok = false
		}
		return h
	}
	check(t.root, nil, nil)
	return ok
}

// Build creates a balanced tree directly from entries, without repeated insertion.
// Entries are sorted by key first; for duplicate keys the last entry wins.
func Build[K cmp.Ordered, V any](entries []Entry[K, V]) *Tree[K, V] {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b Entry[K, V]) int { return cmp.Compare(a.Key, b.Key) })
	uniq := sorted[:0]
	for _, e := range sorted {
		if len(uniq) > 0 && uniq[len(uniq)-1].Key == e.Key {
			uniq[len(uniq)-1] = e
			continue
		}
		uniq = append(uniq, e)
	}

	t := New[K, V]()
	var build func(lo, hi int) int
	build = func(lo, hi int) int {
		if lo > hi {
			return nilNode
		}
		mid := (lo + hi) / 2
		i := t.alloc(uniq[mid].Key, uniq[mid].Value)
		l := build(lo, mid-1)
		r := build(mid+1, hi)
		t.nodes[i].left = l
		t.nodes[i].right = r
		t.fix(i)
		return i
	}
	t.root = build(0, len(uniq)-1)
	t.size = len(uniq)
	return t
}
