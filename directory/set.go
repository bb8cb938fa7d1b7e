package directory

import "cmp"

// Set is an ordered set backed by an AVL Tree.
type Set[K cmp.Ordered] struct {
	t *Tree[K, struct{}]
}

// NewSet returns a balanced set holding keys.  Duplicates are dropped.
func NewSet[K cmp.Ordered](keys ...K) *Set[K] {
	entries := make([]Entry[K, struct{}], 0, len(keys))
	for _, k := range keys {
		entries = append(entries, Entry[K, struct{}]{Key: k})
	}
	return &Set[K]{t: Build(entries)}
}

// Insert adds key, returning false if it was already present.
func (s *Set[K]) Insert(key K) bool {
	return s.t.Insert(key, struct{}{})
}

// Remove deletes key, returning false if it wasn't present.
func (s *Set[K]) Remove(key K) bool {
	return s.t.Remove(key)
}

func (s *Set[K]) Contains(key K) bool {
	return s.t.Contains(key)
}

// Keys returns the members in ascending order.
func (s *Set[K]) Keys() []K {
	return s.t.Keys()
}

func (s *Set[K]) Len() int {
	return s.t.Len()
}

// Balanced reports whether the underlying tree satisfies the AVL invariant.
func (s *Set[K]) Balanced() bool {
	return s.t.Balanced()
}
