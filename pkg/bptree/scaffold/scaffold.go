// Package scaffold holds the degenerate baseline the core arena-backed
// tree is benchmarked against: a single sorted slice with no branching
// at all. It exists purely as a comparison point for pkg/bptree's
// benchmark suite, the way an early prototype that just wrapped a
// BTreeMap once stood in for the real tree before the arena structure
// existed.
package scaffold

import (
	"sort"

	"golang.org/x/exp/constraints"
)

// OrderedMap is a minimal sorted-slice map: O(log n) lookup via binary
// search, O(n) insert/delete due to the shift. It has no notion of
// capacity or node splitting.
type OrderedMap[K constraints.Ordered, V any] struct {
	keys   []K
	values []V
}

// New returns an empty OrderedMap.
func New[K constraints.Ordered, V any]() *OrderedMap[K, V] {
	return &OrderedMap[K, V]{}
}

func (m *OrderedMap[K, V]) search(key K) (int, bool) {
	idx := sort.Search(len(m.keys), func(i int) bool { return m.keys[i] >= key })
	if idx < len(m.keys) && m.keys[idx] == key {
		return idx, true
	}
	return idx, false
}

// Insert stores key/value, returning the previous value (if any).
func (m *OrderedMap[K, V]) Insert(key K, value V) (V, bool) {
	idx, found := m.search(key)
	if found {
		old := m.values[idx]
		m.values[idx] = value
		return old, true
	}
	var zero V
	m.keys = append(m.keys, key)
	m.values = append(m.values, value)
	copy(m.keys[idx+1:], m.keys[idx:])
	copy(m.values[idx+1:], m.values[idx:])
	m.keys[idx] = key
	m.values[idx] = value
	return zero, false
}

// Get returns the value stored under key, if any.
func (m *OrderedMap[K, V]) Get(key K) (V, bool) {
	var zero V
	idx, found := m.search(key)
	if !found {
		return zero, false
	}
	return m.values[idx], true
}

// Remove deletes key if present, returning its value.
func (m *OrderedMap[K, V]) Remove(key K) (V, bool) {
	var zero V
	idx, found := m.search(key)
	if !found {
		return zero, false
	}
	val := m.values[idx]
	m.keys = append(m.keys[:idx], m.keys[idx+1:]...)
	m.values = append(m.values[:idx], m.values[idx+1:]...)
	return val, true
}

// Len returns the number of entries stored.
func (m *OrderedMap[K, V]) Len() int { return len(m.keys) }

// All iterates every (key, value) pair in ascending key order.
func (m *OrderedMap[K, V]) All(yield func(K, V) bool) {
	for i, k := range m.keys {
		if !yield(k, m.values[i]) {
			return
		}
	}
}

// Range iterates the (key, value) pairs with keys in [start, end).
func (m *OrderedMap[K, V]) Range(start, end K, yield func(K, V) bool) {
	idx, _ := m.search(start)
	for ; idx < len(m.keys) && m.keys[idx] < end; idx++ {
		if !yield(m.keys[idx], m.values[idx]) {
			return
		}
	}
}
