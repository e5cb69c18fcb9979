package bptree

import (
	"iter"
	"sort"
)

// boundKind tags whether a Bound is unbounded, or bounds the range
// inclusive or exclusive of its key.
type boundKind uint8

const (
	boundUnbounded boundKind = iota
	boundIncluded
	boundExcluded
)

// Bound is one endpoint of a range query.
type Bound[K any] struct {
	kind boundKind
	key  K
}

// Unbounded returns an endpoint with no constraint.
func Unbounded[K any]() Bound[K] { return Bound[K]{kind: boundUnbounded} }

// Included returns an endpoint that includes key itself.
func Included[K any](key K) Bound[K] { return Bound[K]{kind: boundIncluded, key: key} }

// Excluded returns an endpoint that stops strictly before/after key.
func Excluded[K any](key K) Bound[K] { return Bound[K]{kind: boundExcluded, key: key} }

// Bounds is an arbitrary (start, end) pair for Tree.Range, covering the
// five shapes named in SPEC_FULL.md §4.8 plus any user-supplied pair.
type Bounds[K any] struct {
	Start Bound[K]
	End   Bound[K]
}

// Between builds an arbitrary range from two endpoints.
func Between[K any](start, end Bound[K]) Bounds[K] { return Bounds[K]{Start: start, End: end} }

// AllBounds is the unbounded-both-sides range, equivalent to Tree.All.
func AllBounds[K any]() Bounds[K] {
	return Bounds[K]{Start: Unbounded[K](), End: Unbounded[K]()}
}

// Closed is [a, b].
func Closed[K any](a, b K) Bounds[K] {
	return Bounds[K]{Start: Included(a), End: Included(b)}
}

// HalfOpen is [a, b).
func HalfOpen[K any](a, b K) Bounds[K] {
	return Bounds[K]{Start: Included(a), End: Excluded(b)}
}

// From is [a, +inf).
func From[K any](a K) Bounds[K] {
	return Bounds[K]{Start: Included(a), End: Unbounded[K]()}
}

// To is (-inf, b).
func To[K any](b K) Bounds[K] {
	return Bounds[K]{Start: Unbounded[K](), End: Excluded(b)}
}

// ToInclusive is (-inf, b].
func ToInclusive[K any](b K) Bounds[K] {
	return Bounds[K]{Start: Unbounded[K](), End: Included(b)}
}

// findRangeStart descends from the root the same way a point lookup
// would, then finds the first position in the landing leaf whose key
// is >= k. If the leaf runs out without finding one, it reports the
// first slot of the next leaf, which is guaranteed non-empty because
// only a root leaf (which has no successor) may be empty.
func (t *Tree[K, V]) findRangeStart(key K) (NodeId, int, bool) {
	leafID, ok := t.descendToLeaf(key)
	if !ok {
		return NullNode, 0, false
	}
	leaf, ok := t.leaves.Get(leafID)
	if !ok {
		return NullNode, 0, false
	}
	idx := sort.Search(len(leaf.keys), func(i int) bool { return leaf.keys[i] >= key })
	if idx < len(leaf.keys) {
		return leafID, idx, true
	}
	if leaf.next == NullNode {
		return NullNode, 0, false
	}
	if next, ok := t.leaves.Get(leaf.next); ok && len(next.keys) > 0 {
		return leaf.next, 0, true
	}
	return NullNode, 0, false
}

// All returns an iterator over every (key, value) pair in ascending
// key order, driven by the leaf chain.
func (t *Tree[K, V]) All() iter.Seq2[K, V] {
	return t.Range(AllBounds[K]())
}

// Keys returns an iterator over every key in ascending order.
func (t *Tree[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for k, _ := range t.All() {
			if !yield(k) {
				return
			}
		}
	}
}

// Values returns an iterator over every value in key order.
func (t *Tree[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for _, v := range t.All() {
			if !yield(v) {
				return
			}
		}
	}
}

// Range returns an iterator over the (key, value) pairs whose keys
// satisfy bounds. An inverted range (start > end) yields nothing,
// which falls out of the per-item bound check below without special
// casing.
func (t *Tree[K, V]) Range(bounds Bounds[K]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		var leafID NodeId
		var idx int

		switch bounds.Start.kind {
		case boundUnbounded:
			leafID = t.firstLeafID()
			idx = 0
		default:
			id, i, ok := t.findRangeStart(bounds.Start.key)
			if !ok {
				return
			}
			leafID, idx = id, i
		}

		skipCheckPending := bounds.Start.kind == boundExcluded

		for leafID != NullNode {
			leaf, ok := t.leaves.Get(leafID)
			if !ok {
				return
			}
			for ; idx < len(leaf.keys); idx++ {
				key := leaf.keys[idx]

				if skipCheckPending {
					skipCheckPending = false
					if key == bounds.Start.key {
						continue
					}
				}

				switch bounds.End.kind {
				case boundIncluded:
					if key > bounds.End.key {
						return
					}
				case boundExcluded:
					if key >= bounds.End.key {
						return
					}
				}

				if !yield(key, leaf.values[idx]) {
					return
				}
			}
			leafID = leaf.next
			idx = 0
		}
	}
}
