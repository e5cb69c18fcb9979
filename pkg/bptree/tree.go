// Package bptree implements an in-memory ordered map as an arena-backed
// B+ tree: point lookup, insertion, update, deletion, full ordered
// iteration, and range iteration over arbitrary bound kinds. Keys are
// any golang.org/x/exp/constraints.Ordered type; values are opaque.
//
// The tree is single-threaded: callers that need concurrent access must
// provide their own external synchronization.
package bptree

import "golang.org/x/exp/constraints"

// MinCapacity is the smallest fan-out New will accept.
const MinCapacity = 4

// Tree is an ordered key/value map backed by two arenas, one for
// leaves and one for branches, plus a single root reference. Every
// public method dispatches to the insertion engine, deletion engine,
// range-start navigator, or invariant checker, each of which observes
// the one-mutable-reference-per-arena discipline described in the
// package's design notes.
type Tree[K constraints.Ordered, V any] struct {
	capacity int
	leaves   *Arena[Leaf[K, V]]
	branches *Arena[Branch[K]]
	root     ChildRef
	size     int
}

// New creates an empty Tree with the given node capacity. capacity
// must be at least MinCapacity (4); smaller values return
// ErrInvalidCapacity.
func New[K constraints.Ordered, V any](capacity int) (*Tree[K, V], error) {
	if capacity < MinCapacity {
		return nil, invalidCapacityError(capacity)
	}
	t := &Tree[K, V]{
		capacity: capacity,
		leaves:   NewArena[Leaf[K, V]](),
		branches: NewArena[Branch[K]](),
	}
	id := t.leaves.Allocate(*newLeaf[K, V](capacity))
	t.root = leafRef(id)
	return t, nil
}

// Len returns the number of key/value pairs stored in the tree.
func (t *Tree[K, V]) Len() int { return t.size }

// IsEmpty reports whether the tree holds no entries.
func (t *Tree[K, V]) IsEmpty() bool { return t.size == 0 }

// LeafCount returns the number of leaves currently reachable from the
// root, by walking the leaf chain.
func (t *Tree[K, V]) LeafCount() int {
	id := t.firstLeafID()
	n := 0
	for id != NullNode {
		leaf, ok := t.leaves.Get(id)
		if !ok {
			break
		}
		n++
		id = leaf.next
	}
	return n
}

// Get returns the value stored under key, if any.
func (t *Tree[K, V]) Get(key K) (V, bool) {
	var zero V
	leafID, ok := t.descendToLeaf(key)
	if !ok {
		return zero, false
	}
	leaf, ok := t.leaves.Get(leafID)
	if !ok {
		return zero, false
	}
	return leaf.Get(key)
}

// GetMut returns a mutable pointer to the value stored under key, or
// (nil, false) if key is absent. The pointer aliases the tree's own
// storage directly (the way Arena.Get already returns *T) and is only
// valid until the next mutating call on the tree.
func (t *Tree[K, V]) GetMut(key K) (*V, bool) {
	leafID, ok := t.descendToLeaf(key)
	if !ok {
		return nil, false
	}
	leaf, ok := t.leaves.Get(leafID)
	if !ok {
		return nil, false
	}
	return leaf.GetMut(key)
}

// ContainsKey reports whether key is present.
func (t *Tree[K, V]) ContainsKey(key K) bool {
	_, ok := t.Get(key)
	return ok
}

// GetItem returns the value stored under key, or ErrKeyNotFound if
// key is absent.
func (t *Tree[K, V]) GetItem(key K) (V, error) {
	v, ok := t.Get(key)
	if !ok {
		var zero V
		return zero, keyNotFoundError()
	}
	return v, nil
}

// GetOrDefault returns the value stored under key, or def if key is
// absent. Unlike a reference-returning accessor, this always copies
// the result, so there is no lifetime ambiguity between the tree and
// the caller-supplied default (see SPEC_FULL.md OQ2).
func (t *Tree[K, V]) GetOrDefault(key K, def V) V {
	if v, ok := t.Get(key); ok {
		return v
	}
	return def
}

// Clear discards every entry and resets the tree to a single empty
// root leaf.
func (t *Tree[K, V]) Clear() {
	t.leaves.Clear()
	t.branches.Clear()
	id := t.leaves.Allocate(*newLeaf[K, V](t.capacity))
	t.root = leafRef(id)
	t.size = 0
}

// First returns the smallest key/value pair in the tree.
func (t *Tree[K, V]) First() (K, V, bool) {
	var zeroK K
	var zeroV V
	id := t.firstLeafID()
	if id == NullNode {
		return zeroK, zeroV, false
	}
	leaf, ok := t.leaves.Get(id)
	if !ok || len(leaf.keys) == 0 {
		return zeroK, zeroV, false
	}
	return leaf.keys[0], leaf.values[0], true
}

// Last returns the largest key/value pair in the tree.
func (t *Tree[K, V]) Last() (K, V, bool) {
	var zeroK K
	var zeroV V
	ref := t.root
	for ref.Kind == ChildBranch {
		branch, ok := t.branches.Get(ref.ID)
		if !ok || len(branch.children) == 0 {
			return zeroK, zeroV, false
		}
		ref = branch.children[len(branch.children)-1]
	}
	leaf, ok := t.leaves.Get(ref.ID)
	if !ok || len(leaf.keys) == 0 {
		return zeroK, zeroV, false
	}
	n := len(leaf.keys)
	return leaf.keys[n-1], leaf.values[n-1], true
}

// descendToLeaf walks from the root to the leaf that would contain
// key, returning its id. It always succeeds (returns ok=true) because
// every tree has at least one leaf.
func (t *Tree[K, V]) descendToLeaf(key K) (NodeId, bool) {
	ref := t.root
	for ref.Kind == ChildBranch {
		branch, ok := t.branches.Get(ref.ID)
		if !ok {
			return NullNode, false
		}
		idx := branch.FindChildIndex(key)
		ref = branch.children[idx]
	}
	return ref.ID, true
}

// firstLeafID descends along child 0 from the root.
func (t *Tree[K, V]) firstLeafID() NodeId {
	ref := t.root
	for ref.Kind == ChildBranch {
		branch, ok := t.branches.Get(ref.ID)
		if !ok || len(branch.children) == 0 {
			return NullNode
		}
		ref = branch.children[0]
	}
	return ref.ID
}
