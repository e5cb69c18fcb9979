package bptree

import "math"

// NodeId is a 32-bit handle into an Arena. It never encodes a pointer;
// callers resolve it through the arena that owns it.
type NodeId uint32

// NullNode is the sentinel NodeId meaning "no node". It is used as the
// end-of-chain marker on leaf.next and as the absent-child marker inside
// a ChildRef.
const NullNode NodeId = math.MaxUint32

type slot[T any] struct {
	item    T
	present bool
}

// Arena is a slot-indexed store for exactly one node type (leaves or
// branches). It hands out small integer handles instead of pointers so
// that the engines in this package can copy a handle out of one node,
// drop the borrow, and look the node back up later without aliasing a
// Go pointer across the two-phase mutations described in the deletion
// and insertion engines.
type Arena[T any] struct {
	storage []slot[T]
	free    []NodeId
}

// NewArena returns an empty arena.
func NewArena[T any]() *Arena[T] {
	return &Arena[T]{}
}

// Allocate stores item and returns the handle it was stored under.
// Ids are reused LIFO: the most recently freed slot is handed out
// first, which keeps hot slots warm in cache and makes allocation
// traces reproducible across test runs.
func (a *Arena[T]) Allocate(item T) NodeId {
	if n := len(a.free); n > 0 {
		id := a.free[n-1]
		a.free = a.free[:n-1]
		a.storage[id] = slot[T]{item: item, present: true}
		return id
	}
	id := NodeId(len(a.storage))
	a.storage = append(a.storage, slot[T]{item: item, present: true})
	return id
}

// Deallocate removes the item stored at id, if any, and pushes id onto
// the free list. The sentinel id, an out-of-range id, and an already
// free id all return (zero, false).
func (a *Arena[T]) Deallocate(id NodeId) (T, bool) {
	var zero T
	if id == NullNode || int(id) >= len(a.storage) {
		return zero, false
	}
	s := a.storage[id]
	if !s.present {
		return zero, false
	}
	a.storage[id] = slot[T]{}
	a.free = append(a.free, id)
	return s.item, true
}

// Get returns a pointer to the item stored at id. The pointer is valid
// only until the next call to Allocate, which may grow the backing
// slice; callers follow the one-mutable-reference-per-arena discipline
// and never retain it across another arena operation.
func (a *Arena[T]) Get(id NodeId) (*T, bool) {
	if id == NullNode || int(id) >= len(a.storage) {
		return nil, false
	}
	if !a.storage[id].present {
		return nil, false
	}
	return &a.storage[id].item, true
}

// Contains reports whether id names a currently allocated slot.
func (a *Arena[T]) Contains(id NodeId) bool {
	if id == NullNode || int(id) >= len(a.storage) {
		return false
	}
	return a.storage[id].present
}

// AllocatedCount returns the number of currently occupied slots.
func (a *Arena[T]) AllocatedCount() int {
	n := 0
	for _, s := range a.storage {
		if s.present {
			n++
		}
	}
	return n
}

// FreeCount returns the number of slots available for reuse before the
// arena must grow its backing storage.
func (a *Arena[T]) FreeCount() int {
	return len(a.free)
}

// TotalCapacity returns the number of slots the arena currently owns,
// occupied or not.
func (a *Arena[T]) TotalCapacity() int {
	return len(a.storage)
}

// Utilization is AllocatedCount / TotalCapacity, or 0 for an empty arena.
func (a *Arena[T]) Utilization() float64 {
	if len(a.storage) == 0 {
		return 0
	}
	return float64(a.AllocatedCount()) / float64(len(a.storage))
}

// Fragmentation is FreeCount / TotalCapacity, or 0 for an empty arena.
func (a *Arena[T]) Fragmentation() float64 {
	if len(a.storage) == 0 {
		return 0
	}
	return float64(len(a.free)) / float64(len(a.storage))
}

// IsEmpty reports whether the arena holds no allocated items.
func (a *Arena[T]) IsEmpty() bool {
	return a.AllocatedCount() == 0
}

// Iter calls yield for every allocated (id, item) pair in storage order.
// It stops early if yield returns false.
func (a *Arena[T]) Iter(yield func(NodeId, *T) bool) {
	for i := range a.storage {
		if !a.storage[i].present {
			continue
		}
		if !yield(NodeId(i), &a.storage[i].item) {
			return
		}
	}
}

// Clear drops every item and free-list entry, resetting the arena to
// its zero state.
func (a *Arena[T]) Clear() {
	a.storage = nil
	a.free = nil
}

// Compact trims trailing absent slots and drops any free-list entries
// that fall out of range as a result.
func (a *Arena[T]) Compact() {
	last := 0
	for i := len(a.storage) - 1; i >= 0; i-- {
		if a.storage[i].present {
			last = i + 1
			break
		}
	}
	a.storage = a.storage[:last]
	kept := a.free[:0]
	for _, id := range a.free {
		if int(id) < last {
			kept = append(kept, id)
		}
	}
	a.free = kept
}

// Validate checks free-list well-formedness: every free id is in
// range, names an absent slot, and appears at most once.
func (a *Arena[T]) Validate() error {
	seen := make(map[NodeId]bool, len(a.free))
	for _, id := range a.free {
		if id == NullNode || int(id) >= len(a.storage) {
			return &validationError{msg: "free id out of range", detail: id}
		}
		if a.storage[id].present {
			return &validationError{msg: "free id points to an occupied slot", detail: id}
		}
		if seen[id] {
			return &validationError{msg: "duplicate free id", detail: id}
		}
		seen[id] = true
	}
	return nil
}
