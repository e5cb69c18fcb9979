package bptree

import "golang.org/x/exp/constraints"

// insertResult is the sum type the insertion engine's recursive
// descent returns: either the old value (if any) was updated in
// place, or the child split and a new sibling plus separator must be
// propagated to the caller.
type insertResult[K constraints.Ordered, V any] struct {
	split     bool
	oldValue  V
	hadOld    bool
	newChild  ChildRef
	separator K
}

// Insert stores key/value, returning the previous value (if any) and
// whether one existed. An error is returned only in the practically
// unreachable case of a split integrity violation (SPEC_FULL.md OQ3);
// the tree is left exactly as it was before the call when that
// happens.
func (t *Tree[K, V]) Insert(key K, value V) (V, bool, error) {
	result, err := t.insertRecursive(t.root, key, value)
	if err != nil {
		var zero V
		return zero, false, err
	}
	if !result.split {
		if !result.hadOld {
			t.size++
		}
		return result.oldValue, result.hadOld, nil
	}

	// Root grew: build a fresh branch with one separator and the two
	// children (old root, new sibling). The old root's ChildRef is
	// moved by value; no placeholder node is ever allocated, so there
	// is nothing to free on this path (SPEC_FULL.md §9).
	newRoot := newBranch[K](t.capacity)
	newRoot.keys = append(newRoot.keys, result.separator)
	newRoot.children = append(newRoot.children, t.root, result.newChild)
	id := t.branches.Allocate(*newRoot)
	t.root = branchRef(id)

	t.size++
	return result.oldValue, result.hadOld, nil
}

func (t *Tree[K, V]) insertRecursive(ref ChildRef, key K, value V) (insertResult[K, V], error) {
	if ref.Kind == ChildLeaf {
		return t.insertIntoLeaf(ref.ID, key, value)
	}
	return t.insertIntoBranch(ref.ID, key, value)
}

func (t *Tree[K, V]) insertIntoLeaf(id NodeId, key K, value V) (insertResult[K, V], error) {
	leaf, ok := t.leaves.Get(id)
	if !ok {
		return insertResult[K, V]{}, dataIntegrityError("leaf id missing from arena")
	}
	out, err := leaf.Insert(key, value)
	if err != nil {
		return insertResult[K, V]{}, err
	}
	if !out.split {
		return insertResult[K, V]{oldValue: out.oldValue, hadOld: out.hadOld}, nil
	}

	newID := t.leaves.Allocate(*out.newLeaf)
	// Repoint the original leaf's next now that the new id is known,
	// preserving the forward chain (SPEC_FULL.md §9).
	leaf, _ = t.leaves.Get(id)
	leaf.next = newID

	return insertResult[K, V]{split: true, newChild: leafRef(newID), separator: out.separator}, nil
}

func (t *Tree[K, V]) insertIntoBranch(id NodeId, key K, value V) (insertResult[K, V], error) {
	branch, ok := t.branches.Get(id)
	if !ok {
		return insertResult[K, V]{}, dataIntegrityError("branch id missing from arena")
	}
	idx := branch.FindChildIndex(key)
	child := branch.children[idx]

	childResult, err := t.insertRecursive(child, key, value)
	if err != nil {
		return insertResult[K, V]{}, err
	}
	if !childResult.split {
		return insertResult[K, V]{oldValue: childResult.oldValue, hadOld: childResult.hadOld}, nil
	}

	branch, _ = t.branches.Get(id)
	out := branch.InsertChildAndSplitIfNeeded(idx, childResult.separator, childResult.newChild)
	if !out.split {
		return insertResult[K, V]{}, nil
	}

	newID := t.branches.Allocate(*out.newBranch)
	return insertResult[K, V]{split: true, newChild: branchRef(newID), separator: out.separator}, nil
}
