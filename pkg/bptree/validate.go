package bptree

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Validate checks every structural invariant named in SPEC_FULL.md §3
// and §4.9, in order: node shape and key ordering, the corridor each
// leaf's keys must fall within given its ancestors' separators, leaf
// chain correctness, arena/tree id consistency, and free-list
// well-formedness. It returns nil on success or a descriptive error
// naming the first violation found.
func (t *Tree[K, V]) Validate() error {
	leafIDs := map[NodeId]bool{}
	branchIDs := map[NodeId]bool{}
	structuralKeyCount := 0

	if err := t.validateNode(t.root, nil, nil, true, leafIDs, branchIDs, &structuralKeyCount); err != nil {
		return err
	}

	chainIDs, chainKeyCount, err := t.validateChain()
	if err != nil {
		return err
	}
	if chainKeyCount != structuralKeyCount {
		return &validationError{msg: "chain key count does not match in-order traversal count", detail: fmt.Sprintf("chain=%d tree=%d", chainKeyCount, structuralKeyCount)}
	}
	if len(chainIDs) != len(leafIDs) {
		return &validationError{msg: "chain leaf set size does not match tree-traversal leaf set size"}
	}
	for id := range chainIDs {
		if !leafIDs[id] {
			return &validationError{msg: "leaf reached via chain but not via tree traversal", detail: id}
		}
	}

	allocatedLeaves := map[NodeId]bool{}
	t.leaves.Iter(func(id NodeId, _ *Leaf[K, V]) bool {
		allocatedLeaves[id] = true
		return true
	})
	if len(allocatedLeaves) != len(leafIDs) {
		return &validationError{msg: "leaf arena allocation count does not match tree-traversal leaf count"}
	}
	for id := range leafIDs {
		if !allocatedLeaves[id] {
			return &validationError{msg: "leaf reachable from root but not allocated in leaf arena", detail: id}
		}
	}

	allocatedBranches := map[NodeId]bool{}
	t.branches.Iter(func(id NodeId, _ *Branch[K]) bool {
		allocatedBranches[id] = true
		return true
	})
	if len(allocatedBranches) != len(branchIDs) {
		return &validationError{msg: "branch arena allocation count does not match tree-traversal branch count"}
	}
	for id := range branchIDs {
		if !allocatedBranches[id] {
			return &validationError{msg: "branch reachable from root but not allocated in branch arena", detail: id}
		}
	}

	if err := t.leaves.Validate(); err != nil {
		return err
	}
	if err := t.branches.Validate(); err != nil {
		return err
	}
	return nil
}

// validateNode recursively checks key ordering, capacity, and
// min-fill (root exempt) for ref, and that every key it holds falls
// within the open corridor (lo, hi) inherited from ancestor
// separators. It records every visited id into leafIDs/branchIDs and
// accumulates the total key count into keyCount.
func (t *Tree[K, V]) validateNode(ref ChildRef, lo, hi *K, isRoot bool, leafIDs, branchIDs map[NodeId]bool, keyCount *int) error {
	if ref.Kind == ChildLeaf {
		leaf, ok := t.leaves.Get(ref.ID)
		if !ok {
			return &validationError{msg: "dangling leaf reference", detail: ref.ID}
		}
		if leafIDs[ref.ID] {
			return &validationError{msg: "leaf reachable via more than one path", detail: ref.ID}
		}
		leafIDs[ref.ID] = true

		if err := checkStrictlyIncreasing(leaf.keys); err != nil {
			return err
		}
		if len(leaf.keys) > leaf.capacity {
			return &validationError{msg: "leaf exceeds capacity", detail: ref.ID}
		}
		if !isRoot && leaf.isUnderfull() {
			return &validationError{msg: "non-root leaf is underfull", detail: ref.ID}
		}
		for _, k := range leaf.keys {
			if lo != nil && !(*lo < k) {
				return &validationError{msg: "leaf key violates lower corridor bound", detail: ref.ID}
			}
			if hi != nil && !(k < *hi) {
				return &validationError{msg: "leaf key violates upper corridor bound", detail: ref.ID}
			}
		}
		*keyCount += len(leaf.keys)
		return nil
	}

	branch, ok := t.branches.Get(ref.ID)
	if !ok {
		return &validationError{msg: "dangling branch reference", detail: ref.ID}
	}
	if branchIDs[ref.ID] {
		return &validationError{msg: "branch reachable via more than one path", detail: ref.ID}
	}
	branchIDs[ref.ID] = true

	if err := checkStrictlyIncreasing(branch.keys); err != nil {
		return err
	}
	if len(branch.children) != len(branch.keys)+1 {
		return &validationError{msg: "branch child count does not match key count + 1", detail: ref.ID}
	}
	if len(branch.keys) > branch.capacity {
		return &validationError{msg: "branch exceeds capacity", detail: ref.ID}
	}
	if isRoot {
		if len(branch.keys) < 1 {
			return &validationError{msg: "branch root has fewer than 1 key", detail: ref.ID}
		}
	} else if branch.isUnderfull() {
		return &validationError{msg: "non-root branch is underfull", detail: ref.ID}
	}

	for i, child := range branch.children {
		childLo, childHi := lo, hi
		if i > 0 {
			k := branch.keys[i-1]
			childLo = &k
		}
		if i < len(branch.keys) {
			k := branch.keys[i]
			childHi = &k
		}
		if err := t.validateNode(child, childLo, childHi, false, leafIDs, branchIDs, keyCount); err != nil {
			return err
		}
	}
	return nil
}

// validateChain walks the leaf chain from the first leaf, checking
// that keys are strictly increasing across leaf boundaries, and
// returns the set of visited leaf ids and the total key count.
func (t *Tree[K, V]) validateChain() (map[NodeId]bool, int, error) {
	visited := map[NodeId]bool{}
	count := 0
	var prev *K

	id := t.firstLeafID()
	for id != NullNode {
		if visited[id] {
			return nil, 0, &validationError{msg: "leaf chain contains a cycle", detail: id}
		}
		leaf, ok := t.leaves.Get(id)
		if !ok {
			return nil, 0, &validationError{msg: "leaf chain references a dangling id", detail: id}
		}
		visited[id] = true
		for _, k := range leaf.keys {
			if prev != nil && !(*prev < k) {
				return nil, 0, &validationError{msg: "leaf chain keys are not strictly increasing"}
			}
			kk := k
			prev = &kk
			count++
		}
		id = leaf.next
	}
	return visited, count, nil
}

func checkStrictlyIncreasing[K constraints.Ordered](keys []K) error {
	for i := 1; i < len(keys); i++ {
		if !(keys[i-1] < keys[i]) {
			return &validationError{msg: "keys are not strictly increasing"}
		}
	}
	return nil
}
