package bptree

import (
	"fmt"
	"strings"
)

// ArenaStats is a read-only snapshot of one arena's occupancy,
// suitable for printing or feeding into an external metrics system
// (see pkg/treestats for a Prometheus-backed recorder).
type ArenaStats struct {
	Allocated     int
	Free          int
	Total         int
	Utilization   float64
	Fragmentation float64
}

func statsOf[T any](a *Arena[T]) ArenaStats {
	return ArenaStats{
		Allocated:     a.AllocatedCount(),
		Free:          a.FreeCount(),
		Total:         a.TotalCapacity(),
		Utilization:   a.Utilization(),
		Fragmentation: a.Fragmentation(),
	}
}

// TreeStats bundles arena occupancy for both arenas plus overall tree
// shape, for use by debugging printers and external collaborators.
type TreeStats struct {
	Len        int
	LeafCount  int
	LeafArena  ArenaStats
	BranchArena ArenaStats
}

// Stats returns a snapshot of the tree's current occupancy and shape.
func (t *Tree[K, V]) Stats() TreeStats {
	return TreeStats{
		Len:         t.Len(),
		LeafCount:   t.LeafCount(),
		LeafArena:   statsOf(t.leaves),
		BranchArena: statsOf(t.branches),
	}
}

// DumpString renders the tree structure as an indented tree, for
// manual inspection in tests and demo programs. It is read-only: it
// never mutates the tree or either arena.
func (t *Tree[K, V]) DumpString() string {
	var b strings.Builder
	t.dumpNode(&b, t.root, 0)
	return b.String()
}

func (t *Tree[K, V]) dumpNode(b *strings.Builder, ref ChildRef, depth int) {
	indent := strings.Repeat("  ", depth)
	if ref.Kind == ChildLeaf {
		leaf, ok := t.leaves.Get(ref.ID)
		if !ok {
			fmt.Fprintf(b, "%sleaf(%d): <missing>\n", indent, ref.ID)
			return
		}
		fmt.Fprintf(b, "%sleaf(%d): keys=%v next=%v\n", indent, ref.ID, leaf.keys, leaf.next)
		return
	}
	branch, ok := t.branches.Get(ref.ID)
	if !ok {
		fmt.Fprintf(b, "%sbranch(%d): <missing>\n", indent, ref.ID)
		return
	}
	fmt.Fprintf(b, "%sbranch(%d): keys=%v\n", indent, ref.ID, branch.keys)
	for _, child := range branch.children {
		t.dumpNode(b, child, depth+1)
	}
}
