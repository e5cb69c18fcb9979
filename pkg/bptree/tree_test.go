package bptree

import (
	"errors"
	"testing"
)

func TestNew_RejectsSmallCapacity(t *testing.T) {
	for _, c := range []int{0, 1, 2, 3} {
		if _, err := New[int, string](c); !errors.Is(err, ErrInvalidCapacity) {
			t.Fatalf("capacity %d: expected ErrInvalidCapacity, got %v", c, err)
		}
	}
}

func TestNew_EmptyTree(t *testing.T) {
	tree, err := New[int, string](4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tree.Len() != 0 || !tree.IsEmpty() {
		t.Fatal("expected fresh tree to be empty")
	}
	if tree.LeafCount() != 1 {
		t.Fatalf("expected a single root leaf, got %d leaves", tree.LeafCount())
	}
	if err := tree.Validate(); err != nil {
		t.Fatalf("fresh tree should validate, got %v", err)
	}
}

func TestTree_GetOnEmpty(t *testing.T) {
	tree, _ := New[int, string](4)
	if _, ok := tree.Get(1); ok {
		t.Fatal("expected Get on empty tree to report absent")
	}
	if _, err := tree.GetItem(1); !errors.Is(err, ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound, got %v", err)
	}
	if got := tree.GetOrDefault(1, "fallback"); got != "fallback" {
		t.Fatalf("expected fallback value, got %q", got)
	}
}

func TestTree_InsertThenGet(t *testing.T) {
	tree, _ := New[int, string](4)
	tree.Insert(1, "one")
	tree.Insert(2, "two")

	if v, ok := tree.Get(1); !ok || v != "one" {
		t.Fatalf("expected (one, true), got (%q, %v)", v, ok)
	}
	if !tree.ContainsKey(2) {
		t.Fatal("expected ContainsKey(2) to be true")
	}
	if v, err := tree.GetItem(2); err != nil || v != "two" {
		t.Fatalf("expected (two, nil), got (%q, %v)", v, err)
	}
}

func TestTree_FirstLast(t *testing.T) {
	tree, _ := New[int, string](4)
	for i := 0; i < 20; i++ {
		tree.Insert(i, "v")
	}

	k, _, ok := tree.First()
	if !ok || k != 0 {
		t.Fatalf("expected first key 0, got %d (ok=%v)", k, ok)
	}
	k, _, ok = tree.Last()
	if !ok || k != 19 {
		t.Fatalf("expected last key 19, got %d (ok=%v)", k, ok)
	}
}

func TestTree_FirstLastOnEmpty(t *testing.T) {
	tree, _ := New[int, string](4)
	if _, _, ok := tree.First(); ok {
		t.Fatal("expected First on empty tree to report absent")
	}
	if _, _, ok := tree.Last(); ok {
		t.Fatal("expected Last on empty tree to report absent")
	}
}

func TestTree_GetMut(t *testing.T) {
	tree, _ := New[int, int](4)
	for i := 0; i < 20; i++ {
		tree.Insert(i, i*10)
	}

	v, ok := tree.GetMut(7)
	if !ok {
		t.Fatal("expected key 7 to be present")
	}
	*v += 1
	if got, _ := tree.Get(7); got != 71 {
		t.Fatalf("expected mutation through GetMut to be visible, got %d", got)
	}

	if _, ok := tree.GetMut(999); ok {
		t.Fatal("expected GetMut on absent key to report absent")
	}
}

func TestTree_Clear(t *testing.T) {
	tree, _ := New[int, string](4)
	for i := 0; i < 50; i++ {
		tree.Insert(i, "v")
	}
	tree.Clear()

	if tree.Len() != 0 || !tree.IsEmpty() {
		t.Fatal("expected tree to be empty after Clear")
	}
	if tree.LeafCount() != 1 {
		t.Fatalf("expected a single root leaf after Clear, got %d", tree.LeafCount())
	}
	if err := tree.Validate(); err != nil {
		t.Fatalf("cleared tree should validate, got %v", err)
	}
	if tree.ContainsKey(10) {
		t.Fatal("expected no keys to survive Clear")
	}
}
