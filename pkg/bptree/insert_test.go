package bptree

import "testing"

func TestInsert_NewKeyReturnsZeroAndFalse(t *testing.T) {
	tree, _ := New[int, string](4)
	prev, hadOld, err := tree.Insert(1, "one")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hadOld || prev != "" {
		t.Fatalf("expected (zero, false) for a fresh key, got (%q, %v)", prev, hadOld)
	}
	if tree.Len() != 1 {
		t.Fatalf("expected length 1, got %d", tree.Len())
	}
}

// R2: Insert(k, v1) then Insert(k, v2) yields Get(k) == v2 and returns v1.
func TestInsert_UpdateReturnsPreviousValue(t *testing.T) {
	tree, _ := New[int, string](4)
	tree.Insert(1, "one")

	prev, hadOld, err := tree.Insert(1, "uno")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !hadOld || prev != "one" {
		t.Fatalf("expected (one, true), got (%q, %v)", prev, hadOld)
	}
	if v, _ := tree.Get(1); v != "uno" {
		t.Fatalf("expected updated value uno, got %q", v)
	}
	if tree.Len() != 1 {
		t.Fatalf("update must not change length, got %d", tree.Len())
	}
}

func TestInsert_LeafSplitsAtCapacity(t *testing.T) {
	tree, _ := New[int, string](4)
	for i := 1; i <= 5; i++ {
		if _, _, err := tree.Insert(i, "v"); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
		if err := tree.Validate(); err != nil {
			t.Fatalf("after inserting %d: %v", i, err)
		}
	}
	if tree.LeafCount() < 2 {
		t.Fatalf("expected at least 2 leaves after overflowing capacity 4, got %d", tree.LeafCount())
	}
	for i := 1; i <= 5; i++ {
		if _, ok := tree.Get(i); !ok {
			t.Fatalf("expected key %d to be present after split", i)
		}
	}
}

func TestInsert_BranchSplitsAndRootGrows(t *testing.T) {
	tree, _ := New[int, string](4)
	for i := 0; i < 30; i++ {
		if _, _, err := tree.Insert(i, "v"); err != nil {
			t.Fatalf("insert %d: %v", i, err)
		}
	}
	if err := tree.Validate(); err != nil {
		t.Fatalf("tree should validate after many inserts: %v", err)
	}
	if tree.Len() != 30 {
		t.Fatalf("expected length 30, got %d", tree.Len())
	}
	for i := 0; i < 30; i++ {
		if v, ok := tree.Get(i); !ok || v != "v" {
			t.Fatalf("expected key %d present, got (%q, %v)", i, v, ok)
		}
	}
}

func TestInsert_OutOfOrderKeysStayOrdered(t *testing.T) {
	tree, _ := New[int, string](4)
	tree.Insert(1, "one")
	tree.Insert(3, "three")
	tree.Insert(2, "two")

	var keys []int
	for k := range tree.Keys() {
		keys = append(keys, k)
	}
	want := []int{1, 2, 3}
	if len(keys) != len(want) {
		t.Fatalf("expected %v, got %v", want, keys)
	}
	for i, k := range want {
		if keys[i] != k {
			t.Fatalf("expected %v, got %v", want, keys)
		}
	}
}

// Scenario 4: capacity 5, insert 0..10. Every leaf ends up with between
// minKeys and capacity keys and the chain yields 0..9 in order.
func TestInsert_Scenario4_LeafOccupancyAfterSplits(t *testing.T) {
	tree, _ := New[int, string](5)
	for i := 0; i < 10; i++ {
		tree.Insert(i, "v")
	}
	if err := tree.Validate(); err != nil {
		t.Fatalf("unexpected validation error: %v", err)
	}

	var got []int
	for k := range tree.Keys() {
		got = append(got, k)
	}
	if len(got) != 10 {
		t.Fatalf("expected 10 keys via chain, got %d", len(got))
	}
	for i, k := range got {
		if k != i {
			t.Fatalf("expected ascending 0..9, got %v", got)
		}
	}
}
