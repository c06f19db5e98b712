package btree

import (
	"strings"
	"testing"
)

func cmp(a, b any) int {
	if a == nil || b == nil {
		return -2
	}
	switch av := a.(type) {
	case int64:
		bv, ok := b.(int64)
		if !ok {
			return -2
		}
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	case string:
		bv, ok := b.(string)
		if !ok {
			return -2
		}
		return strings.Compare(av, bv)
	default:
		return -2
	}
}

func collectAll(t *testing.T, tree *BTree) []Row {
	t.Helper()
	var rows []Row
	for row := range tree.All() {
		rows = append(rows, row)
	}
	return rows
}

func TestNewRejectsSmallOrder(t *testing.T) {
	if _, err := New(1, cmp); err == nil {
		t.Error("New(1, cmp) = nil error, want error")
	}
	if _, err := New(2, cmp); err != nil {
		t.Errorf("New(2, cmp) = %v, want nil", err)
	}
}

func TestOrderedEnumeration(t *testing.T) {
	tree, _ := New(3, cmp)
	order := []int64{5, 1, 9, 3, 7, 2, 8, 4, 6, 0}
	for _, v := range order {
		tree.Insert(Row{v})
	}
	rows := collectAll(t, tree)
	if len(rows) != len(order) {
		t.Fatalf("got %d rows, want %d", len(rows), len(order))
	}
	for i, row := range rows {
		if row[0].(int64) != int64(i) {
			t.Errorf("rows[%d] = %v, want %d", i, row, i)
		}
	}
	var reversed []Row
	for row := range tree.Slice(Full(), true) {
		reversed = append(reversed, row)
	}
	for i, row := range reversed {
		want := int64(len(order) - 1 - i)
		if row[0].(int64) != want {
			t.Errorf("reversed[%d] = %v, want %d", i, row, want)
		}
	}
}

func TestSearchConsistency(t *testing.T) {
	tree, _ := New(2, cmp)
	present := map[int64]bool{}
	for _, v := range []int64{10, 20, 30, 40, 50} {
		tree.Insert(Row{v})
		present[v] = true
	}
	for v := int64(0); v < 60; v += 5 {
		got := tree.Contains(Row{v})
		if got != present[v] {
			t.Errorf("Contains(%d) = %v, want %v", v, got, present[v])
		}
	}
}

func TestDuplicatePolicy(t *testing.T) {
	tree, _ := New(3, cmp)
	tree.Insert(Row{int64(1), "a"})
	tree.Insert(Row{int64(1), "a"})
	if tree.Len() != 1 {
		t.Errorf("Len() = %d after duplicate full-row insert, want 1", tree.Len())
	}
	tree.Insert(Row{int64(1), "b"})
	if tree.Len() != 2 {
		t.Errorf("Len() = %d after same-key distinct-value insert, want 2", tree.Len())
	}
	rows := collectAll(t, tree)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
}

func TestTombstoneSemantics(t *testing.T) {
	tree, _ := New(2, cmp)
	for _, v := range []int64{1, 2, 3, 4, 5} {
		tree.Insert(Row{v})
	}
	n := tree.Delete(Exact(int64(3)))
	if n != 1 {
		t.Fatalf("Delete(3) = %d, want 1", n)
	}
	if tree.Contains(Row{int64(3)}) {
		t.Error("Contains(3) = true after delete, want false")
	}
	if tree.Len() != 4 {
		t.Errorf("Len() = %d after delete, want 4", tree.Len())
	}
	rows := collectAll(t, tree)
	for _, row := range rows {
		if row[0].(int64) == 3 {
			t.Error("iteration yielded tombstoned row 3")
		}
	}
	tree.Insert(Row{int64(3)})
	if !tree.Contains(Row{int64(3)}) {
		t.Error("Contains(3) = false after re-insert, want true")
	}
	if tree.Len() != 5 {
		t.Errorf("Len() = %d after re-insert, want 5", tree.Len())
	}
}

func TestRebalanceEquivalence(t *testing.T) {
	tree, _ := New(2, cmp)
	for i := int64(0); i < 50; i++ {
		tree.Insert(Row{i})
	}
	for i := int64(0); i < 50; i += 3 {
		tree.Delete(Exact(i))
	}
	before := collectAll(t, tree)
	tree.Rebalance()
	after := collectAll(t, tree)
	if len(before) != len(after) {
		t.Fatalf("rebalance changed live row count: %d -> %d", len(before), len(after))
	}
	for i := range before {
		if before[i][0].(int64) != after[i][0].(int64) {
			t.Errorf("rebalance reordered rows: before[%d]=%v after[%d]=%v", i, before[i], i, after[i])
		}
	}
	if !tree.root.valid(tree.order, true) {
		t.Error("root not valid after rebalance")
	}
	var walk func(n *Node, depth int) int
	leafDepth := -1
	walk = func(n *Node, depth int) int {
		if n.Leaf {
			if leafDepth == -1 {
				leafDepth = depth
			} else if leafDepth != depth {
				t.Errorf("leaf at depth %d, want %d", depth, leafDepth)
			}
			return depth
		}
		if !n.valid(tree.order, n == tree.root) {
			t.Errorf("node at depth %d invalid after rebalance", depth)
		}
		for _, c := range n.Children {
			walk(c, depth+1)
		}
		return depth
	}
	walk(tree.root, 0)
}

func TestPrefixSlicing(t *testing.T) {
	tree, _ := New(2, cmp)
	for _, a := range []int64{1, 2, 3} {
		for _, b := range []string{"x", "y", "z"} {
			tree.Insert(Row{a, b})
		}
	}
	var got []Row
	for row := range tree.Slice(Exact(int64(2)), false) {
		got = append(got, row)
	}
	if len(got) != 3 {
		t.Fatalf("Slice([2]) returned %d rows, want 3", len(got))
	}
	for _, row := range got {
		if row[0].(int64) != 2 {
			t.Errorf("Slice([2]) yielded row with first field %v", row[0])
		}
	}

	got = nil
	for row := range tree.Slice(RangeBounds(Row{int64(1)}, Row{int64(3)}), false) {
		got = append(got, row)
	}
	if len(got) != 6 {
		t.Fatalf("Slice([1]:[3]) returned %d rows, want 6", len(got))
	}
	for _, row := range got {
		if row[0].(int64) < 1 || row[0].(int64) >= 3 {
			t.Errorf("Slice([1]:[3]) yielded out-of-range row %v", row)
		}
	}
}

func TestSplitChildAndLargeInsert(t *testing.T) {
	tree, _ := New(2, cmp)
	const n = 5000
	for i := int64(0); i < n; i++ {
		tree.Insert(Row{i})
	}
	if tree.Len() != n {
		t.Fatalf("Len() = %d, want %d", tree.Len(), n)
	}
	for i := int64(0); i < n; i += 97 {
		if !tree.Contains(Row{i}) {
			t.Fatalf("Contains(%d) = false, want true", i)
		}
	}
}
