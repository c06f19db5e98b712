package index

import (
	"testing"

	"rowtree/schema"
)

func testSchema() schema.Schema {
	return schema.New(
		[]schema.Column{{Name: "one", Type: schema.Int64}, {Name: "two", Type: schema.Text}},
		[]schema.Column{{Name: "three", Type: schema.Text}},
	)
}

func collect(t *testing.T, ix *Index, b Bounds) []schema.Row {
	t.Helper()
	seq, err := ix.Slice(b)
	if err != nil {
		t.Fatalf("Slice(%v) error: %v", b, err)
	}
	var rows []schema.Row
	for row := range seq {
		rows = append(rows, row)
	}
	return rows
}

func TestIndexInsertAndSlicePoint(t *testing.T) {
	ix, err := New(testSchema(), 4)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	rows := []schema.Row{
		{int64(1), "a", "v1"},
		{int64(1), "b", "v2"},
		{int64(2), "a", "v3"},
	}
	for _, r := range rows {
		if err := ix.Insert(r); err != nil {
			t.Fatalf("Insert(%v) error: %v", r, err)
		}
	}
	got := collect(t, ix, Bounds{B("one", Eq(int64(1)))})
	if len(got) != 2 {
		t.Fatalf("Slice(one=1) = %d rows, want 2", len(got))
	}
}

func TestIndexSupportsBounds(t *testing.T) {
	ix, _ := New(testSchema(), 4)
	if !ix.SupportsBounds(Bounds{B("one", Eq(int64(1))), B("two", Eq("a"))}) {
		t.Error("SupportsBounds(one,two) = false, want true")
	}
	if ix.SupportsBounds(Bounds{B("two", Eq("a"))}) {
		t.Error("SupportsBounds(two) = true, want false (not a schema prefix)")
	}
	if ix.SupportsBounds(Bounds{B("one", Between(int64(1), int64(2))), B("two", Eq("a"))}) {
		t.Error("SupportsBounds(range-then-scalar) = true, want false")
	}
	if !ix.SupportsBounds(nil) {
		t.Error("SupportsBounds(nil) = false, want true")
	}
}

func TestIndexRangeBounds(t *testing.T) {
	ix, _ := New(testSchema(), 4)
	for i := int64(0); i < 5; i++ {
		if err := ix.Insert(schema.Row{i, "k", "v"}); err != nil {
			t.Fatalf("Insert error: %v", err)
		}
	}
	got := collect(t, ix, Bounds{B("one", Between(int64(1), int64(3)))})
	if len(got) != 2 {
		t.Fatalf("Slice(one=[1,3)) = %d rows, want 2", len(got))
	}
	for _, row := range got {
		v := row[0].(int64)
		if v < 1 || v >= 3 {
			t.Errorf("out-of-range row %v", row)
		}
	}
}

func TestIndexDeleteAndContains(t *testing.T) {
	ix, _ := New(testSchema(), 4)
	ix.Insert(schema.Row{int64(1), "a", "v1"})
	if !ix.Contains(schema.Row{int64(1), "a"}) {
		t.Fatal("Contains after insert = false")
	}
	n := ix.Delete(schema.Row{int64(1), "a"})
	if n != 1 {
		t.Fatalf("Delete() = %d, want 1", n)
	}
	if ix.Contains(schema.Row{int64(1), "a"}) {
		t.Error("Contains after delete = true, want false")
	}
}

func TestIndexRejectsWrongArity(t *testing.T) {
	ix, _ := New(testSchema(), 4)
	if err := ix.Insert(schema.Row{int64(1), "a"}); err == nil {
		t.Error("Insert(short row) = nil error, want error")
	}
}

func TestIndexSupportsOrder(t *testing.T) {
	ix, _ := New(testSchema(), 4)
	if !ix.SupportsOrder([]string{"one"}) {
		t.Error("SupportsOrder([one]) = false, want true")
	}
	if !ix.SupportsOrder([]string{"one", "two"}) {
		t.Error("SupportsOrder([one two]) = false, want true")
	}
	if ix.SupportsOrder([]string{"two"}) {
		t.Error("SupportsOrder([two]) = true, want false")
	}
}
