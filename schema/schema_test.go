package schema

import "testing"

func sampleSchema() Schema {
	return New(
		[]Column{{Name: "id", Type: Int64}},
		[]Column{{Name: "name", Type: Text}, {Name: "active", Type: Bool}},
	)
}

func TestSchemaColumnNames(t *testing.T) {
	s := sampleSchema()
	want := []string{"id", "name", "active"}
	got := s.ColumnNames()
	if len(got) != len(want) {
		t.Fatalf("ColumnNames() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ColumnNames()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSchemaKeyNames(t *testing.T) {
	s := sampleSchema()
	keys := s.KeyNames()
	if len(keys) != 1 || keys[0] != "id" {
		t.Errorf("KeyNames() = %v, want [id]", keys)
	}
}

func TestSchemaIndexOf(t *testing.T) {
	s := sampleSchema()
	if i := s.IndexOf("name"); i != 1 {
		t.Errorf("IndexOf(name) = %d, want 1", i)
	}
	if i := s.IndexOf("missing"); i != -1 {
		t.Errorf("IndexOf(missing) = %d, want -1", i)
	}
}

func TestSchemaHasColumns(t *testing.T) {
	s := sampleSchema()
	if !s.HasColumns([]string{"id", "active"}) {
		t.Error("HasColumns([id active]) = false, want true")
	}
	if s.HasColumns([]string{"id", "nope"}) {
		t.Error("HasColumns([id nope]) = true, want false")
	}
}

func TestSchemaValidate(t *testing.T) {
	s := sampleSchema()
	if err := s.Validate(Row{int64(1), "alice", true}); err != nil {
		t.Errorf("Validate(valid row) = %v, want nil", err)
	}
	if err := s.Validate(Row{int64(1), "alice"}); err == nil {
		t.Error("Validate(short row) = nil, want error")
	}
	if err := s.Validate(Row{"not-an-int", "alice", true}); err == nil {
		t.Error("Validate(wrong type) = nil, want error")
	}
	if err := s.Validate(Row{nil, "alice", nil}); err != nil {
		t.Errorf("Validate(nulls) = %v, want nil", err)
	}
}

func TestCompareValues(t *testing.T) {
	cases := []struct {
		name string
		a, b any
		want int
	}{
		{"int64 less", int64(1), int64(2), -1},
		{"int64 equal", int64(5), int64(5), 0},
		{"int64 greater", int64(9), int64(2), 1},
		{"float64 less", 1.5, 2.5, -1},
		{"string order", "abc", "abd", -1},
		{"bool order", false, true, -1},
		{"nil mismatch", nil, int64(1), -2},
		{"type mismatch", int64(1), "1", -2},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := CompareValues(c.a, c.b); got != c.want {
				t.Errorf("CompareValues(%v, %v) = %d, want %d", c.a, c.b, got, c.want)
			}
		})
	}
}

func TestToMap(t *testing.T) {
	m := ToMap([]string{"id", "name"}, Row{int64(1), "alice"})
	if m["id"] != int64(1) || m["name"] != "alice" {
		t.Errorf("ToMap() = %v, want map[id:1 name:alice]", m)
	}
}
