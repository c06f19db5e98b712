// Package schema describes the declared shape of a table: an ordered
// list of typed key columns followed by an ordered list of typed value
// columns, plus the row-comparison primitive the B-tree and index
// layers build on.
//
package schema

import (
	"fmt"
	"strings"
)

// Type identifies a column's declared value domain.
type Type uint8

const (
	Int64 Type = iota
	Text
	Bool
	Float64
)

func (t Type) String() string {
	switch t {
	case Int64:
		return "INT64"
	case Text:
		return "TEXT"
	case Bool:
		return "BOOL"
	case Float64:
		return "FLOAT64"
	default:
		return "UNKNOWN"
	}
}

// Column describes one named, typed field in a row.
type Column struct {
	Name string
	Type Type
}

// Validate checks that v conforms to the column's declared type.
// A nil value is always accepted (NULL).
func (c Column) Validate(v any) error {
	if v == nil {
		return nil
	}
	ok := false
	switch c.Type {
	case Int64:
		_, ok = v.(int64)
	case Text:
		_, ok = v.(string)
	case Bool:
		_, ok = v.(bool)
	case Float64:
		_, ok = v.(float64)
	}
	if !ok {
		return fmt.Errorf("column %q: value %v is not a %s", c.Name, v, c.Type)
	}
	return nil
}

// Row is an ordered tuple of field values, key columns first.
type Row []any

// Schema is an ordered list of key columns followed by an ordered list
// of value columns.
type Schema struct {
	Key   []Column
	Value []Column
}

// New builds a Schema from key and value column lists. Column names
// must be unique across both lists.
func New(key, value []Column) Schema {
	return Schema{Key: append([]Column(nil), key...), Value: append([]Column(nil), value...)}
}

// Len returns the total number of columns (key + value).
func (s Schema) Len() int {
	return len(s.Key) + len(s.Value)
}

// Columns returns all columns, key columns first.
func (s Schema) Columns() []Column {
	cols := make([]Column, 0, s.Len())
	cols = append(cols, s.Key...)
	cols = append(cols, s.Value...)
	return cols
}

// ColumnNames returns the names of all columns in schema order.
func (s Schema) ColumnNames() []string {
	cols := s.Columns()
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}

// KeyNames returns the names of the key columns only.
func (s Schema) KeyNames() []string {
	names := make([]string, len(s.Key))
	for i, c := range s.Key {
		names[i] = c.Name
	}
	return names
}

// IndexOf returns the position of the named column, or -1 if absent.
func (s Schema) IndexOf(name string) int {
	for i, c := range s.Columns() {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// Column looks up a column definition by name.
func (s Schema) Column(name string) (Column, bool) {
	for _, c := range s.Columns() {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// HasColumns reports whether every name in names is a column of s.
func (s Schema) HasColumns(names []string) bool {
	for _, n := range names {
		if s.IndexOf(n) < 0 {
			return false
		}
	}
	return true
}

// Validate checks that row matches s field-for-field: correct arity
// and each value conforms to its column's declared type.
func (s Schema) Validate(row Row) error {
	cols := s.Columns()
	if len(row) != len(cols) {
		return fmt.Errorf("row has %d fields, schema has %d columns", len(row), len(cols))
	}
	for i, c := range cols {
		if err := c.Validate(row[i]); err != nil {
			return err
		}
	}
	return nil
}

// ToMap presents row as a column-name -> value mapping, the view a
// filter or derive predicate receives.
func ToMap(names []string, row Row) map[string]any {
	m := make(map[string]any, len(names))
	for i, n := range names {
		if i < len(row) {
			m[n] = row[i]
		}
	}
	return m
}

// CompareValues orders two column values of the same declared type.
// Returns -1, 0, or 1, or -2 if the values are NULL or of mismatched
// types (i.e. not comparable).
func CompareValues(a, b any) int {
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
	case float64:
		bv, ok := b.(float64)
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
	case bool:
		bv, ok := b.(bool)
		if !ok {
			return -2
		}
		if av == bv {
			return 0
		}
		if !av && bv {
			return -1
		}
		return 1
	default:
		return -2
	}
}
