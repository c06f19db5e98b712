// Package table implements the slice planner and mutation cascade: a
// Table owns one primary Index plus a named, insertion-ordered map of
// auxiliary Indices, and is itself a selection.Selection so that
// inserts, chained reads, and cascading mutations share one entry
// point.
package table

import (
	"rowtree/index"
	"rowtree/rterr"
	"rowtree/schema"
	"rowtree/selection"
)

// Table owns a primary Index and a set of named auxiliary Indices
// kept consistent with it on every insert/upsert/update/delete.
type Table struct {
	sch      schema.Schema
	primary  *index.Index
	auxNames []string
	aux      map[string]*index.Index
	root     selection.Selection
}

// New builds an empty Table over sch, with the primary Index using
// order as its BTree fan-out.
func New(sch schema.Schema, order int) (*Table, error) {
	primary, err := index.New(sch, order)
	if err != nil {
		return nil, err
	}
	t := &Table{sch: sch, primary: primary, aux: map[string]*index.Index{}}
	t.root = selection.NewRoot(primary, len(sch.Key), t)
	return t, nil
}

// Schema returns the table's row schema.
func (t *Table) Schema() schema.Schema { return t.sch }

// Len returns the number of live rows in the primary index.
func (t *Table) Len() int { return t.primary.Len() }

// AddIndex declares an auxiliary index keyed by keyCols (a subset of
// the table's columns). Its value columns are a copy of the primary
// key, so an auxiliary row round-trips back to the owning primary
// row. Existing rows are backfilled.
func (t *Table) AddIndex(name string, keyCols []string) error {
	if !t.sch.HasColumns(keyCols) {
		return rterr.InvalidArgumentErrorf("table: index %q references columns not in schema %v", name, t.sch.ColumnNames())
	}
	key := make([]schema.Column, len(keyCols))
	for i, name := range keyCols {
		col, _ := t.sch.Column(name)
		key[i] = col
	}
	value := append([]schema.Column(nil), t.sch.Key...)
	aux, err := index.New(schema.New(key, value), index.DefaultOrder)
	if err != nil {
		return err
	}
	for row := range t.primary.All() {
		if err := aux.Insert(t.auxRow(keyCols, row)); err != nil {
			return err
		}
	}
	t.aux[name] = aux
	t.auxNames = append(t.auxNames, name)
	return nil
}

func (t *Table) auxRow(keyCols []string, fullRow schema.Row) schema.Row {
	out := make(schema.Row, 0, len(keyCols)+len(t.sch.Key))
	for _, name := range keyCols {
		out = append(out, fullRow[t.sch.IndexOf(name)])
	}
	out = append(out, fullRow[:len(t.sch.Key)]...)
	return out
}

// Insert adds row, failing with DuplicateKeyError if the primary already
// holds its key.
func (t *Table) Insert(row schema.Row) error {
	if len(row) != t.sch.Len() {
		return rterr.InvalidArgumentErrorf("table: row has %d fields, schema has %d columns", len(row), t.sch.Len())
	}
	key := row[:len(t.sch.Key)]
	if t.primary.Contains(key) {
		return rterr.DuplicateKeyErrorf("table: key %v already present", key)
	}
	return t.upsert(key, row[len(t.sch.Key):])
}

// Upsert replaces whatever row (if any) is stored under key with
// key++value.
func (t *Table) Upsert(key, value schema.Row) error {
	full := append(append(schema.Row(nil), key...), value...)
	if err := t.sch.Validate(full); err != nil {
		return rterr.InvalidArgumentErrorf("table: %v", err)
	}
	return t.upsert(key, value)
}

func (t *Table) upsert(key, value schema.Row) error {
	old, exists := t.lookup(key)
	if exists {
		t.primary.Delete(key)
	}
	full := append(append(schema.Row(nil), key...), value...)
	if err := t.primary.Insert(full); err != nil {
		return err
	}
	for _, name := range t.auxNames {
		auxSch := t.aux[name].Schema()
		keyCols := auxSch.KeyNames()
		if exists {
			t.aux[name].Delete(t.auxRow(keyCols, old))
		}
		if err := t.aux[name].Insert(t.auxRow(keyCols, full)); err != nil {
			return err
		}
	}
	return nil
}

func (t *Table) lookup(key schema.Row) (schema.Row, bool) {
	b := make(index.Bounds, len(key))
	for i, k := range key {
		b[i] = index.B(t.sch.Key[i].Name, index.Eq(k))
	}
	rows, err := t.primary.Slice(b)
	if err != nil {
		return nil, false
	}
	for row := range rows {
		return row, true
	}
	return nil, false
}

// UpdateRow implements the mutation-cascade callback used by
// selection.Selection.Update: apply assignments to the row under key,
// rejecting assignments that name a key or unknown column.
func (t *Table) UpdateRow(key schema.Row, assignments map[string]any) error {
	for name := range assignments {
		i := t.sch.IndexOf(name)
		if i < 0 {
			return rterr.InvalidArgumentErrorf("table: unknown column %q", name)
		}
		if i < len(t.sch.Key) {
			return rterr.InvalidArgumentErrorf("table: cannot update key column %q", name)
		}
	}
	old, exists := t.lookup(key)
	if !exists {
		return nil
	}
	newValue := append(schema.Row(nil), old[len(t.sch.Key):]...)
	changed := false
	for name, v := range assignments {
		i := t.sch.IndexOf(name) - len(t.sch.Key)
		if schema.CompareValues(newValue[i], v) != 0 {
			changed = true
		}
		newValue[i] = v
	}
	if !changed {
		return nil
	}
	return t.upsert(key, newValue)
}

// DeleteRow implements the mutation-cascade callback used by
// selection.Selection.Delete: remove the row under key from the
// primary and from every auxiliary index.
func (t *Table) DeleteRow(key schema.Row) error {
	old, exists := t.lookup(key)
	if !exists {
		return nil
	}
	t.primary.Delete(key)
	for _, name := range t.auxNames {
		keyCols := t.aux[name].Schema().KeyNames()
		t.aux[name].Delete(t.auxRow(keyCols, old))
	}
	return nil
}

// Rebalance forwards to the primary and to every auxiliary index.
func (t *Table) Rebalance() {
	t.primary.Rebalance()
	for _, name := range t.auxNames {
		t.aux[name].Rebalance()
	}
}
