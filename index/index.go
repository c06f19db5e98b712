package index

import (
	"iter"

	"rowtree/btree"
	"rowtree/rterr"
	"rowtree/schema"
)

// Index wraps a BTree whose row layout is schema.Key ++ schema.Value.
// The BTree orders by the full row; slicing with a bound shorter than
// the row's arity is a prefix operation.
type Index struct {
	sch  schema.Schema
	tree *btree.BTree
}

// DefaultOrder is the fan-out used when a caller doesn't need to tune
// it explicitly.
const DefaultOrder = 32

// New creates an Index over sch using order as the underlying BTree's
// fan-out.
func New(sch schema.Schema, order int) (*Index, error) {
	tree, err := btree.New(order, schema.CompareValues)
	if err != nil {
		return nil, err
	}
	return &Index{sch: sch, tree: tree}, nil
}

// Schema returns the index's row schema (key columns then value
// columns).
func (ix *Index) Schema() schema.Schema { return ix.sch }

// Len returns the number of live rows.
func (ix *Index) Len() int { return ix.tree.Len() }

// Insert validates row against the schema and inserts it. A duplicate
// full row is a no-op; reinserting a tombstoned row makes it visible
// again.
func (ix *Index) Insert(row schema.Row) error {
	if len(row) != ix.sch.Len() {
		return rterr.InvalidArgumentErrorf("index: row has %d fields, schema has %d columns", len(row), ix.sch.Len())
	}
	if err := ix.sch.Validate(row); err != nil {
		return rterr.InvalidArgumentErrorf("index: %v", err)
	}
	ix.tree.Insert(btree.Row(row))
	return nil
}

// Delete tombstones every row whose leading fields equal keyPrefix.
// Returns the number of rows newly tombstoned.
func (ix *Index) Delete(keyPrefix schema.Row) int {
	return ix.tree.Delete(btree.Exact(keyPrefix...))
}

// Contains reports whether any live row matches key (a point or
// prefix bound).
func (ix *Index) Contains(key schema.Row) bool {
	return ix.tree.Contains(btree.Row(key))
}

// Rebalance rebuilds the underlying BTree, discarding tombstones and
// restoring strict B-tree invariants.
func (ix *Index) Rebalance() { ix.tree.Rebalance() }

// All iterates every live row in ascending order.
func (ix *Index) All() iter.Seq[schema.Row] {
	return func(yield func(schema.Row) bool) {
		for row := range ix.tree.All() {
			if !yield(schema.Row(row)) {
				return
			}
		}
	}
}

// Reversed iterates every live row in descending order.
func (ix *Index) Reversed() iter.Seq[schema.Row] {
	return func(yield func(schema.Row) bool) {
		for row := range ix.tree.Slice(btree.Full(), true) {
			if !yield(schema.Row(row)) {
				return
			}
		}
	}
}

// SupportsBounds reports whether b's columns, in order, are a prefix
// of the schema's column order, with at most the last entry a range.
func (ix *Index) SupportsBounds(b Bounds) bool {
	names := ix.sch.ColumnNames()
	if len(b) == 0 {
		return true
	}
	if len(b) > len(names) {
		return false
	}
	for i, e := range b {
		if e.Column != names[i] {
			return false
		}
		if e.Value.IsRange && i != len(b)-1 {
			return false
		}
	}
	return true
}

// SupportsOrder reports whether cols is a prefix of the schema's
// column order.
func (ix *Index) SupportsOrder(cols []string) bool {
	names := ix.sch.ColumnNames()
	if len(cols) > len(names) {
		return false
	}
	for i, c := range cols {
		if c != names[i] {
			return false
		}
	}
	return true
}

// Slice returns the live rows matching b in ascending order. The
// caller must check SupportsBounds first; Slice returns
// UnsupportedQueryError otherwise.
func (ix *Index) Slice(b Bounds) (iter.Seq[schema.Row], error) {
	return ix.slice(b, false)
}

// SliceReverse is Slice in descending order.
func (ix *Index) SliceReverse(b Bounds) (iter.Seq[schema.Row], error) {
	return ix.slice(b, true)
}

func (ix *Index) slice(b Bounds, reverse bool) (iter.Seq[schema.Row], error) {
	if !ix.SupportsBounds(b) {
		return nil, rterr.UnsupportedQueryErrorf("index: bounds on %v not supported by schema %v", b.Columns(), ix.sch.ColumnNames())
	}
	bounds := toBTreeBounds(b)
	return func(yield func(schema.Row) bool) {
		for row := range ix.tree.Slice(bounds, reverse) {
			if !yield(schema.Row(row)) {
				return
			}
		}
	}, nil
}

// toBTreeBounds converts an ordered column-name bounds mapping into
// BTree-level positional bounds: scalars become positional values;
// when the last entry is a range, start =
// earlier-scalars ++ [range.start] (omitted if absent) and stop =
// earlier-scalars ++ [range.stop] (omitted if absent); otherwise the
// bound is the prefix list of scalars.
func toBTreeBounds(b Bounds) btree.Bounds {
	if len(b) == 0 {
		return btree.Full()
	}
	last := b[len(b)-1]
	if !last.Value.IsRange {
		key := make(btree.Row, len(b))
		for i, e := range b {
			key[i] = e.Value.Scalar
		}
		return btree.Exact(key...)
	}

	prefix := make(btree.Row, len(b)-1)
	for i, e := range b[:len(b)-1] {
		prefix[i] = e.Value.Scalar
	}
	return btree.RangeBounds(
		edge(prefix, last.Value.Start),
		edge(prefix, last.Value.Stop),
	)
}

func edge(prefix btree.Row, v any) btree.Row {
	if v == nil && len(prefix) == 0 {
		return nil
	}
	e := append(btree.Row{}, prefix...)
	if v != nil {
		e = append(e, v)
	}
	return e
}
