// Package selection implements the lazy, composable row-producer
// algebra: Column (project), Filter (predicate), Limit, Order, Derive
// (compute a column), Aggregate (group by), Merge (join a residual
// range through another index), and the index-backed leaf selections
// a Table composes its planner output from.
package selection

import (
	"iter"

	"rowtree/index"
	"rowtree/rterr"
	"rowtree/schema"
)

// Selection is the lazy row producer every combinator implements. All
// iteration is pull-based: a chained pipeline pulls at most one row
// from its upstream before yielding, so Limit/Filter/Slice compose
// without materializing intermediate results.
type Selection interface {
	// Schema returns the row layout this selection produces.
	Schema() schema.Schema

	// All iterates every row in ascending order.
	All() iter.Seq[schema.Row]

	// Reversed iterates every row in descending order.
	Reversed() iter.Seq[schema.Row]

	// SupportsBounds reports whether Slice(b) would succeed.
	SupportsBounds(b index.Bounds) bool

	// SupportsOrder reports whether OrderBy(cols, ...) would succeed.
	SupportsOrder(cols []string) bool

	// Slice restricts to rows matching b.
	Slice(b index.Bounds) (Selection, error)

	// Select projects to the named columns, in the given order.
	Select(cols []string) (Selection, error)

	// Filter yields rows for which pred (given a column-name -> value
	// view of the row) returns true.
	Filter(pred func(map[string]any) bool) Selection

	// Limit yields at most n rows, in source order.
	Limit(n int) Selection

	// OrderBy requires SupportsOrder(cols) and yields rows ordered by
	// cols, reversed if requested.
	OrderBy(cols []string, reverse bool) (Selection, error)

	// Derive extends each row with f's result as a new value column.
	Derive(name string, f func(map[string]any) any, t schema.Type) Selection

	// GroupBy yields the ordered distinct combinations of cols.
	GroupBy(cols []string) (Selection, error)

	// Index materializes this selection's current output into a
	// fresh, independently sliceable Index-backed selection.
	Index() (Selection, error)

	// Update applies assignments (value columns only) to every row
	// currently yielded, cascading through the owning Table. Returns
	// the same selection so the caller can chain a further read.
	Update(assignments map[string]any) (Selection, error)

	// Delete removes every row currently yielded, cascading through
	// the owning Table. Returns the number of rows removed.
	Delete() (int, error)
}

// Mutator is implemented by the owning Table (or by anything willing
// to accept mutation cascades); it is how Update/Delete delegate
// through the source chain back to the table that owns the rows.
type Mutator interface {
	UpdateRow(key schema.Row, assignments map[string]any) error
	DeleteRow(key schema.Row) error
}

// mutable is embedded by every concrete selection type. keyLen>0 and
// mut!=nil mean the selection's rows carry a primary key in their
// first keyLen fields that can be resolved back to the owning table
// (false for a column projection, a group-by result, and a
// materialized Index() result, which set keyLen 0 and a nil mut and
// so reject Update/Delete).
type mutable struct {
	self   Selection
	keyLen int
	mut    Mutator
}

func (m *mutable) Update(assignments map[string]any) (Selection, error) {
	if m.keyLen == 0 || m.mut == nil {
		return nil, rterr.UnsupportedQueryErrorf("selection: update is not supported on this selection")
	}
	rows := collect(m.self.All())
	for _, row := range rows {
		if err := m.mut.UpdateRow(row[:m.keyLen], assignments); err != nil {
			return nil, err
		}
	}
	return m.self, nil
}

func (m *mutable) Delete() (int, error) {
	if m.keyLen == 0 || m.mut == nil {
		return 0, rterr.UnsupportedQueryErrorf("selection: delete is not supported on this selection")
	}
	rows := collect(m.self.All())
	n := 0
	for _, row := range rows {
		if err := m.mut.DeleteRow(row[:m.keyLen]); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}

func (m *mutable) GroupBy(cols []string) (Selection, error) {
	return groupBy(m.self, cols)
}

func (m *mutable) Index() (Selection, error) {
	return materialize(m.self)
}

// MutableInfo exposes an embedded mutable's fields so wrapping
// combinators (Filter, Limit, Order, Derive) can forward mutation
// capability from whatever source they wrap without knowing its
// concrete type.
func (m *mutable) MutableInfo() (int, Mutator) { return m.keyLen, m.mut }

type hasMutableInfo interface {
	MutableInfo() (int, Mutator)
}

func sourceKeyLen(s Selection) int {
	if hm, ok := s.(hasMutableInfo); ok {
		keyLen, _ := hm.MutableInfo()
		return keyLen
	}
	return 0
}

func sourceMutator(s Selection) Mutator {
	if hm, ok := s.(hasMutableInfo); ok {
		_, mut := hm.MutableInfo()
		return mut
	}
	return nil
}

func collect(seq iter.Seq[schema.Row]) []schema.Row {
	var rows []schema.Row
	for row := range seq {
		rows = append(rows, row)
	}
	return rows
}

// Select is the exported form of a projection combinator, for callers
// (the table package's Table) that implement Selection themselves and
// must wrap their own value as source rather than a delegate's, so
// that further chaining keeps dispatching through the caller's own
// overridden methods.
func Select(source Selection, cols []string) (Selection, error) {
	return newColumnSelection(source, cols)
}

// Filter is the exported form of the predicate combinator; see Select.
func Filter(source Selection, pred func(map[string]any) bool) Selection {
	return newFilter(source, pred)
}

// Limit is the exported form of the limit combinator; see Select.
func Limit(source Selection, n int) Selection {
	return newLimit(source, n)
}

// Derive is the exported form of the derive combinator; see Select.
func Derive(source Selection, name string, f func(map[string]any) any, t schema.Type) Selection {
	return newDerive(source, name, f, t)
}

// GroupBy is the exported form of groupBy, for callers (the table
// package's Table) that implement Selection themselves and need to
// route group-by through their own OrderBy rather than a delegate's.
func GroupBy(sel Selection, cols []string) (Selection, error) {
	return groupBy(sel, cols)
}

// Materialize is the exported form of materialize, used the same way.
func Materialize(sel Selection) (Selection, error) {
	return materialize(sel)
}

// groupBy builds an AggregateSelection: sort by cols (routing through
// whichever index supports that order), project to cols, and dedupe
// adjacent tuples.
func groupBy(sel Selection, cols []string) (Selection, error) {
	ordered, err := sel.OrderBy(cols, false)
	if err != nil {
		return nil, err
	}
	return newAggregate(ordered, cols), nil
}

// materialize implements Selection.index(): compile the selection's
// current output into a fresh, independently sliceable Index. The
// result has no owning Table, so Update/Delete on it are unsupported.
func materialize(sel Selection) (Selection, error) {
	ix, err := index.New(sel.Schema(), index.DefaultOrder)
	if err != nil {
		return nil, err
	}
	for row := range sel.All() {
		if err := ix.Insert(row); err != nil {
			return nil, err
		}
	}
	return newIndexSelection(ix, index.Bounds{}, 0, nil), nil
}
