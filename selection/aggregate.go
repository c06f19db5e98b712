package selection

import (
	"iter"

	"rowtree/index"
	"rowtree/schema"
)

// aggregateSelection is the result of GroupBy: source is already
// ordered by cols (see groupBy in selection.go), so producing the
// distinct combinations is a single adjacent-dedupe pass over the
// projected tuples.
type aggregateSelection struct {
	mutable
	source Selection
	sch    schema.Schema
	idx    []int
}

func newAggregate(ordered Selection, cols []string) *aggregateSelection {
	src := ordered.Schema()
	value := make([]schema.Column, len(cols))
	idx := make([]int, len(cols))
	for i, name := range cols {
		col, _ := src.Column(name)
		value[i] = col
		idx[i] = src.IndexOf(name)
	}
	s := &aggregateSelection{source: ordered, sch: schema.New(nil, value), idx: idx}
	s.mutable = mutable{self: s, keyLen: 0, mut: nil}
	return s
}

func (s *aggregateSelection) Schema() schema.Schema { return s.sch }

func (s *aggregateSelection) project(row schema.Row) schema.Row {
	out := make(schema.Row, len(s.idx))
	for i, pos := range s.idx {
		out[i] = row[pos]
	}
	return out
}

func (s *aggregateSelection) All() iter.Seq[schema.Row] {
	return func(yield func(schema.Row) bool) {
		var prev schema.Row
		first := true
		for row := range s.source.All() {
			tup := s.project(row)
			if !first && rowsEqual(prev, tup) {
				continue
			}
			first = false
			prev = tup
			if !yield(tup) {
				return
			}
		}
	}
}

func (s *aggregateSelection) Reversed() iter.Seq[schema.Row] {
	return func(yield func(schema.Row) bool) {
		var prev schema.Row
		first := true
		for row := range s.source.Reversed() {
			tup := s.project(row)
			if !first && rowsEqual(prev, tup) {
				continue
			}
			first = false
			prev = tup
			if !yield(tup) {
				return
			}
		}
	}
}

func rowsEqual(a, b schema.Row) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if schema.CompareValues(a[i], b[i]) != 0 {
			return false
		}
	}
	return true
}

func (s *aggregateSelection) SupportsBounds(index.Bounds) bool { return false }
func (s *aggregateSelection) SupportsOrder([]string) bool      { return false }

func (s *aggregateSelection) Slice(b index.Bounds) (Selection, error) {
	return nil, unsupportedBounds(s.sch, b)
}

func (s *aggregateSelection) Select(cols []string) (Selection, error) {
	return newColumnSelection(s, cols)
}

func (s *aggregateSelection) Filter(pred func(map[string]any) bool) Selection {
	return newFilter(s, pred)
}

func (s *aggregateSelection) Limit(n int) Selection { return newLimit(s, n) }

func (s *aggregateSelection) OrderBy(cols []string, reverse bool) (Selection, error) {
	return nil, unsupportedOrder(s.sch, cols)
}

func (s *aggregateSelection) Derive(name string, f func(map[string]any) any, t schema.Type) Selection {
	return newDerive(s, name, f, t)
}
