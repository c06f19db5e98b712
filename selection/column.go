package selection

import (
	"iter"

	"rowtree/index"
	"rowtree/rterr"
	"rowtree/schema"
)

// columnSelection projects each source row down to cols, in the given
// order. Bounds and order still name source columns (the projection
// doesn't change which index can serve them); Update/Delete are
// rejected since a caller can no longer name the source's full row,
// including its primary key.
type columnSelection struct {
	mutable
	source Selection
	sch    schema.Schema
	idx    []int
}

func newColumnSelection(source Selection, cols []string) (*columnSelection, error) {
	src := source.Schema()
	if !src.HasColumns(cols) {
		return nil, rterr.InvalidArgumentErrorf("selection: select() references columns not in %v", src.ColumnNames())
	}
	value := make([]schema.Column, len(cols))
	idx := make([]int, len(cols))
	for i, name := range cols {
		col, _ := src.Column(name)
		value[i] = col
		idx[i] = src.IndexOf(name)
	}
	s := &columnSelection{source: source, sch: schema.New(nil, value), idx: idx}
	s.mutable = mutable{self: s, keyLen: 0, mut: nil}
	return s, nil
}

func (s *columnSelection) Schema() schema.Schema { return s.sch }

func (s *columnSelection) project(row schema.Row) schema.Row {
	out := make(schema.Row, len(s.idx))
	for i, pos := range s.idx {
		out[i] = row[pos]
	}
	return out
}

func (s *columnSelection) All() iter.Seq[schema.Row] {
	return func(yield func(schema.Row) bool) {
		for row := range s.source.All() {
			if !yield(s.project(row)) {
				return
			}
		}
	}
}

func (s *columnSelection) Reversed() iter.Seq[schema.Row] {
	return func(yield func(schema.Row) bool) {
		for row := range s.source.Reversed() {
			if !yield(s.project(row)) {
				return
			}
		}
	}
}

func (s *columnSelection) SupportsBounds(b index.Bounds) bool { return s.source.SupportsBounds(b) }
func (s *columnSelection) SupportsOrder(cols []string) bool   { return s.source.SupportsOrder(cols) }

func (s *columnSelection) Slice(b index.Bounds) (Selection, error) {
	next, err := s.source.Slice(b)
	if err != nil {
		return nil, err
	}
	return newColumnSelection(next, s.sch.ColumnNames())
}

func (s *columnSelection) Select(cols []string) (Selection, error) {
	return newColumnSelection(s, cols)
}

func (s *columnSelection) Filter(pred func(map[string]any) bool) Selection {
	return newFilter(s, pred)
}

func (s *columnSelection) Limit(n int) Selection { return newLimit(s, n) }

func (s *columnSelection) OrderBy(cols []string, reverse bool) (Selection, error) {
	next, err := s.source.OrderBy(cols, reverse)
	if err != nil {
		return nil, err
	}
	return newColumnSelection(next, s.sch.ColumnNames())
}

func (s *columnSelection) Derive(name string, f func(map[string]any) any, t schema.Type) Selection {
	return newDerive(s, name, f, t)
}
