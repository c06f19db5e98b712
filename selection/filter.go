package selection

import (
	"iter"

	"rowtree/index"
	"rowtree/schema"
)

// filterSelection yields only rows for which pred holds. Slicing and
// ordering push down into source and re-wrap with the same predicate;
// filtering is applied after the source produces a candidate row, so
// it never changes which index serves a slice or order.
type filterSelection struct {
	mutable
	source Selection
	pred   func(schema.Row) bool
}

func newFilter(source Selection, mapPred func(map[string]any) bool) *filterSelection {
	names := source.Schema().ColumnNames()
	return newRowFilter(source, func(row schema.Row) bool {
		return mapPred(schema.ToMap(names, row))
	})
}

func newRowFilter(source Selection, pred func(schema.Row) bool) *filterSelection {
	s := &filterSelection{source: source, pred: pred}
	s.mutable = mutable{self: s, keyLen: sourceKeyLen(source), mut: sourceMutator(source)}
	return s
}

func (s *filterSelection) Schema() schema.Schema { return s.source.Schema() }

func (s *filterSelection) All() iter.Seq[schema.Row] {
	return func(yield func(schema.Row) bool) {
		for row := range s.source.All() {
			if s.pred(row) && !yield(row) {
				return
			}
		}
	}
}

func (s *filterSelection) Reversed() iter.Seq[schema.Row] {
	return func(yield func(schema.Row) bool) {
		for row := range s.source.Reversed() {
			if s.pred(row) && !yield(row) {
				return
			}
		}
	}
}

func (s *filterSelection) SupportsBounds(b index.Bounds) bool { return s.source.SupportsBounds(b) }
func (s *filterSelection) SupportsOrder(cols []string) bool   { return s.source.SupportsOrder(cols) }

func (s *filterSelection) Slice(b index.Bounds) (Selection, error) {
	next, err := s.source.Slice(b)
	if err != nil {
		return nil, err
	}
	return newRowFilter(next, s.pred), nil
}

func (s *filterSelection) Select(cols []string) (Selection, error) {
	return newColumnSelection(s, cols)
}

func (s *filterSelection) Filter(pred func(map[string]any) bool) Selection {
	return newFilter(s, pred)
}

func (s *filterSelection) Limit(n int) Selection { return newLimit(s, n) }

func (s *filterSelection) OrderBy(cols []string, reverse bool) (Selection, error) {
	next, err := s.source.OrderBy(cols, reverse)
	if err != nil {
		return nil, err
	}
	return newRowFilter(next, s.pred), nil
}

func (s *filterSelection) Derive(name string, f func(map[string]any) any, t schema.Type) Selection {
	return newDerive(s, name, f, t)
}
