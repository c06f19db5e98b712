package selection

import (
	"iter"

	"rowtree/index"
	"rowtree/schema"
)

// limitSelection yields at most n rows from source, in source order.
// Slicing through a limit is rejected: the set of rows a limit
// produces depends on iteration order, not on any indexable bound, so
// there is no sound way to push a bound below it.
type limitSelection struct {
	mutable
	source Selection
	n      int
}

func newLimit(source Selection, n int) *limitSelection {
	s := &limitSelection{source: source, n: n}
	s.mutable = mutable{self: s, keyLen: sourceKeyLen(source), mut: sourceMutator(source)}
	return s
}

func (s *limitSelection) Schema() schema.Schema { return s.source.Schema() }

func (s *limitSelection) All() iter.Seq[schema.Row] {
	return func(yield func(schema.Row) bool) {
		i := 0
		for row := range s.source.All() {
			if i >= s.n {
				return
			}
			i++
			if !yield(row) {
				return
			}
		}
	}
}

func (s *limitSelection) Reversed() iter.Seq[schema.Row] {
	return func(yield func(schema.Row) bool) {
		i := 0
		for row := range s.source.Reversed() {
			if i >= s.n {
				return
			}
			i++
			if !yield(row) {
				return
			}
		}
	}
}

func (s *limitSelection) SupportsBounds(index.Bounds) bool { return false }
func (s *limitSelection) SupportsOrder([]string) bool      { return false }

func (s *limitSelection) Slice(b index.Bounds) (Selection, error) {
	return nil, unsupportedBounds(s.Schema(), b)
}

func (s *limitSelection) Select(cols []string) (Selection, error) {
	return newColumnSelection(s, cols)
}

func (s *limitSelection) Filter(pred func(map[string]any) bool) Selection {
	return newFilter(s, pred)
}

func (s *limitSelection) Limit(n int) Selection {
	if n < s.n {
		return newLimit(s.source, n)
	}
	return newLimit(s, n)
}

func (s *limitSelection) OrderBy(cols []string, reverse bool) (Selection, error) {
	return nil, unsupportedOrder(s.Schema(), cols)
}

func (s *limitSelection) Derive(name string, f func(map[string]any) any, t schema.Type) Selection {
	return newDerive(s, name, f, t)
}
