package selection

import (
	"iter"

	"rowtree/index"
	"rowtree/schema"
)

// indexSelection is a Selection backed directly by an Index, optionally
// restricted to bounds. It is the leaf every other combinator
// eventually bottoms out at, and is also what Selection.Index()
// produces (materialized, unrestricted, no owning Mutator).
type indexSelection struct {
	mutable
	ix     *index.Index
	bounds index.Bounds
}

func newIndexSelection(ix *index.Index, bounds index.Bounds, keyLen int, mut Mutator) *indexSelection {
	s := &indexSelection{ix: ix, bounds: bounds}
	s.mutable = mutable{self: s, keyLen: keyLen, mut: mut}
	return s
}

// NewRoot builds the unrestricted Selection view over ix, cascading
// Update/Delete through mut (the owning Table). keyLen is the number
// of leading fields identifying a row's primary key.
func NewRoot(ix *index.Index, keyLen int, mut Mutator) Selection {
	return newIndexSelection(ix, nil, keyLen, mut)
}

func (s *indexSelection) Schema() schema.Schema { return s.ix.Schema() }

func (s *indexSelection) All() iter.Seq[schema.Row] {
	return func(yield func(schema.Row) bool) {
		rows, err := s.ix.Slice(s.bounds)
		if err != nil {
			return
		}
		for row := range rows {
			if !yield(row) {
				return
			}
		}
	}
}

func (s *indexSelection) Reversed() iter.Seq[schema.Row] {
	return func(yield func(schema.Row) bool) {
		rows, err := s.ix.SliceReverse(s.bounds)
		if err != nil {
			return
		}
		for row := range rows {
			if !yield(row) {
				return
			}
		}
	}
}

func (s *indexSelection) SupportsBounds(b index.Bounds) bool {
	return s.ix.SupportsBounds(b)
}

func (s *indexSelection) SupportsOrder(cols []string) bool {
	return s.ix.SupportsOrder(cols)
}

func (s *indexSelection) Slice(b index.Bounds) (Selection, error) {
	if !s.ix.SupportsBounds(b) {
		return nil, unsupportedBounds(s.Schema(), b)
	}
	next := newIndexSelection(s.ix, b, s.keyLen, s.mut)
	if len(s.bounds) == 0 {
		return next, nil
	}
	// Already restricted: compose the prior view's bounds as a row
	// filter over the new index-level slice.
	pred := boundsPredicate(s.Schema(), s.bounds)
	return newRowFilter(next, pred), nil
}

func (s *indexSelection) Select(cols []string) (Selection, error) {
	return newColumnSelection(s, cols)
}

func (s *indexSelection) Filter(pred func(map[string]any) bool) Selection {
	return newFilter(s, pred)
}

func (s *indexSelection) Limit(n int) Selection {
	return newLimit(s, n)
}

func (s *indexSelection) OrderBy(cols []string, reverse bool) (Selection, error) {
	return newOrder(s, cols, reverse)
}

func (s *indexSelection) Derive(name string, f func(map[string]any) any, t schema.Type) Selection {
	return newDerive(s, name, f, t)
}
