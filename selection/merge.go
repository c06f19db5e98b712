package selection

import (
	"iter"

	"rowtree/index"
	"rowtree/schema"
)

// mergeSelection is the table planner's join step: for each primary
// key produced by iterating right (an auxiliary index's matching
// rows, whose trailing value columns are a copy of the primary key),
// fetch and yield the corresponding row from left (the primary index,
// or a previously narrowed selection over it).
type mergeSelection struct {
	mutable
	left    Selection
	right   Selection
	keyCols []string
}

// NewMerge builds the join step used by the table planner: for each
// primary key yielded by right (restricted to an auxiliary index's
// matching range), fetch the corresponding row from left.
func NewMerge(left, right Selection) Selection {
	return newMerge(left, right)
}

func newMerge(left, right Selection) *mergeSelection {
	s := &mergeSelection{left: left, right: right, keyCols: left.Schema().KeyNames()}
	s.mutable = mutable{self: s, keyLen: sourceKeyLen(left), mut: sourceMutator(left)}
	return s
}

func (s *mergeSelection) Schema() schema.Schema { return s.left.Schema() }

func (s *mergeSelection) fetch(keyRow schema.Row) iter.Seq[schema.Row] {
	b := make(index.Bounds, len(s.keyCols))
	for i, c := range s.keyCols {
		b[i] = index.B(c, index.Eq(keyRow[i]))
	}
	sub, err := s.left.Slice(b)
	if err != nil {
		return func(func(schema.Row) bool) {}
	}
	return sub.All()
}

func (s *mergeSelection) All() iter.Seq[schema.Row] {
	return func(yield func(schema.Row) bool) {
		proj, err := s.right.Select(s.keyCols)
		if err != nil {
			return
		}
		for keyRow := range proj.All() {
			for row := range s.fetch(keyRow) {
				if !yield(row) {
					return
				}
			}
		}
	}
}

func (s *mergeSelection) Reversed() iter.Seq[schema.Row] {
	return func(yield func(schema.Row) bool) {
		proj, err := s.right.Select(s.keyCols)
		if err != nil {
			return
		}
		for keyRow := range proj.Reversed() {
			for row := range s.fetch(keyRow) {
				if !yield(row) {
					return
				}
			}
		}
	}
}

func (s *mergeSelection) SupportsBounds(b index.Bounds) bool { return s.left.SupportsBounds(b) }
func (s *mergeSelection) SupportsOrder(cols []string) bool   { return s.left.SupportsOrder(cols) }

func (s *mergeSelection) Slice(b index.Bounds) (Selection, error) {
	if !s.left.SupportsBounds(b) {
		return nil, unsupportedBounds(s.Schema(), b)
	}
	newLeft, err := s.left.Slice(b)
	if err != nil {
		return nil, err
	}
	return newMerge(newLeft, s.right), nil
}

func (s *mergeSelection) Select(cols []string) (Selection, error) {
	return newColumnSelection(s, cols)
}

func (s *mergeSelection) Filter(pred func(map[string]any) bool) Selection {
	return newFilter(s, pred)
}

func (s *mergeSelection) Limit(n int) Selection { return newLimit(s, n) }

func (s *mergeSelection) OrderBy(cols []string, reverse bool) (Selection, error) {
	return newOrder(s, cols, reverse)
}

func (s *mergeSelection) Derive(name string, f func(map[string]any) any, t schema.Type) Selection {
	return newDerive(s, name, f, t)
}
