package selection

import (
	"iter"

	"rowtree/index"
	"rowtree/schema"
)

// orderSelection requires source.SupportsOrder(cols): the source's own
// ascending traversal already agrees with cols on their shared prefix,
// so forward iteration just forwards and reverse iteration requests
// the source's reverse traversal, with no sort step of our own.
type orderSelection struct {
	mutable
	source  Selection
	cols    []string
	reverse bool
}

func newOrder(source Selection, cols []string, reverse bool) (*orderSelection, error) {
	if !source.SupportsOrder(cols) {
		return nil, unsupportedOrder(source.Schema(), cols)
	}
	s := &orderSelection{source: source, cols: cols, reverse: reverse}
	s.mutable = mutable{self: s, keyLen: sourceKeyLen(source), mut: sourceMutator(source)}
	return s, nil
}

func (s *orderSelection) Schema() schema.Schema { return s.source.Schema() }

func (s *orderSelection) All() iter.Seq[schema.Row] {
	if s.reverse {
		return s.source.Reversed()
	}
	return s.source.All()
}

func (s *orderSelection) Reversed() iter.Seq[schema.Row] {
	if s.reverse {
		return s.source.All()
	}
	return s.source.Reversed()
}

func (s *orderSelection) SupportsBounds(b index.Bounds) bool { return s.source.SupportsBounds(b) }
func (s *orderSelection) SupportsOrder(cols []string) bool   { return s.source.SupportsOrder(cols) }

func (s *orderSelection) Slice(b index.Bounds) (Selection, error) {
	next, err := s.source.Slice(b)
	if err != nil {
		return nil, err
	}
	return newOrder(next, s.cols, s.reverse)
}

func (s *orderSelection) Select(cols []string) (Selection, error) {
	return newColumnSelection(s, cols)
}

func (s *orderSelection) Filter(pred func(map[string]any) bool) Selection {
	return newFilter(s, pred)
}

func (s *orderSelection) Limit(n int) Selection { return newLimit(s, n) }

func (s *orderSelection) OrderBy(cols []string, reverse bool) (Selection, error) {
	return newOrder(s.source, cols, reverse)
}

func (s *orderSelection) Derive(name string, f func(map[string]any) any, t schema.Type) Selection {
	return newDerive(s, name, f, t)
}
