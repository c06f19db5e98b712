package selection

import (
	"iter"

	"rowtree/index"
	"rowtree/rterr"
	"rowtree/schema"
)

// deriveSelection appends one computed value column to every source
// row. The derived column cannot be updated (there is nothing to
// write it back to); any other assignment forwards to the source
// unchanged, since the derived value is computed, not stored.
type deriveSelection struct {
	mutable
	source Selection
	sch    schema.Schema
	name   string
	f      func(map[string]any) any
}

func newDerive(source Selection, name string, f func(map[string]any) any, t schema.Type) *deriveSelection {
	src := source.Schema()
	sch := schema.New(src.Key, append(append([]schema.Column(nil), src.Value...), schema.Column{Name: name, Type: t}))
	s := &deriveSelection{source: source, sch: sch, name: name, f: f}
	s.mutable = mutable{self: s, keyLen: sourceKeyLen(source), mut: sourceMutator(source)}
	return s
}

func (s *deriveSelection) Schema() schema.Schema { return s.sch }

func (s *deriveSelection) extend(row schema.Row) schema.Row {
	v := s.f(schema.ToMap(s.source.Schema().ColumnNames(), row))
	return append(append(schema.Row(nil), row...), v)
}

func (s *deriveSelection) All() iter.Seq[schema.Row] {
	return func(yield func(schema.Row) bool) {
		for row := range s.source.All() {
			if !yield(s.extend(row)) {
				return
			}
		}
	}
}

func (s *deriveSelection) Reversed() iter.Seq[schema.Row] {
	return func(yield func(schema.Row) bool) {
		for row := range s.source.Reversed() {
			if !yield(s.extend(row)) {
				return
			}
		}
	}
}

func (s *deriveSelection) SupportsBounds(b index.Bounds) bool { return s.source.SupportsBounds(b) }
func (s *deriveSelection) SupportsOrder(cols []string) bool   { return s.source.SupportsOrder(cols) }

func (s *deriveSelection) Slice(b index.Bounds) (Selection, error) {
	next, err := s.source.Slice(b)
	if err != nil {
		return nil, err
	}
	return newDerive(next, s.name, s.f, s.valueType()), nil
}

func (s *deriveSelection) valueType() schema.Type {
	return s.sch.Value[len(s.sch.Value)-1].Type
}

func (s *deriveSelection) Select(cols []string) (Selection, error) {
	return newColumnSelection(s, cols)
}

func (s *deriveSelection) Filter(pred func(map[string]any) bool) Selection {
	return newFilter(s, pred)
}

func (s *deriveSelection) Limit(n int) Selection { return newLimit(s, n) }

func (s *deriveSelection) OrderBy(cols []string, reverse bool) (Selection, error) {
	next, err := s.source.OrderBy(cols, reverse)
	if err != nil {
		return nil, err
	}
	return newDerive(next, s.name, s.f, s.valueType()), nil
}

func (s *deriveSelection) Derive(name string, f func(map[string]any) any, t schema.Type) Selection {
	return newDerive(s, name, f, t)
}

func (s *deriveSelection) Update(assignments map[string]any) (Selection, error) {
	if _, ok := assignments[s.name]; ok {
		return nil, rterr.InvalidArgumentErrorf("selection: cannot update derived column %q", s.name)
	}
	if _, err := s.source.Update(assignments); err != nil {
		return nil, err
	}
	return s, nil
}
