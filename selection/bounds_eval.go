package selection

import (
	"rowtree/index"
	"rowtree/schema"
)

// boundsPredicate evaluates b against a row directly, independent of
// any index: the reference semantics every index-routed slice must
// agree with.
func boundsPredicate(sch schema.Schema, b index.Bounds) func(schema.Row) bool {
	return func(row schema.Row) bool {
		for _, e := range b {
			i := sch.IndexOf(e.Column)
			if i < 0 || i >= len(row) {
				return false
			}
			v := row[i]
			if !e.Value.IsRange {
				if schema.CompareValues(v, e.Value.Scalar) != 0 {
					return false
				}
				continue
			}
			if e.Value.Start != nil && schema.CompareValues(v, e.Value.Start) < 0 {
				return false
			}
			if e.Value.Stop != nil && schema.CompareValues(v, e.Value.Stop) >= 0 {
				return false
			}
		}
		return true
	}
}
