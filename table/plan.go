package table

import (
	"iter"

	"rowtree/index"
	"rowtree/rterr"
	"rowtree/schema"
	"rowtree/selection"
)

// MutableInfo reports the table's own key length and itself as the
// mutation cascade target, so selections built directly over the
// table (selection.Select(t, ...), etc.) still support Update/Delete.
func (t *Table) MutableInfo() (int, selection.Mutator) { return len(t.sch.Key), t }

// All iterates every live row in ascending order.
func (t *Table) All() iter.Seq[schema.Row] { return t.root.All() }

// Reversed iterates every live row in descending order.
func (t *Table) Reversed() iter.Seq[schema.Row] { return t.root.Reversed() }

// boundsSupporter is satisfied by *index.Index; it is the minimal
// surface the planner needs to score a candidate index.
type boundsSupporter interface {
	SupportsBounds(index.Bounds) bool
}

// canonicalize reorders bounds into schema column order and drops a
// trailing fully-open range entry.
func (t *Table) canonicalize(b index.Bounds) (index.Bounds, error) {
	out := append(index.Bounds(nil), b...)
	for _, e := range out {
		if t.sch.IndexOf(e.Column) < 0 {
			return nil, rterr.InvalidArgumentErrorf("table: unknown column %q", e.Column)
		}
	}
	order := t.sch.ColumnNames()
	pos := func(name string) int {
		for i, n := range order {
			if n == name {
				return i
			}
		}
		return -1
	}
	for i := 1; i < len(out); i++ {
		j := i
		for j > 0 && pos(out[j-1].Column) > pos(out[j].Column) {
			out[j-1], out[j] = out[j], out[j-1]
			j--
		}
	}
	for len(out) > 0 {
		last := out[len(out)-1].Value
		if last.IsRange && last.Start == nil && last.Stop == nil {
			out = out[:len(out)-1]
			continue
		}
		break
	}
	return out, nil
}

// longestSupportedPrefix returns the largest k such that
// ix.SupportsBounds(b[:k]) holds.
func longestSupportedPrefix(ix boundsSupporter, b index.Bounds) int {
	for k := len(b); k > 0; k-- {
		if ix.SupportsBounds(b[:k]) {
			return k
		}
	}
	return 0
}

// bestPrefix finds the longest prefix of b any of the table's indices
// can serve, preferring the primary on a tie.
func (t *Table) bestPrefix(b index.Bounds) (k int, useAux string) {
	best := longestSupportedPrefix(t.primary, b)
	for _, name := range t.auxNames {
		if l := longestSupportedPrefix(t.aux[name], b); l > best {
			best, useAux = l, name
		}
	}
	return best, useAux
}

// SupportsBounds reports whether Slice(b) would succeed: the
// canonicalized bounds can be fully consumed by repeated
// longest-prefix routing across the primary and auxiliary indices.
func (t *Table) SupportsBounds(b index.Bounds) bool {
	canon, err := t.canonicalize(b)
	if err != nil {
		return false
	}
	remaining := canon
	for len(remaining) > 0 {
		best, _ := t.bestPrefix(remaining)
		if best == 0 {
			return false
		}
		remaining = remaining[best:]
	}
	return true
}

// SupportsOrder reports whether OrderBy(cols, ...) would succeed.
func (t *Table) SupportsOrder(cols []string) bool {
	if t.primary.SupportsOrder(cols) {
		return true
	}
	for _, name := range t.auxNames {
		if t.aux[name].SupportsOrder(cols) {
			return true
		}
	}
	return false
}

// Slice is the table's query planner: reject unknown columns,
// canonicalize, then repeatedly consume the longest prefix of the
// remaining bounds supported by any index, preferring the primary,
// chaining auxiliary contributions through a MergeSelection back to
// the primary.
func (t *Table) Slice(b index.Bounds) (selection.Selection, error) {
	canon, err := t.canonicalize(b)
	if err != nil {
		return nil, err
	}
	var current selection.Selection
	remaining := canon
	for len(remaining) > 0 {
		best, useAux := t.bestPrefix(remaining)
		if best == 0 {
			return nil, rterr.UnsupportedQueryErrorf("table: bounds on %v not supported by any index", remaining.Columns())
		}
		prefix := remaining[:best]
		if useAux == "" {
			source := current
			if source == nil {
				source = t.root
			}
			next, err := source.Slice(prefix)
			if err != nil {
				return nil, err
			}
			current = next
		} else {
			auxSel := selection.NewRoot(t.aux[useAux], len(t.aux[useAux].Schema().Key), nil)
			auxSlice, err := auxSel.Slice(prefix)
			if err != nil {
				return nil, err
			}
			left := current
			if left == nil {
				left = t.root
			}
			current = selection.NewMerge(left, auxSlice)
		}
		remaining = remaining[best:]
	}
	if current == nil {
		return t.root, nil
	}
	return current, nil
}

// OrderBy routes through the primary if it supports the order,
// otherwise through the first auxiliary that does, joined back to the
// primary via a MergeSelection (right-driven join order).
func (t *Table) OrderBy(cols []string, reverse bool) (selection.Selection, error) {
	if t.primary.SupportsOrder(cols) {
		return t.root.OrderBy(cols, reverse)
	}
	for _, name := range t.auxNames {
		if !t.aux[name].SupportsOrder(cols) {
			continue
		}
		auxSel := selection.NewRoot(t.aux[name], len(t.aux[name].Schema().Key), nil)
		ordered, err := auxSel.OrderBy(cols, reverse)
		if err != nil {
			return nil, err
		}
		return selection.NewMerge(t.root, ordered), nil
	}
	return nil, rterr.UnsupportedQueryErrorf("table: order by %v not supported by any index", cols)
}

// Select projects each row to cols.
func (t *Table) Select(cols []string) (selection.Selection, error) {
	return selection.Select(t, cols)
}

// Filter yields rows matching pred.
func (t *Table) Filter(pred func(map[string]any) bool) selection.Selection {
	return selection.Filter(t, pred)
}

// Limit yields at most n rows.
func (t *Table) Limit(n int) selection.Selection {
	return selection.Limit(t, n)
}

// Derive appends a computed value column to each row.
func (t *Table) Derive(name string, f func(map[string]any) any, typ schema.Type) selection.Selection {
	return selection.Derive(t, name, f, typ)
}

// GroupBy yields the ordered distinct combinations of cols, routing
// through whichever index (primary or auxiliary) supports the order.
func (t *Table) GroupBy(cols []string) (selection.Selection, error) {
	return selection.GroupBy(t, cols)
}

// Index materializes the table's current rows into a fresh,
// independently sliceable Index-backed selection.
func (t *Table) Index() (selection.Selection, error) {
	return selection.Materialize(t.root)
}

// Update applies assignments to every live row.
func (t *Table) Update(assignments map[string]any) (selection.Selection, error) {
	return t.root.Update(assignments)
}

// Delete removes every live row.
func (t *Table) Delete() (int, error) {
	return t.root.Delete()
}
