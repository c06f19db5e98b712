// Package btree implements an in-memory B-tree parameterized by a
// fan-out order that stores variable-arity composite keys, tolerates
// duplicate keys with distinct trailing fields, and defers physical
// deletion to an explicit Rebalance call.
package btree

import "rowtree/schema"

// Row is an ordered tuple of field values. A BTree stores Rows as
// fixed-arity keys; the caller (the index layer) is responsible for
// giving every row the same arity.
type Row = schema.Row

// CompareFunc orders two values of the same column type. It must
// return -1, 0, or 1; any other value is treated as "incomparable" and
// must not occur for values the caller actually indexes.
type CompareFunc func(a, b any) int

// Key is a stored composite value: an immutable field tuple plus a
// tombstone flag. Once constructed, Fields never changes; only
// Deleted toggles.
type Key struct {
	Fields  Row
	Deleted bool
}

// compareFields performs a strict positional lexicographic compare:
// walk shared positions in order and return as soon as one differs.
// Only when every shared position ties does length decide it. The "at
// first position where a[i] >= b[i] return >=" shortcut is
// deliberately not implemented here — it gives wrong answers whenever
// the per-position comparator isn't total in the same direction at
// every position.
func compareFields(cmp CompareFunc, a, b Row) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c := cmp(a[i], b[i]); c != 0 {
			return c
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// comparePrefix compares row against bound over only len(bound)
// shared positions. It returns 0 when row agrees with bound on every
// position bound specifies, regardless of any extra trailing fields
// row may carry — the "shorter keys match any longer key that agrees
// on the shared prefix" rule bounds slicing relies on.
func comparePrefix(cmp CompareFunc, row, bound Row) int {
	for i := 0; i < len(bound); i++ {
		if c := cmp(row[i], bound[i]); c != 0 {
			return c
		}
	}
	return 0
}
