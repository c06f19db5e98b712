// Package rterr defines the typed error kinds shared across the engine:
// the B-tree, the index layer, the selection algebra, and the table
// planner all raise one of these instead of a bare error string, so a
// caller can distinguish a malformed query from a genuine bug with a
// type switch or errors.As.
package rterr

import "fmt"

// InvalidArgumentError reports a caller error: a bad order, an arity
// or type mismatch, an update naming a key or unknown column, or a
// query naming an unknown column.
type InvalidArgumentError struct {
	Msg string
}

func (e *InvalidArgumentError) Error() string { return e.Msg }

// InvalidArgumentErrorf builds an *InvalidArgumentError with a
// formatted message.
func InvalidArgumentErrorf(format string, args ...any) error {
	return &InvalidArgumentError{Msg: fmt.Sprintf(format, args...)}
}

// UnsupportedQueryError reports that no available index can serve a
// requested slice or ordering. The caller must add an index or
// restructure the bounds.
type UnsupportedQueryError struct {
	Msg string
}

func (e *UnsupportedQueryError) Error() string { return e.Msg }

func UnsupportedQueryErrorf(format string, args ...any) error {
	return &UnsupportedQueryError{Msg: fmt.Sprintf(format, args...)}
}

// DuplicateKeyError reports that Insert was called with a primary key
// that already exists. Upsert never raises this.
type DuplicateKeyError struct {
	Msg string
}

func (e *DuplicateKeyError) Error() string { return e.Msg }

func DuplicateKeyErrorf(format string, args ...any) error {
	return &DuplicateKeyError{Msg: fmt.Sprintf(format, args...)}
}

// InternalError reports an invariant violation that indicates a bug in
// this module rather than caller misuse (e.g. more than one row
// resolving to a single primary key).
type InternalError struct {
	Msg string
}

func (e *InternalError) Error() string { return e.Msg }

func InternalErrorf(format string, args ...any) error {
	return &InternalError{Msg: fmt.Sprintf(format, args...)}
}
