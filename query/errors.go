package query

import (
	"errors"
	"fmt"
)

// ErrorKind classifies validation failures.
type ErrorKind int

const (
	// KindLex is an unrecognized character or token.
	KindLex ErrorKind = iota
	// KindSyntax is a structurally invalid token sequence.
	KindSyntax
	// KindSchema is a token that is syntactically fine but invalid
	// against the collection schema.
	KindSchema
	// KindJoin is a failure while resolving a cross-collection
	// reference; it wraps the nested error.
	KindJoin
)

func (k ErrorKind) String() string {
	switch k {
	case KindLex:
		return "lex"
	case KindSyntax:
		return "syntax"
	case KindSchema:
		return "schema"
	case KindJoin:
		return "join"
	default:
		return "unknown"
	}
}

// Error is a structured validation diagnostic. Validators return nil
// for a valid expression and a *Error otherwise; no other error type
// escapes this package. Use errors.As to recover the kind.
type Error struct {
	Kind    ErrorKind
	Message string
	inner   error
}

func (e *Error) Error() string { return e.Message }

// Unwrap exposes the nested error of a join failure, allowing
// errors.Is/errors.As to traverse chained join diagnostics.
func (e *Error) Unwrap() error { return e.inner }

func lexErrorf(format string, args ...any) *Error {
	return &Error{Kind: KindLex, Message: fmt.Sprintf(format, args...)}
}

func syntaxErrorf(format string, args ...any) *Error {
	return &Error{Kind: KindSyntax, Message: fmt.Sprintf(format, args...)}
}

func schemaErrorf(format string, args ...any) *Error {
	return &Error{Kind: KindSchema, Message: fmt.Sprintf(format, args...)}
}

func joinErrorf(format string, args ...any) *Error {
	return &Error{Kind: KindJoin, Message: fmt.Sprintf(format, args...)}
}

// wrapJoin annotates a nested filter failure with the joined
// collection it occurred in.
func wrapJoin(collection string, inner error) *Error {
	return &Error{
		Kind:    KindJoin,
		Message: fmt.Sprintf("[Error on filter for joined collection '%s']: %s", collection, inner.Error()),
		inner:   inner,
	}
}

// wrapFilter annotates a filter failure nested inside an eval clause.
// The original kind stays reachable through Unwrap.
func wrapFilter(inner error) *Error {
	kind := KindSyntax
	var qe *Error
	if errors.As(inner, &qe) {
		kind = qe.Kind
	}
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf("[Error on filter]: %s", inner.Error()),
		inner:   inner,
	}
}
