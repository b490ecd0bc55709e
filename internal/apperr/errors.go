// Package apperr defines the typed errors the core returns to its
// callers. Handlers translate kinds into HTTP statuses; the core itself
// never logs or notifies.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error for the calling layer.
type Kind int

const (
	// KindUnknown is the zero value; errors without a known kind map to it.
	KindUnknown Kind = iota
	// KindUnauthenticated means no valid session; scoped operations must
	// refuse rather than degrade to unscoped queries.
	KindUnauthenticated
	// KindValidation means the input was rejected before any write.
	KindValidation
	// KindNotFound means the referenced id does not resolve to a record
	// owned by the current tenant.
	KindNotFound
	// KindConflict means a uniqueness rule was violated, e.g. a duplicate
	// coupon code within a tenant.
	KindConflict
	// KindUpstream means the persistence or auth collaborator failed. The
	// cause is always carried verbatim, never swallowed or retried here.
	KindUpstream
)

// Error is a typed error with an optional wrapped cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes errors.Is match two apperr values of the same kind.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

// New creates a typed error without a cause.
func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf creates a typed error with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an upstream cause.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf extracts the kind from an error chain, KindUnknown if untyped.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Unauthenticated reports whether the error chain carries KindUnauthenticated.
func Unauthenticated(err error) bool { return KindOf(err) == KindUnauthenticated }

// IsValidation reports whether the error chain carries KindValidation.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsNotFound reports whether the error chain carries KindNotFound.
func IsNotFound(err error) bool { return KindOf(err) == KindNotFound }

// IsConflict reports whether the error chain carries KindConflict.
func IsConflict(err error) bool { return KindOf(err) == KindConflict }

// IsUpstream reports whether the error chain carries KindUpstream.
func IsUpstream(err error) bool { return KindOf(err) == KindUpstream }
