package geo

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a resolution failure. The kind decides whether the
// caller may retry (upstream outage) or must change its input (malformed
// coordinates, unknown place, bad parameter).
type ErrorKind string

const (
	// MalformedCoordinates means the input looked like a coordinate pair but
	// one component was invalid or out of range. Not retryable.
	MalformedCoordinates ErrorKind = "MALFORMED_COORDINATES"
	// NotFound means no resolution tier could match the name. Not retryable
	// without different input.
	NotFound ErrorKind = "NOT_FOUND"
	// UpstreamUnavailable means a transient network or service failure.
	// Retryable by the caller; never conflated with NotFound.
	UpstreamUnavailable ErrorKind = "UPSTREAM_UNAVAILABLE"
	// InvalidParameter means a caller-supplied parameter (station limit,
	// forecast day count) was outside its allowed range.
	InvalidParameter ErrorKind = "INVALID_PARAMETER"
)

// Error is a typed resolution failure. Detail carries diagnostic context
// (e.g. the raw upstream error) and is never user-facing prose; the tool
// layer decides how to phrase failures.
type Error struct {
	Kind   ErrorKind
	Detail string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports kind equality so callers can match with errors.Is against a
// bare-kind sentinel, e.g. errors.Is(err, &Error{Kind: NotFound}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func newError(kind ErrorKind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

func wrapError(kind ErrorKind, detail string, err error) *Error {
	return &Error{Kind: kind, Detail: detail, Err: err}
}

// KindOf returns the ErrorKind carried by err, or "" if err is not a geo
// error.
func KindOf(err error) ErrorKind {
	var ge *Error
	if errors.As(err, &ge) {
		return ge.Kind
	}
	return ""
}
