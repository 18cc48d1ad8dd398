// Package errors defines the error taxonomy shared by the SDK's stores and
// transport layer. It also classifies failures as recoverable or
// irrecoverable so background retry loops know when continuing is useless.
package errors

import (
	"errors"
	"fmt"
)

// ErrPollTimeout signals that a status poll exhausted its attempt bound
// without observing a terminal state. It is informational: the document is
// left in its last observed status and no store error is recorded.
var ErrPollTimeout = errors.New("poll attempt bound exhausted")

// RequestError is a non-2xx HTTP response. It carries the status code and
// the raw response body so callers never see an unstructured error for a
// well-formed server rejection.
type RequestError struct {
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http %d", e.StatusCode)
	}
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Body)
}

// AsRequestError returns the RequestError wrapped in err, if any.
func AsRequestError(err error) (*RequestError, bool) {
	var re *RequestError
	if errors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// ValidationError is a client-side precondition failure. Operations that
// return one have issued no network call.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ParseError marks a corrupted persisted snapshot. The credential store
// clears the bad state instead of failing startup; the ParseError is kept
// for diagnostics.
type ParseError struct {
	Path       string
	Underlying error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse persisted state %s: %v", e.Path, e.Underlying)
}

func (e *ParseError) Unwrap() error { return e.Underlying }
