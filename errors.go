package client

import (
	"github.com/studyforge/studyforge-client/internal/errors"
)

// Re-export the error taxonomy so callers compare against a single symbol
// set without importing internal packages.

// RequestError is a structured non-2xx HTTP response (status code + body).
type RequestError = errors.RequestError

// ValidationError is a client-side precondition failure; the request was
// never sent.
type ValidationError = errors.ValidationError

// ParseError marks a corrupted persisted credential snapshot.
type ParseError = errors.ParseError

// ErrPollTimeout is the sentinel recorded when a document status poll
// exhausts its attempt bound. It is informational, never fatal.
var ErrPollTimeout = errors.ErrPollTimeout

// AsRequestError returns the RequestError wrapped in err, if any.
func AsRequestError(err error) (*RequestError, bool) { return errors.AsRequestError(err) }

// IsValidationError reports whether err is (or wraps) a ValidationError.
func IsValidationError(err error) bool { return errors.IsValidationError(err) }
