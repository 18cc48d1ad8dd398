package errors

// Recoverable errors may succeed on a later attempt (5xx, timeouts,
// network blips). Irrecoverable errors will keep failing until the request
// itself changes (most 4xx).
type Category int

const (
	Recoverable Category = iota
	Irrecoverable
)

// Classify maps a RequestError's status code onto a retry category.
// Non-HTTP errors (transport failures) are treated as recoverable.
func Classify(err error) Category {
	re, ok := AsRequestError(err)
	if !ok {
		return Recoverable
	}
	switch {
	case re.StatusCode >= 400 && re.StatusCode < 500:
		switch re.StatusCode {
		case 408, 429:
			return Recoverable
		default:
			return Irrecoverable
		}
	default:
		return Recoverable
	}
}

// IsIrrecoverable reports whether err should not be retried.
func IsIrrecoverable(err error) bool {
	if IsValidationError(err) {
		return true
	}
	return Classify(err) == Irrecoverable
}
