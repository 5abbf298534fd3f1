package domain

import (
	"errors"
)

var (
	// ErrInvalidInput signals a rejected request parameter (page bounds, empty query, bad entity fields).
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound signals a missing entity on a by-id lookup.
	ErrNotFound = errors.New("not found")
	// ErrStoreUnavailable signals that no database connection could be acquired.
	// Callers may retry; the service itself never does.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrQueryExecution signals a failed statement (constraint violation, bad SQL, lost connection).
	ErrQueryExecution = errors.New("query execution failed")
)

// InvalidInputError wraps ErrInvalidInput with the offending field.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return ErrInvalidInput.Error() + ": " + e.Field + " " + e.Reason
}

func (e *InvalidInputError) Unwrap() error { return ErrInvalidInput }

// NewInvalidInput creates an invalid input error for a field.
func NewInvalidInput(field, reason string) error {
	return &InvalidInputError{Field: field, Reason: reason}
}
