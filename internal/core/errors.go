package core

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a referenced record or payment entry as absent.
// Surfaced to the caller as-is; never retried.
var ErrNotFound = errors.New("not found")

// ErrValidation marks a rejected input. Validation always runs before any
// write, so a validation failure implies no partial state.
var ErrValidation = errors.New("validation failed")

// ErrConflict marks an optimistic save that lost against a concurrent
// writer. Callers re-read and retry at their own discretion.
var ErrConflict = errors.New("version conflict")

func notFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrNotFound, fmt.Sprintf(format, args...))
}

func validationf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
