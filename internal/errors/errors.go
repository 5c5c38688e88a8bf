// Package errors provides standardized domain errors that express the cause
// of a failure rather than infrastructure details. Component packages wrap
// these base errors into their own error kinds so callers can branch on them.
package errors

import (
	"errors"
	"fmt"
)

// Standard domain errors shared across all component modules.
var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a conflict with existing data (e.g., duplicate key name).
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput indicates the input data is invalid or fails validation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnavailable indicates an external collaborator (e.g., the key store)
	// could not be reached.
	ErrUnavailable = errors.New("unavailable")

	// ErrUnauthorized indicates a credential or token failed verification.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidConfig indicates a component was constructed with an invalid
	// or incomplete configuration. This is the only condition surfaced as a
	// configuration error rather than a runtime error.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// New creates a new error with the given message.
// This is a convenience wrapper around errors.New for consistency.
func New(message string) error {
	return errors.New(message)
}

// Wrap wraps an error with additional context while preserving the error chain.
// Use this to add context at each layer without losing the original error kind.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
// This is a convenience wrapper around errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
// This is a convenience wrapper around errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
