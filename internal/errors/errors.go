// Package errors defines the sentinel errors shared by every domain
// slice. Use cases wrap these with context, and HTTP handlers map them
// to status codes without inspecting error strings.
package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the requested resource does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict means the operation collides with existing data,
	// typically a unique constraint violation.
	ErrConflict = errors.New("conflict")

	// ErrInvalidInput means the request failed validation. Messages
	// wrapped around it are safe to return to the caller verbatim.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized means the request carries no valid credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden means the caller is authenticated but not allowed
	// to perform the operation.
	ErrForbidden = errors.New("forbidden")

	// ErrInternal means an unexpected failure: a repository error, an
	// unreachable collaborator, or broken data. Details are logged,
	// never returned to the caller.
	ErrInternal = errors.New("internal error")
)

// New is a thin wrapper around errors.New so callers only import this
// package for error handling.
func New(message string) error {
	return errors.New(message)
}

// Wrap adds context to err while keeping the chain intact for Is/As.
// A nil err returns nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's tree that matches target.
func As(err error, target any) bool {
	return errors.As(err, target)
}
