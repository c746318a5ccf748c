// Package apperrors holds the error kinds the API distinguishes on the wire.
package apperrors

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks a request with a missing or malformed field.
	ErrValidation = errors.New("validation failed")
	// ErrConflict marks a create that collides with an existing customer id.
	ErrConflict = errors.New("conflict")
	// ErrNotFound marks a read or delete of an unknown customer id.
	ErrNotFound = errors.New("not found")
	// ErrInternal marks any store failure the service does not classify.
	ErrInternal = errors.New("internal error")
)

// Error carries the message that is safe to show to API callers next to the
// kind used for status mapping. The underlying cause stays server side.
type Error struct {
	Kind    error
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func Validation(message string) error {
	return &Error{Kind: ErrValidation, Message: message}
}

func Conflict(message string, cause error) error {
	return &Error{Kind: ErrConflict, Message: message, Cause: cause}
}

func NotFound(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

func Internal(message string, cause error) error {
	return &Error{Kind: ErrInternal, Message: message, Cause: cause}
}

// PublicMessage returns the caller-facing message of err, or fallback when err
// was not produced by this package.
func PublicMessage(err error, fallback string) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}
