// Package apperror defines the domain error taxonomy shared by the service
// and handler layers.
//
// Services return these errors; the HTTP layer translates them to status
// codes in one place (handler/response.go). Sentinel errors let callers use
// errors.Is across wrapped chains, while AppError carries the human-readable
// message and the offending field.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)

type AppError struct {
	Err     error  // sentinel from the taxonomy above
	Message string // human-readable error message
	Field   string // optional: field causing the error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports that a record lookup produced no result.
// The key is whatever the caller looked up by — an id, an email, or a slug.
func NotFound(resource, key string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, key),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Conflict reports a uniqueness violation — a slug or email that is already
// taken. The slug provisioning flow treats this as retryable.
func Conflict(resource, key string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: fmt.Sprintf("%s already taken: %s", resource, key),
	}
}

// Forbidden reports that the caller lacks permission, e.g. editing another
// user's content. HTTP handlers map this to 403.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}

// Unauthorized reports a failed credential check (bad password, invalid or
// expired token). Messages stay vague on purpose — never reveal whether the
// email or the password was wrong.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}
