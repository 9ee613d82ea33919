package store

import (
	"fmt"
	"net/http"
)

// Error is a persistence error with an HTTP status code.
type Error struct {
	StatusCode int    // HTTP status code
	Message    string // User-facing message
	Err        error  // Underlying error (optional)
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPCode returns the HTTP status code associated with this error.
func (e *Error) HTTPCode() int { return e.StatusCode }

// Code returns a machine-readable code for the response envelope.
func (e *Error) Code() string {
	switch e.StatusCode {
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "ALREADY_EXISTS"
	case http.StatusBadRequest:
		return "VALIDATION"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	default:
		return "INTERNAL"
	}
}

// Is reports whether target matches this error by status code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.StatusCode == t.StatusCode
}

// WithMessage returns a new error with a custom message.
func (e *Error) WithMessage(msg string) *Error {
	return &Error{
		StatusCode: e.StatusCode,
		Message:    msg,
		Err:        e.Err,
	}
}

// WithCause wraps an underlying error.
func (e *Error) WithCause(err error) *Error {
	return &Error{
		StatusCode: e.StatusCode,
		Message:    e.Message,
		Err:        err,
	}
}

// Sentinel errors.
var (
	ErrNotFound = &Error{
		StatusCode: http.StatusNotFound,
		Message:    "resource not found",
	}

	ErrAlreadyExists = &Error{
		StatusCode: http.StatusConflict,
		Message:    "resource already exists",
	}

	ErrInvalidInput = &Error{
		StatusCode: http.StatusBadRequest,
		Message:    "invalid input",
	}

	ErrInternal = &Error{
		StatusCode: http.StatusInternalServerError,
		Message:    "storage failure",
	}
)
