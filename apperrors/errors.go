package apperrors

import (
	"fmt"
	"net/http"
)

// Error represents an application error
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a new Error
func New(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation reports malformed or incomplete input.
func Validation(message string) *Error {
	return New(http.StatusBadRequest, message, nil)
}

// NotFound reports an absent referenced entity.
func NotFound(message string) *Error {
	return New(http.StatusNotFound, message, nil)
}

// Conflict reports a uniqueness violation (duplicate phone number, duplicate orderId).
func Conflict(message string) *Error {
	return New(http.StatusConflict, message, nil)
}

// Stock reports insufficient inventory for a requested quantity.
func Stock(message string) *Error {
	return New(http.StatusBadRequest, message, nil)
}

// Internal wraps an unexpected failure behind a generic message.
func Internal(err error) *Error {
	return New(http.StatusInternalServerError, "Internal server error", err)
}

// Common error values
var (
	ErrUnauthorized = New(http.StatusUnauthorized, "Unauthorized", nil)
	ErrForbidden    = New(http.StatusForbidden, "Forbidden", nil)
)
