// Package apperror defines the domain error type shared by every service.
// Errors carry a stable machine-readable message key rather than a human
// sentence; client responses never leak internal detail beyond the key.
package apperror

import (
	"errors"
	"net/http"
)

type Error struct {
	Status  int    // HTTP-status-like severity
	Message string // stable key, e.g. "question.not-found"
	Silent  bool   // expected, frequent client error: skip server-side logging
}

func (e *Error) Error() string {
	return e.Message
}

func New(status int, message string, silent bool) *Error {
	return &Error{Status: status, Message: message, Silent: silent}
}

func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message, Silent: true}
}

func Forbidden(message string) *Error {
	return &Error{Status: http.StatusForbidden, Message: message, Silent: true}
}

func BadRequest(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message, Silent: true}
}

func Unauthorized(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: message, Silent: true}
}

func Internal(message string) *Error {
	return &Error{Status: http.StatusInternalServerError, Message: message}
}

// As unwraps err into *Error if it is one.
func As(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}
