// utils/errors.go
package utils

import (
	"errors"
	"net/http"
)

// AppError is the error type every service returns. Kind decides the HTTP
// status the controllers map it to.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindAuthentication
	KindNotFound
	KindDatabase
)

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error kind to its HTTP status
func (e *AppError) StatusCode() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindDatabase:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// NewValidationError reports malformed or missing input (400)
func NewValidationError(message string) *AppError {
	return &AppError{Kind: KindValidation, Message: message}
}

// NewAuthenticationError reports bad credentials or tokens (401)
func NewAuthenticationError(message string) *AppError {
	return &AppError{Kind: KindAuthentication, Message: message}
}

// NewNotFoundError reports a missing resource (404)
func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: KindNotFound, Message: message}
}

// NewDatabaseError reports a persistence failure (500)
func NewDatabaseError(message string, err error) *AppError {
	return &AppError{Kind: KindDatabase, Message: message, Err: err}
}

// AsAppError extracts an *AppError from an error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsKind reports whether err is an AppError of the given kind
func IsKind(err error, kind ErrorKind) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Kind == kind
}
