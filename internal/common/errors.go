package common

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("unauthorized")
)

// appError carries a client-facing message and the class it belongs to.
type appError struct {
	kind    error
	message string
}

func (e *appError) Error() string { return e.message }

func (e *appError) Unwrap() error { return e.kind }

// NewValidationError reports bad input. Maps to 400.
func NewValidationError(format string, args ...any) error {
	return &appError{kind: ErrValidation, message: fmt.Sprintf(format, args...)}
}

// NewNotFoundError reports an unknown resource, e.g. NewNotFoundError("Product").
func NewNotFoundError(resource string) error {
	return &appError{kind: ErrNotFound, message: fmt.Sprintf("%s not found", resource)}
}

// NewUnauthorizedError reports failed authentication. Maps to 401.
func NewUnauthorizedError(message string) error {
	return &appError{kind: ErrUnauthorized, message: message}
}

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// StatusFor maps an error onto its HTTP status and client message.
func StatusFor(err error) (int, string) {
	var appErr *appError
	switch {
	case errors.As(err, &appErr) && errors.Is(err, ErrValidation):
		return http.StatusBadRequest, appErr.message
	case errors.As(err, &appErr) && errors.Is(err, ErrNotFound):
		return http.StatusNotFound, appErr.message
	case errors.As(err, &appErr) && errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, appErr.message
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized, err.Error()
	default:
		return http.StatusInternalServerError, err.Error()
	}
}
