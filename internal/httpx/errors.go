package httpx

import (
	"fmt"
	"net/http"
)

// AppError represents an application error with an HTTP status
type AppError struct {
	HTTPStatus int    // HTTP status code
	Message    string // User-facing error message
	Details    string // Optional extra context returned to the client
	Err        error  // Internal error (for logging only, not returned to client)
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("status=%d, message=%s, err=%v", e.HTTPStatus, e.Message, e.Err)
	}
	return fmt.Sprintf("status=%d, message=%s", e.HTTPStatus, e.Message)
}

// WithDetails adds client-visible details to the error
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// NewAppError creates a new AppError
func NewAppError(httpStatus int, message string, err error) *AppError {
	return &AppError{
		HTTPStatus: httpStatus,
		Message:    message,
		Err:        err,
	}
}

// ErrValidation creates a 400 validation error
func ErrValidation(message string) *AppError {
	if message == "" {
		message = "invalid input"
	}
	return NewAppError(http.StatusBadRequest, message, nil)
}

// ErrNotFound creates a 404 not found error
func ErrNotFound(message string) *AppError {
	if message == "" {
		message = "resource not found"
	}
	return NewAppError(http.StatusNotFound, message, nil)
}

// ErrConflict creates a 409 conflict error
func ErrConflict(message string) *AppError {
	if message == "" {
		message = "resource already exists"
	}
	return NewAppError(http.StatusConflict, message, nil)
}

// ErrUnavailable creates a 503 store unavailable error
func ErrUnavailable(message string, err error) *AppError {
	if message == "" {
		message = "database unavailable"
	}
	e := NewAppError(http.StatusServiceUnavailable, message, err)
	if err != nil {
		e.Details = err.Error()
	}
	return e
}

// ErrStorage creates a 500 storage error
func ErrStorage(message string, err error) *AppError {
	if message == "" {
		message = "storage error"
	}
	return NewAppError(http.StatusInternalServerError, message, err)
}

// ErrInternal creates a 500 internal error
func ErrInternal(message string, err error) *AppError {
	if message == "" {
		message = "internal error"
	}
	return NewAppError(http.StatusInternalServerError, message, err)
}
