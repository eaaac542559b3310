package internal

import (
	"errors"
	"fmt"
)

// AppError is the error shape surfaced in API responses.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return fmt.Sprintf("%d: %s", e.Code, e.Message)
}

func NewAppError(code int, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}

// ErrNotFound marks a missing document (HTTP 404).
func ErrNotFound(msg string) *AppError {
	return &AppError{Code: 404, Message: msg}
}

// ErrInvalidState marks an operation rejected by a lifecycle rule, such as
// stopping a timer that is not running (HTTP 400).
func ErrInvalidState(msg string) *AppError {
	return &AppError{Code: 400, Message: msg}
}

// StatusOf maps an error to an HTTP status, defaulting to 500.
func StatusOf(err error) int {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code
	}
	return 500
}
