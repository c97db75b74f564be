package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ValidationError represents one or more violated field constraints.
// It never reaches the persistence layer.
type ValidationError struct {
	Messages []string
}

// NewValidationError creates a new validation error
func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{
		Messages: messages,
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return "invalid user data:\n" + strings.Join(e.Messages, "\n")
}

// HTTPStatus returns the HTTP status for this error
func (e *ValidationError) HTTPStatus() int {
	return http.StatusBadRequest
}

// StorageError represents a unit-of-work that could not be completed
// (connectivity, query or transaction failure). Any transaction in flight
// has already been rolled back when it is returned.
type StorageError struct {
	Op  string
	Err error
}

// NewStorageError creates a new storage error
func NewStorageError(op string, err error) *StorageError {
	return &StorageError{
		Op:  op,
		Err: err,
	}
}

// Error implements the error interface
func (e *StorageError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("storage: %s", e.Op)
}

// Unwrap returns the wrapped error
func (e *StorageError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status for this error
func (e *StorageError) HTTPStatus() int {
	return http.StatusInternalServerError
}

// NotFoundError represents a resource not found error. The core reports
// absence as a nil result; front ends use this type to render it.
type NotFoundError struct {
	Resource string
	Message  string
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource, message string) *NotFoundError {
	return &NotFoundError{
		Resource: resource,
		Message:  message,
	}
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

// HTTPStatus returns the HTTP status for this error
func (e *NotFoundError) HTTPStatus() int {
	return http.StatusNotFound
}

// HTTPStatuser interface for errors that can provide an HTTP status
type HTTPStatuser interface {
	HTTPStatus() int
}

// IsValidation reports whether err is or wraps a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsStorage reports whether err is or wraps a *StorageError.
func IsStorage(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// HTTPStatus maps err to a status code, defaulting to 500.
func HTTPStatus(err error) int {
	var s HTTPStatuser
	if errors.As(err, &s) {
		return s.HTTPStatus()
	}
	return http.StatusInternalServerError
}
