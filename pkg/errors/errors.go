package errors

import (
	"fmt"
	"net/http"
)

// Error codes reported in the "error" field of API responses.
const (
	CodeValidation  = "validation_error"
	CodeNotFound    = "not_found"
	CodeInternal    = "internal_error"
	CodeInvalidID   = "invalid_id"
	CodeRateLimited = "rate_limit_exceeded"
)

// StatusCoder is implemented by errors that know their HTTP status and API code.
type StatusCoder interface {
	error
	StatusCode() int
	Code() string
}

// ValidationError represents bad or missing client input.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError creates a new validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed: %s - %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// StatusCode returns 400.
func (e *ValidationError) StatusCode() int { return http.StatusBadRequest }

// Code returns the API error code.
func (e *ValidationError) Code() string { return CodeValidation }

// NotFoundError represents a lookup of a record that does not exist.
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

// StatusCode returns 404.
func (e *NotFoundError) StatusCode() int { return http.StatusNotFound }

// Code returns the API error code.
func (e *NotFoundError) Code() string { return CodeNotFound }

// InternalError wraps a failure talking to the store or another backend.
// Its message, including the wrapped cause, is returned to the caller as is.
type InternalError struct {
	Message string
	Err     error
}

// NewInternalError creates a new internal error
func NewInternalError(message string, err error) *InternalError {
	return &InternalError{
		Message: message,
		Err:     err,
	}
}

// Error implements the error interface
func (e *InternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error
func (e *InternalError) Unwrap() error {
	return e.Err
}

// StatusCode returns 500.
func (e *InternalError) StatusCode() int { return http.StatusInternalServerError }

// Code returns the API error code.
func (e *InternalError) Code() string { return CodeInternal }
