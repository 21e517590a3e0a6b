package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError represents an application error with a machine-readable code
type AppError struct {
	Code    string // Error code for client
	Message string // Human-readable message
	Err     error  // Underlying error
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Error codes. Every failure an operation can surface belongs to exactly
// one of these; operations never retry on any of them.
const (
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeNotFound        = "NOT_FOUND"
	CodeValidation      = "VALIDATION_ERROR"
	CodeBusinessRule    = "BUSINESS_RULE_VIOLATION"
	CodeConflict        = "CONFLICT"
	CodeInternal        = "INTERNAL_ERROR"
)

// New creates a new AppError
func New(code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an error with additional context
func Wrap(err error, code, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Unauthenticated creates an authentication failure error
func Unauthenticated(message string) *AppError {
	return New(CodeUnauthenticated, message)
}

// NotFound creates a not found error. Ownership violations are reported
// through this same code so a caller cannot tell "not yours" from
// "does not exist".
func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource))
}

// Validation creates a validation error
func Validation(message string) *AppError {
	return New(CodeValidation, message)
}

// BusinessRule creates a business rule violation error
func BusinessRule(message string) *AppError {
	return New(CodeBusinessRule, message)
}

// Conflict creates a conflict error
func Conflict(message string) *AppError {
	return New(CodeConflict, message)
}

// Internal creates an internal error
func Internal(message string, err error) *AppError {
	return Wrap(err, CodeInternal, message)
}

// From extracts an AppError from an error chain, or nil
func From(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// HTTPStatus maps an error to the HTTP status it should produce.
// Errors that carry no AppError are treated as internal.
func HTTPStatus(err error) int {
	appErr := From(err)
	if appErr == nil {
		return http.StatusInternalServerError
	}
	switch appErr.Code {
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeValidation:
		return http.StatusBadRequest
	case CodeBusinessRule:
		return http.StatusUnprocessableEntity
	case CodeConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
