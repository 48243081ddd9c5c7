package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	CodeInvalidInput      = "INVALID_INPUT"
	CodeMissingParameters = "MISSING_PARAMETERS"
	CodeInvalidRange      = "INVALID_RANGE"
	CodeNotFound          = "NOT_FOUND"
	CodeBackend           = "BACKEND_ERROR"
	CodeInternal          = "INTERNAL_ERROR"
	CodeRateLimited       = "RATE_LIMITED"
)

// AppError represents an application error with context
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithError wraps an underlying error
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// New creates a new AppError
func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// InvalidInput creates an error for a malformed identifier or request body
func InvalidInput(message string) *AppError {
	return New(CodeInvalidInput, message, http.StatusBadRequest)
}

// MissingParameters creates an error for a range request lacking a bound
func MissingParameters(message string) *AppError {
	if message == "" {
		message = "Missing parameters"
	}
	return New(CodeMissingParameters, message, http.StatusBadRequest)
}

// InvalidRange creates an error for non-numeric or inverted range bounds
func InvalidRange(message string) *AppError {
	if message == "" {
		message = "Invalid range"
	}
	return New(CodeInvalidRange, message, http.StatusBadRequest)
}

// NotFound creates a not found error
func NotFound(resource string) *AppError {
	return New(CodeNotFound, fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

// Backend wraps a storage failure. The cause is kept for logs and never
// rendered to clients.
func Backend(err error) *AppError {
	return New(CodeBackend, "Backend operation failed", http.StatusInternalServerError).WithError(err)
}

// Internal creates an internal server error
func Internal(message string) *AppError {
	if message == "" {
		message = "Internal Server Error"
	}
	return New(CodeInternal, message, http.StatusInternalServerError)
}

// RateLimited creates a rate limited error
func RateLimited() *AppError {
	return New(CodeRateLimited, "Rate limit exceeded", http.StatusTooManyRequests)
}

// GetAppError extracts AppError from error if present
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	return GetAppError(err) != nil
}

// GetStatusCode returns the HTTP status code for an error
func GetStatusCode(err error) int {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

func hasCode(err error, code string) bool {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code == code
	}
	return false
}

// IsInvalidInput checks if the error is an invalid input error
func IsInvalidInput(err error) bool {
	return hasCode(err, CodeInvalidInput)
}

// IsMissingParameters checks if the error is a missing parameters error
func IsMissingParameters(err error) bool {
	return hasCode(err, CodeMissingParameters)
}

// IsInvalidRange checks if the error is an invalid range error
func IsInvalidRange(err error) bool {
	return hasCode(err, CodeInvalidRange)
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool {
	return hasCode(err, CodeNotFound)
}

// IsBackend checks if the error is a backend error
func IsBackend(err error) bool {
	return hasCode(err, CodeBackend)
}

// IsRateLimited checks if the error is a rate limited error
func IsRateLimited(err error) bool {
	return hasCode(err, CodeRateLimited)
}
