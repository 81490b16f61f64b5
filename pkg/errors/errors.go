package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Load errors (fatal, abort the whole load)
	ErrSourceRead    ErrorCode = "SOURCE_READ"
	ErrHeaderParse   ErrorCode = "HEADER_PARSE"
	ErrDuplicateRule ErrorCode = "DUPLICATE_RULE"

	// Pattern errors (warn at load, fail closed)
	ErrPatternInvalid ErrorCode = "PATTERN_INVALID"

	// Resolution errors (programming errors, not recoverable conditions)
	ErrNilStore ErrorCode = "NIL_STORE"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
)

// AdhereError represents a structured error with code and details
type AdhereError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *AdhereError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *AdhereError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *AdhereError) Is(target error) bool {
	var targetErr *AdhereError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new AdhereError with the given code and message
func New(code ErrorCode, message string) *AdhereError {
	return &AdhereError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new AdhereError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *AdhereError {
	return &AdhereError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with an AdhereError
func Wrap(err error, code ErrorCode, message string) *AdhereError {
	if err == nil {
		return nil
	}
	return &AdhereError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *AdhereError {
	if err == nil {
		return nil
	}
	return &AdhereError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *AdhereError) WithDetail(key string, value interface{}) *AdhereError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var adhereErr *AdhereError
	if errors.As(err, &adhereErr) {
		return adhereErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not an AdhereError
func GetErrorCode(err error) ErrorCode {
	var adhereErr *AdhereError
	if errors.As(err, &adhereErr) {
		return adhereErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not an AdhereError
func GetErrorDetails(err error) map[string]interface{} {
	var adhereErr *AdhereError
	if errors.As(err, &adhereErr) {
		return adhereErr.Details
	}
	return nil
}
