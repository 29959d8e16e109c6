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
	ErrUnknown        ErrorCode = "UNKNOWN"
	ErrInternal       ErrorCode = "INTERNAL"
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrAlreadyExists  ErrorCode = "ALREADY_EXISTS"
	ErrNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// Pattern errors
	ErrPatternEmpty  ErrorCode = "PATTERN_EMPTY"
	ErrPatternParse  ErrorCode = "PATTERN_PARSE"
	ErrPatternSyntax ErrorCode = "PATTERN_SYNTAX"

	// Token errors
	ErrTokenUnknown ErrorCode = "TOKEN_UNKNOWN"
	ErrTokenResolve ErrorCode = "TOKEN_RESOLVE"
	ErrTokenArgs    ErrorCode = "TOKEN_ARGS"

	// Group errors
	ErrGroupNotFound ErrorCode = "GROUP_NOT_FOUND"

	// Match errors
	ErrMatchFailed     ErrorCode = "MATCH_FAILED"
	ErrConflictDetect  ErrorCode = "CONFLICT_DETECT"
	ErrConflictResolve ErrorCode = "CONFLICT_RESOLVE"

	// Cache errors
	ErrCacheGet      ErrorCode = "CACHE_GET"
	ErrCacheSet      ErrorCode = "CACHE_SET"
	ErrCacheShutdown ErrorCode = "CACHE_SHUTDOWN"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
)

// PatternError represents a structured error with code and details
type PatternError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PatternError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PatternError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *PatternError) Is(target error) bool {
	var targetErr *PatternError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PatternError with the given code and message
func New(code ErrorCode, message string) *PatternError {
	return &PatternError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PatternError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PatternError {
	return &PatternError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a PatternError
func Wrap(err error, code ErrorCode, message string) *PatternError {
	if err == nil {
		return nil
	}
	return &PatternError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PatternError {
	if err == nil {
		return nil
	}
	return &PatternError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *PatternError) WithDetail(key string, value interface{}) *PatternError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *PatternError) WithDetails(details map[string]interface{}) *PatternError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var patternErr *PatternError
	if errors.As(err, &patternErr) {
		return patternErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a PatternError
func GetErrorCode(err error) ErrorCode {
	var patternErr *PatternError
	if errors.As(err, &patternErr) {
		return patternErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a PatternError
func GetErrorDetails(err error) map[string]interface{} {
	var patternErr *PatternError
	if errors.As(err, &patternErr) {
		return patternErr.Details
	}
	return nil
}
