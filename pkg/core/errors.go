package core

import (
	"fmt"
)

// ErrorCategory classifies the type of error for logging and handling
type ErrorCategory int

const (
	ErrCategoryNone       ErrorCategory = iota // No error
	ErrCategoryTimeout                         // Wait or find timed out
	ErrCategoryConnection                      // Automation server unreachable or session failed
	ErrCategoryConfig                          // Bad caller input or configuration
)

// String returns the string representation of ErrorCategory
func (c ErrorCategory) String() string {
	switch c {
	case ErrCategoryTimeout:
		return "timeout"
	case ErrCategoryConnection:
		return "connection"
	case ErrCategoryConfig:
		return "config"
	default:
		return "none"
	}
}

// ExecutionError represents a structured error with category and details
type ExecutionError struct {
	Category ErrorCategory
	Code     string // Machine-readable code: element_not_found, timeout, etc.
	Message  string // Human-readable message
	Cause    error  // Underlying error
}

// Error implements the error interface
func (e *ExecutionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *ExecutionError) Unwrap() error {
	return e.Cause
}

// Is matches against the predefined error values by code, so that
// errors.Is(err, core.ErrElementNotFound) works on wrapped copies.
func (e *ExecutionError) Is(target error) bool {
	t, ok := target.(*ExecutionError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithCause returns a copy of the error with the given cause
func (e *ExecutionError) WithCause(cause error) *ExecutionError {
	return &ExecutionError{
		Category: e.Category,
		Code:     e.Code,
		Message:  e.Message,
		Cause:    cause,
	}
}

// WithMessage returns a copy of the error with a custom message
func (e *ExecutionError) WithMessage(msg string) *ExecutionError {
	return &ExecutionError{
		Category: e.Category,
		Code:     e.Code,
		Message:  msg,
		Cause:    e.Cause,
	}
}

// Predefined errors
var (
	// Timeout errors
	ErrElementNotFound = &ExecutionError{
		Category: ErrCategoryTimeout,
		Code:     "element_not_found",
		Message:  "element not found",
	}
	ErrWaitTimeout = &ExecutionError{
		Category: ErrCategoryTimeout,
		Code:     "wait_timeout",
		Message:  "wait condition timed out",
	}

	// Connection errors
	ErrSessionCreation = &ExecutionError{
		Category: ErrCategoryConnection,
		Code:     "session_creation_failed",
		Message:  "failed to create automation session",
	}
	ErrServerUnreachable = &ExecutionError{
		Category: ErrCategoryConnection,
		Code:     "server_unreachable",
		Message:  "could not connect to automation server",
	}

	// Caller errors
	ErrUnsupportedPlatform = &ExecutionError{
		Category: ErrCategoryConfig,
		Code:     "unsupported_platform",
		Message:  "unsupported platform",
	}
	ErrInvalidDirection = &ExecutionError{
		Category: ErrCategoryConfig,
		Code:     "invalid_direction",
		Message:  "invalid scroll direction",
	}
	ErrConfigNotFound = &ExecutionError{
		Category: ErrCategoryConfig,
		Code:     "config_not_found",
		Message:  "capability config file not found",
	}
)

// NewExecutionError creates a new ExecutionError with the given parameters
func NewExecutionError(category ErrorCategory, code, message string) *ExecutionError {
	return &ExecutionError{
		Category: category,
		Code:     code,
		Message:  message,
	}
}
