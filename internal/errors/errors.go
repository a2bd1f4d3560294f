package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents stable error codes for all failure modes
type ErrorCode string

const (
	// ModelLoad indicates the architecture model document is missing or malformed
	ModelLoad ErrorCode = "MODEL_LOAD_ERROR"
	// Parse indicates a source file is not syntactically valid
	Parse ErrorCode = "PARSE_ERROR"
	// File indicates a source file could not be read or analyzed
	File ErrorCode = "FILE_ERROR"
	// ConfigInvalid indicates the runtime configuration is invalid
	ConfigInvalid ErrorCode = "CONFIG_ERROR"
	// Timeout indicates per-file analysis timed out
	Timeout ErrorCode = "TIMEOUT"
	// Internal indicates an unexpected error
	Internal ErrorCode = "INTERNAL_ERROR"
)

// GuardError represents an archguard error with a stable code, message, and cause
type GuardError struct {
	Code    ErrorCode   `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	cause   error       // Underlying error (not exported to JSON)
}

// New creates a new GuardError
func New(code ErrorCode, message string, cause error) *GuardError {
	return &GuardError{
		Code:    code,
		Message: message,
		cause:   cause,
	}
}

// Newf creates a new GuardError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *GuardError {
	return &GuardError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error implements the error interface
func (e *GuardError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
func (e *GuardError) Unwrap() error {
	return e.cause
}

// WithDetails adds details to the error
func (e *GuardError) WithDetails(details interface{}) *GuardError {
	e.Details = details
	return e
}

// CodeOf returns the stable code carried by err, or Internal for plain errors.
func CodeOf(err error) ErrorCode {
	var ge *GuardError
	if errors.As(err, &ge) {
		return ge.Code
	}
	return Internal
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code ErrorCode) bool {
	return err != nil && CodeOf(err) == code
}
