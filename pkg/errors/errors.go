// Package errors provides structured error types for the yeargrid libraries.
//
// Every failure surfaced by the grid, layout and interaction packages carries
// a machine-readable [Code] so callers can tell a bad configuration apart from
// an out-of-range request or a broken gesture protocol:
//
//   - CONFIGURATION: invalid page size, month index, precision, column width
//   - INDEX_OUT_OF_RANGE: page or column index outside the grid
//   - INVALID_STATE: session protocol violation (ending a gesture that was
//     never started, dragging while a resize is open, ...)
//   - INVALID_INPUT: malformed events or requests
//
// Nothing in the core retries or substitutes defaults; the error is returned
// to the caller synchronously.
//
// # Usage
//
//	pages, err := grid.Partition(months, 0)
//	if errors.Is(err, errors.ErrCodeConfiguration) {
//	    // pick a valid page size
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidInput, origErr, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Caller-supplied parameters are unusable
	ErrCodeConfiguration Code = "CONFIGURATION"
	ErrCodeInvalidInput  Code = "INVALID_INPUT"

	// Bounds violations
	ErrCodeIndex Code = "INDEX_OUT_OF_RANGE"

	// Gesture session protocol violations
	ErrCodeInvalidState Code = "INVALID_STATE"

	// Resource not found errors
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Configuration is shorthand for New(ErrCodeConfiguration, ...).
func Configuration(format string, args ...any) *Error {
	return New(ErrCodeConfiguration, format, args...)
}

// Index is shorthand for New(ErrCodeIndex, ...).
func Index(format string, args ...any) *Error {
	return New(ErrCodeIndex, format, args...)
}

// InvalidState is shorthand for New(ErrCodeInvalidState, ...).
func InvalidState(format string, args ...any) *Error {
	return New(ErrCodeInvalidState, format, args...)
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if the error is not an *Error.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// For *Error types, returns the message without the code prefix.
// For other errors, returns the error string as-is.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
