// Package errors provides structured error types for cardsheet.
//
// Only contract violations are errors in cardsheet: a nil card, a zero
// direction, an empty or unknown sheet id. Expected outcomes such as an
// occupied cell, a locked card or a destination outside the grid are reported
// as values by the engines and never surface here.
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Precondition failures (caller bugs)
//   - *_NOT_FOUND: Unknown sheet or card identifiers
//   - DUPLICATE_*: Identifier collisions
//   - GRID_FULL / INTERNAL_ERROR: Conditions the engine could not resolve
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidDirection, "direction %s has zero magnitude", d)
//	if errors.Is(err, errors.ErrCodeInvalidDirection) {
//	    // Handle precondition failure
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidConfig, origErr, "load %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Precondition failures
	ErrCodeInvalidArgument  Code = "INVALID_ARGUMENT"
	ErrCodeInvalidDirection Code = "INVALID_DIRECTION"
	ErrCodeInvalidSheet     Code = "INVALID_SHEET"
	ErrCodeInvalidCard      Code = "INVALID_CARD"
	ErrCodeInvalidLayer     Code = "INVALID_LAYER"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"
	ErrCodeInvalidScenario  Code = "INVALID_SCENARIO"

	// Lookup failures
	ErrCodeSheetNotFound Code = "SHEET_NOT_FOUND"
	ErrCodeCardNotFound  Code = "CARD_NOT_FOUND"

	// Identifier collisions
	ErrCodeDuplicateSheet Code = "DUPLICATE_SHEET"
	ErrCodeDuplicateCard  Code = "DUPLICATE_CARD"

	// Unresolvable engine conditions
	ErrCodeGridFull Code = "GRID_FULL"
	ErrCodeInternal Code = "INTERNAL_ERROR"
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
