// Package errors provides structured error types for the absorb engine.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the engine, pipeline and CLI
//   - Machine-readable error codes for programmatic handling
//   - The offending field and value for precise user messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - UNSUPPORTED_*: Input that is well-formed but outside the data tables
//   - INTERNAL_*: Unexpected internal errors
//
// All validation errors are request-scoped and deterministic; none is retryable.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidFormula, "unknown element symbol %q", sym)
//	if errors.Is(err, errors.ErrCodeInvalidFormula) {
//	    // Handle validation error
//	}
//
//	// Attach the offending input
//	err := errors.Field(errors.ErrCodeInvalidDensity, "density", 1.5, "packing fraction must be within [0, 1]")
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input validation errors
	ErrCodeInvalidInput         Code = "INVALID_INPUT"
	ErrCodeInvalidFormula       Code = "INVALID_FORMULA"
	ErrCodeInvalidSpectrumRange Code = "INVALID_SPECTRUM_RANGE"
	ErrCodeInvalidDensity       Code = "INVALID_DENSITY"
	ErrCodeInvalidRadius        Code = "INVALID_RADIUS"
	ErrCodeInvalidTable         Code = "INVALID_TABLE"

	// Well-formed input the tables cannot serve
	ErrCodeUnsupportedElement Code = "UNSUPPORTED_ELEMENT"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Field   string // Offending request field (optional)
	Value   any    // Offending value (optional)
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

// Field creates a new Error that records the offending request field and value.
func Field(code Code, field string, value any, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Field:   field,
		Value:   value,
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

// GetField extracts the offending field and value from an error, if recorded.
func GetField(err error) (field string, value any, ok bool) {
	var e *Error
	if errors.As(err, &e) && e.Field != "" {
		return e.Field, e.Value, true
	}
	return "", nil, false
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

// IsValidation reports whether err is one of the request validation failures.
func IsValidation(err error) bool {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidFormula, ErrCodeInvalidSpectrumRange,
		ErrCodeInvalidDensity, ErrCodeInvalidRadius, ErrCodeUnsupportedElement:
		return true
	}
	return false
}
