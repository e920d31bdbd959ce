// Package errors provides structured error types for prettymarkup.
//
// This package defines error codes and types that enable:
//   - Consistent error handling across the CLI, the HTTP API and the MCP tool
//   - Machine-readable error codes for programmatic handling
//   - User-friendly error messages
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Error codes follow a hierarchical naming convention:
//   - INVALID_*: Input validation failures
//   - AMBIGUOUS_INPUT: More than one embedded JSON-LD block
//   - CONVERSION_FAILED: The JSON-LD processor rejected the document
//   - PALETTE_EXHAUSTED: The color palette ran dry mid-render
//   - NOT_FOUND / NETWORK_*: Fetching remote documents
//   - INTERNAL_*: Unexpected internal errors
//
// # Usage
//
//	err := errors.New(errors.ErrCodeAmbiguousInput, "found %d JSON-LD blocks", n)
//	if errors.Is(err, errors.ErrCodeAmbiguousInput) {
//	    // Ask the user which block to render
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeConversion, origErr, "convert %s", name)
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
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidTarget Code = "INVALID_TARGET"
	ErrCodeInvalidBase   Code = "INVALID_BASE"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"

	// Document errors
	ErrCodeAmbiguousInput Code = "AMBIGUOUS_INPUT"
	ErrCodeConversion     Code = "CONVERSION_FAILED"

	// Render errors
	ErrCodePaletteExhausted Code = "PALETTE_EXHAUSTED"

	// Resource errors
	ErrCodeNotFound Code = "NOT_FOUND"
	ErrCodeNetwork  Code = "NETWORK_ERROR"
	ErrCodeTimeout  Code = "TIMEOUT"

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
		if e.Cause != nil {
			return e.Message + ": " + e.Cause.Error()
		}
		return e.Message
	}
	return err.Error()
}

// HTTPStatus maps an error code to the HTTP status the API reports for it.
func HTTPStatus(err error) int {
	switch GetCode(err) {
	case ErrCodeInvalidInput, ErrCodeInvalidFormat, ErrCodeInvalidTarget,
		ErrCodeInvalidBase, ErrCodeAmbiguousInput:
		return 400
	case ErrCodeConversion:
		return 422
	case ErrCodeNotFound:
		return 404
	case ErrCodeNetwork:
		return 502
	case ErrCodeTimeout:
		return 504
	case ErrCodeUnsupported:
		return 501
	default:
		return 500
	}
}
