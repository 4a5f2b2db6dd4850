// Package errors provides structured error types for bigo.
//
// Every failure the analyzer can report carries a machine-readable [Code]
// so that the CLI, the HTTP API and MCP tools surface the same taxonomy:
//
//   - EmptyOrInvalidInput: the input is blank, not valid UTF-8, or too long
//   - TokenizeError: an unrecognized character or identifier
//   - ParseError: a grammar violation (missing token, unbalanced parens, trailing tokens)
//   - TooManyTerms: expansion produced more terms than the policy cap
//   - UnsupportedTermShape: no term could be reduced to a growth signature
//
// The remaining codes cover the tooling around the analyzer (configuration,
// storage lookups, unexpected failures).
//
// # Usage
//
//	err := errors.New(errors.ErrCodeParse, "expected ')' at position %d", pos)
//	if errors.Is(err, errors.ErrCodeParse) {
//	    // Handle grammar error
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeInvalidConfig, origErr, "read %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Analysis error codes. The string values are part of the public output.
const (
	ErrCodeEmptyInput       Code = "EmptyOrInvalidInput"
	ErrCodeTokenize         Code = "TokenizeError"
	ErrCodeParse            Code = "ParseError"
	ErrCodeTooManyTerms     Code = "TooManyTerms"
	ErrCodeUnsupportedShape Code = "UnsupportedTermShape"
)

// Tooling error codes.
const (
	ErrCodeInvalidConfig Code = "InvalidConfig"
	ErrCodeNotFound      Code = "NotFound"
	ErrCodeInternal      Code = "Internal"
	ErrCodeUnsupported   Code = "Unsupported"
)

// NoPos marks an error that is not tied to a position in the input.
const NoPos = -1

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Pos     int    // Byte offset into the analyzed expression, or NoPos
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
		Pos:     NoPos,
	}
}

// At creates a new Error anchored at a byte offset of the analyzed expression.
func At(code Code, pos int, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Pos = pos
	return e
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Pos:     NoPos,
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
