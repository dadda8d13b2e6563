// Package errors provides structured error types for the heuristic and its tools.
//
// Every failure the heuristic can detect is reported as a value carrying a
// machine-readable [Code]. The engine never panics on bad input: callers inspect
// the code to tell an invalid instance apart from an inconsistent one.
//
// # Error Codes
//
//   - INVALID_*: the instance or an input value is malformed
//   - DANGLING_* / MISSING_* / DUPLICATE_* / BIN_OUT_OF_RANGE: Entity Model construction
//   - ORDER_EXHAUSTED: no starting-vertex candidate is left
//   - INCOMPLETE: a solver run stopped before reaching an answer
//   - INTERNAL_ERROR: unexpected internal state
//
// # Usage
//
//	err := errors.New(errors.ErrCodeMissingSize, "vertex %q has no size", name)
//	if errors.Is(err, errors.ErrCodeMissingSize) {
//	    // ...
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input errors
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidInstance Code = "INVALID_INSTANCE"
	ErrCodeInvalidFact     Code = "INVALID_FACT"
	ErrCodeInvalidDecision Code = "INVALID_DECISION"

	// Entity Model construction errors
	ErrCodeDanglingEdge    Code = "DANGLING_EDGE"
	ErrCodeMissingSize     Code = "MISSING_SIZE"
	ErrCodeDanglingOption  Code = "DANGLING_OPTION"
	ErrCodeDuplicateVertex Code = "DUPLICATE_VERTEX"
	ErrCodeBinOutOfRange   Code = "BIN_OUT_OF_RANGE"

	// Ordering errors
	ErrCodeOrderExhausted Code = "ORDER_EXHAUSTED"

	// Solver errors
	ErrCodeIncomplete Code = "INCOMPLETE"

	// Internal errors
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

// UserMessage returns the message without the code prefix for *Error values,
// and the plain error string otherwise.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// IsBuildError reports whether err was raised while constructing the Entity Model.
func IsBuildError(err error) bool {
	switch GetCode(err) {
	case ErrCodeDanglingEdge, ErrCodeMissingSize, ErrCodeDanglingOption,
		ErrCodeDuplicateVertex, ErrCodeBinOutOfRange:
		return true
	}
	return false
}
