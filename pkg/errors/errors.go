// Package errors provides structured error types for pagefit.
//
// Errors carry a machine-readable [Code] so the CLI and the HTTP API can
// report caller mistakes (bad paper type, undecodable input) differently from
// internal failures:
//   - INVALID_*: caller input failed validation
//   - *NOT_FOUND: a referenced file or report does not exist
//   - INTERNAL_*: unexpected failures
//
// Node-resolution misses during conversion are not errors; they are reported
// through the classification log instead.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeInvalidPaper, "unknown paper type: %s", name)
//	if errors.Is(err, errors.ErrCodeInvalidPaper) {
//	    // reject the request
//	}
//
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
	// Input validation errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidPaper  Code = "INVALID_PAPER"
	ErrCodeInvalidScale  Code = "INVALID_SCALE"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidRules  Code = "INVALID_RULES"
	ErrCodeInvalidPath   Code = "INVALID_PATH"

	// Resource not found errors
	ErrCodeNotFound       Code = "NOT_FOUND"
	ErrCodeFileNotFound   Code = "FILE_NOT_FOUND"
	ErrCodeReportNotFound Code = "REPORT_NOT_FOUND"

	// Backend errors
	ErrCodeStorage Code = "STORAGE_ERROR"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Invalid reports whether c is one of the INVALID_* codes.
func (c Code) Invalid() bool {
	switch c {
	case ErrCodeInvalidInput, ErrCodeInvalidPaper, ErrCodeInvalidScale,
		ErrCodeInvalidFormat, ErrCodeInvalidRules, ErrCodeInvalidPath:
		return true
	}
	return false
}

// NotFound reports whether c is one of the not-found codes.
func (c Code) NotFound() bool {
	return c == ErrCodeNotFound || c == ErrCodeFileNotFound || c == ErrCodeReportNotFound
}

// Error is a coded error. Cause is optional.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return string(e.Code) + ": " + e.Message + ": " + e.Cause.Error()
	}
	return string(e.Code) + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// GetCode returns the code of the first *Error in the chain of err, or ""
// when there is none.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// Is reports whether the first *Error in the chain of err carries code.
func Is(err error, code Code) bool {
	return err != nil && GetCode(err) == code
}

// IsInvalid reports whether err carries one of the INVALID_* codes.
func IsInvalid(err error) bool { return GetCode(err).Invalid() }

// IsNotFound reports whether err carries one of the not-found codes.
func IsNotFound(err error) bool { return GetCode(err).NotFound() }

// UserMessage returns err without code prefixes: the message of the first
// *Error followed by the message of its cause, if any.
func UserMessage(err error) string {
	var e *Error
	if !errors.As(err, &e) {
		return err.Error()
	}
	if e.Cause == nil {
		return e.Message
	}
	return e.Message + ": " + UserMessage(e.Cause)
}
