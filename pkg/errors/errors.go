// Package errors provides structured error types for figgen.
//
// This package defines error codes and types that enable:
//   - Distinguishing fatal configuration/usage errors from per-file failures
//   - Machine-readable error codes for programmatic handling
//   - Error wrapping with context preservation
//
// # Error Codes
//
// Fatal codes (the whole invocation stops before any work):
//   - USAGE: raw image inputs supplied without --convert
//   - UNSUPPORTED_FORMAT: requested format outside a backend's allow-list
//   - MISSING_LANGUAGE: markup extension with no kroki language mapping
//
// Per-file codes (reported, siblings continue):
//   - RENDERER_FAILED, REMOTE_RESPONSE, FILE_NOT_FOUND, UNRECOGNIZED_INPUT
//
// # Usage
//
//	err := errors.New(errors.ErrCodeUnsupportedFormat, "drawio cannot export %s", format)
//	if errors.Is(err, errors.ErrCodeUnsupportedFormat) {
//	    // Fatal: abort the run
//	}
//
//	// Wrap existing errors
//	err := errors.Wrap(errors.ErrCodeRendererFailed, execErr, "dot failed on %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Fatal configuration and usage errors
	ErrCodeUsage             Code = "USAGE"
	ErrCodeUnsupportedFormat Code = "UNSUPPORTED_FORMAT"
	ErrCodeMissingLanguage   Code = "MISSING_LANGUAGE"
	ErrCodeInvalidConfig     Code = "INVALID_CONFIG"

	// Per-file execution errors
	ErrCodeRendererFailed    Code = "RENDERER_FAILED"
	ErrCodeRemoteResponse    Code = "REMOTE_RESPONSE"
	ErrCodeFileNotFound      Code = "FILE_NOT_FOUND"
	ErrCodeUnrecognizedInput Code = "UNRECOGNIZED_INPUT"

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

// IsFatal reports whether err is a configuration or usage error that
// must abort the whole invocation rather than a single conversion unit.
func IsFatal(err error) bool {
	switch GetCode(err) {
	case ErrCodeUsage, ErrCodeUnsupportedFormat, ErrCodeMissingLanguage, ErrCodeInvalidConfig:
		return true
	}
	return false
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
