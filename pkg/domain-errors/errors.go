// Package domainerrors carries the error taxonomy shared by services and the
// transport layer. Services return coded errors; handlers translate codes to
// HTTP statuses in one place.
package domainerrors

import (
	"errors"
)

// Code classifies a domain error.
type Code string

const (
	// CodeValidation marks missing or malformed required input.
	CodeValidation Code = "validation_error"
	// CodeConflict marks a uniqueness violation (duplicate country name).
	CodeConflict Code = "conflict"
	// CodeNotFound marks an update or delete that targets a nonexistent record.
	CodeNotFound           Code = "not_found"
	CodeBadRequest         Code = "bad_request"
	CodeInvalidInput       Code = "invalid_input"
	CodeInvariantViolation Code = "invariant_violation"
	// CodeInternal marks unexpected failures, typically store I/O.
	CodeInternal Code = "internal_error"
)

// Error is a coded domain error. Err holds the optional cause.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a coded error without a cause.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Wrap attaches a code and message to err while keeping it reachable through
// errors.Is and errors.As.
func Wrap(err error, code Code, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// HasCode reports whether the outermost domain error in err's chain has code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// Is is an alias of HasCode kept for call sites that read better with it.
func Is(err error, code Code) bool {
	return HasCode(err, code)
}

// CodeOf returns the outermost domain code, or CodeInternal for uncoded errors.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// MessageOf returns the user-facing message of the outermost domain error.
// The cause is deliberately left out so internal details do not leak.
func MessageOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Message
	}
	return ""
}
