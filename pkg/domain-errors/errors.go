// Package domerrors defines the coded error type returned by services.
//
// Stores and infrastructure return sentinel errors (pkg/platform/sentinel);
// services translate them into coded errors here so transports can map them
// to protocol status without inspecting internals.
package domerrors

import (
	"errors"
	"fmt"
)

// Code classifies an error for callers and transports.
type Code string

const (
	// CodeNotFound: an id did not resolve to a record.
	CodeNotFound Code = "not_found"
	// CodeUnauthorized: caller is not authenticated.
	CodeUnauthorized Code = "unauthorized"
	// CodeForbidden: caller lacks the required relationship to the entity
	// (not owner, employee, or arbitrator).
	CodeForbidden Code = "forbidden"
	// CodeValidation: malformed or out-of-range input (zero amount,
	// rating out of bounds, empty identity).
	CodeValidation Code = "validation"
	// CodeConflict: the operation would duplicate a unique record
	// (identity already holds a credential).
	CodeConflict Code = "conflict"
	// CodeInvalidState: the entity's current status forbids the operation.
	CodeInvalidState Code = "invalid_state"
	// CodeTransferFailed: value movement to a recipient failed. State has
	// been rolled back; retry policy belongs to the caller.
	CodeTransferFailed Code = "transfer_failed"
	// CodeInternal: unexpected infrastructure failure.
	CodeInternal Code = "internal_error"
	// CodeBadRequest: request could not be decoded at the transport layer.
	CodeBadRequest Code = "bad_request"
)

// Error is a coded domain error. Message is safe to return to callers for
// every code except CodeInternal.
type Error struct {
	Code    Code
	Message string
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.err
}

// New builds a coded error.
func New(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Newf builds a coded error with a formatted message.
func Newf(code Code, format string, args ...any) error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying error.
func Wrap(err error, code Code, message string) error {
	return &Error{Code: code, Message: message, err: err}
}

// HasCode reports whether err (or anything it wraps) carries the code.
func HasCode(err error, code Code) bool {
	var de *Error
	for errors.As(err, &de) {
		if de.Code == code {
			return true
		}
		err = de.err
	}
	return false
}

// CodeOf extracts the outermost code, defaulting to CodeInternal so
// uncoded errors are never leaked with a permissive status.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}
