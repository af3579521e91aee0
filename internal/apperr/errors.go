// Package apperr defines the tagged error kinds the order core surfaces.
//
// Every failure that should reach a caller (HTTP handler, worker log line)
// is wrapped as an *Error with a Kind the transport layer can map to a
// status code without inspecting message strings.
package apperr

import (
	"errors"
	"fmt"
)

// Kind is the closed set of failure categories defined in §7 of the spec.
type Kind string

const (
	KindValidation         Kind = "VALIDATION"
	KindBusinessValidation Kind = "BUSINESS_VALIDATION"
	KindNotFound           Kind = "NOT_FOUND"
	KindConflict           Kind = "CONFLICT"
	KindPaymentFailed      Kind = "PAYMENT_FAILED"
	KindPaymentUnavailable Kind = "PAYMENT_UNAVAILABLE"
	KindInternal           Kind = "INTERNAL"
)

// Error is the tagged-variant failure type used throughout the core.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...interface{}) *Error {
	return newf(KindValidation, format, args...)
}

func BusinessValidation(format string, args ...interface{}) *Error {
	return newf(KindBusinessValidation, format, args...)
}

func NotFound(format string, args ...interface{}) *Error {
	return newf(KindNotFound, format, args...)
}

func Conflict(format string, args ...interface{}) *Error {
	return newf(KindConflict, format, args...)
}

func PaymentFailed(format string, args ...interface{}) *Error {
	return newf(KindPaymentFailed, format, args...)
}

func PaymentUnavailable(format string, args ...interface{}) *Error {
	return newf(KindPaymentUnavailable, format, args...)
}

// Internal wraps an opaque infrastructure failure (storage, marshal, etc).
// It never leaks the cause's message to a caller beyond "internal error".
func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: "internal error", Cause: cause}
}

// As extracts an *Error from err, if present.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// KindOf returns the Kind of err, defaulting to KindInternal when err is
// not an *Error.
func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return KindInternal
}
