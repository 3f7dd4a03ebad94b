// Package api
// Author: momentics <momentics@gmail.com>
//
// Common error types and error handling utilities for hioload-wepoll.

package api

import (
	"errors"
	"fmt"
)

// ErrorCode represents specific error conditions in the library.
type ErrorCode int

const (
	ErrCodeOK ErrorCode = iota
	ErrCodeInvalidArgument
	ErrCodeOutOfMemory
	ErrCodeDuplicateRegistration
	ErrCodeNotRegistered
	ErrCodeOSResource
	ErrCodePortClosed
)

var codeNames = map[ErrorCode]string{
	ErrCodeOK:                    "ok",
	ErrCodeInvalidArgument:       "invalid argument",
	ErrCodeOutOfMemory:           "out of memory",
	ErrCodeDuplicateRegistration: "duplicate registration",
	ErrCodeNotRegistered:         "not registered",
	ErrCodeOSResource:            "os resource failure",
	ErrCodePortClosed:            "port closed",
}

// String returns the short name of the code.
func (c ErrorCode) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return fmt.Sprintf("code(%d)", int(c))
}

// Sentinels for errors.Is. Any *Error with the same Code matches.
var (
	ErrInvalidArgument       = NewError(ErrCodeInvalidArgument, "invalid argument")
	ErrOutOfMemory           = NewError(ErrCodeOutOfMemory, "out of memory")
	ErrDuplicateRegistration = NewError(ErrCodeDuplicateRegistration, "socket already registered")
	ErrNotRegistered         = NewError(ErrCodeNotRegistered, "socket not registered")
	ErrOSResource            = NewError(ErrCodeOSResource, "os resource failure")
	ErrPortClosed            = NewError(ErrCodePortClosed, "completion port closed")
)

// Error represents a structured error with code and context.
type Error struct {
	Code    ErrorCode
	Message string
	Context map[string]any
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if len(e.Context) != 0 {
		msg = fmt.Sprintf("%s (context: %+v)", msg, e.Context)
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap exposes the underlying cause, typically an OS error.
func (e *Error) Unwrap() error { return e.Cause }

// Is matches any *Error carrying the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewError creates a new structured error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a structured error around an underlying cause.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// CodeOf extracts the ErrorCode of err. Nil maps to ErrCodeOK and errors that
// are not *Error (raw OS errors) map to ErrCodeOSResource.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return ErrCodeOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrCodeOSResource
}
