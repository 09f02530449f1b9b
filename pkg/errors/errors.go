// Package errors defines the coded errors surfaced by ovhctl.
//
// Every failure reported to the user carries a stable code identifying the
// step that failed: configuration loading, the consumer-key handshake, or a
// remote API call. Remote authentication failures (including signature
// mismatches) cannot be detected locally and are surfaced verbatim with the
// remote status and body.
package errors

import "fmt"

// Code identifies the failure category of an Error.
type Code string

const (
	// CodeConfiguration reports a missing or incomplete credential file.
	CodeConfiguration Code = "CONFIGURATION_ERROR"

	// CodeAuthHandshake reports a failed consumer-key request.
	CodeAuthHandshake Code = "AUTH_HANDSHAKE_ERROR"

	// CodeAPI reports a failed call against the OVHcloud API, including
	// remote signature rejections.
	CodeAPI Code = "API_ERROR"
)

// Error is a coded error optionally carrying the remote HTTP status and
// response body.
type Error struct {
	Code    Code
	Message string

	// Status and Body are set for remote failures only.
	Status int
	Body   string

	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Status != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.Status)
	}
	if e.Body != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Body)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the wrapped error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a coded error with the given message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap annotates err with a code and message. It returns nil when err is nil.
func Wrap(code Code, err error, format string, args ...any) *Error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

// Remote creates a coded error for a non-success remote response. The body is
// kept verbatim so the user sees exactly what the API reported.
func Remote(code Code, status int, body, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Status: status, Body: body}
}
