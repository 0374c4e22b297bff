// Package apperr carries the machine-readable error taxonomy shared by the
// action processor, the room registry and the websocket protocol.
package apperr

import "errors"

// Code is a machine-readable error code sent to clients.
type Code string

const (
	// Validation errors.
	CodeOutOfBounds       Code = "out_of_bounds"
	CodeInsufficientFunds Code = "insufficient_funds"
	CodeInvalidTile       Code = "invalid_tile"
	CodeInvalidAction     Code = "invalid_action"
	CodeUnsupportedAction Code = "unsupported_action"

	// Session errors.
	CodeRoomNotFound  Code = "room_not_found"
	CodeRoomFull      Code = "room_full"
	CodeInvalidCode   Code = "invalid_code"
	CodeNotInRoom     Code = "not_in_room"
	CodeAlreadyInRoom Code = "already_in_room"

	// Transport errors.
	CodeInvalidMessage Code = "invalid_message"
	CodeInvalidRequest Code = "invalid_request"
	CodeRateLimited    Code = "rate_limited"

	// Internal errors.
	CodeInternal    Code = "internal_error"
	CodeServerError Code = "server_error"
)

// Error is the domain error type.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable reason
	Cause   error  // Wrapped underlying error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// New creates a domain error with a code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Wrap creates a domain error that wraps an underlying cause.
func Wrap(code Code, message string, cause error) *Error {
	return &Error{Code: code, Message: message, Cause: cause}
}

// CodeOf extracts the code from err, or CodeInternal when err carries none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// MessageOf returns the human-readable message of a domain error, or a
// generic message for anything else so internals do not leak to clients.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "internal error"
}
