package apperrors

import (
	"errors"
	"fmt"
)

// Machine-readable error codes. Clients branch on these, e.g. to render
// "already processed" instead of "missing", so core operations must never
// collapse them into a generic failure.
const (
	CodeNotFound         = "NOT_FOUND"
	CodeAlreadyProcessed = "ALREADY_PROCESSED"
	CodeInvalidDecision  = "INVALID_DECISION"
	CodeInvalidArgument  = "INVALID_ARGUMENT"
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeForbidden        = "FORBIDDEN"
)

type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NotFound(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

// AlreadyProcessed signals a conflicting duplicate or concurrent action on an
// entity that has already left its initial state.
func AlreadyProcessed(format string, args ...any) *Error {
	return &Error{Code: CodeAlreadyProcessed, Message: fmt.Sprintf(format, args...)}
}

func InvalidDecision(format string, args ...any) *Error {
	return &Error{Code: CodeInvalidDecision, Message: fmt.Sprintf(format, args...)}
}

func InvalidArgument(format string, args ...any) *Error {
	return &Error{Code: CodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

func Unauthorized(format string, args ...any) *Error {
	return &Error{Code: CodeUnauthorized, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...any) *Error {
	return &Error{Code: CodeForbidden, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the code from an error chain, or "" for plain errors.
func CodeOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

func HasCode(err error, code string) bool {
	return CodeOf(err) == code
}
