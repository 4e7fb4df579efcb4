package errorx

import (
	"errors"
	"fmt"
)

type Code int

const (
	BadRequest     Code = 1001
	Unauthorized   Code = 1002
	Forbidden      Code = 1003
	NotFound       Code = 1004
	StoreFailure   Code = 1005
	EvidenceUpload Code = 1006
	Internal       Code = 1007
)

type Error struct {
	Code    Code
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.cause
}

func New(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap keeps the underlying error reachable through errors.Is/As while the
// caller-facing message stays clean.
func Wrap(cause error, code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: cause}
}

// CodeOf extracts the taxonomy code from err, or Internal for foreign errors.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return Internal
}
