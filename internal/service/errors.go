package service

import (
	"errors"
	"fmt"

	"github.com/blog-api/internal/models"
)

// Kind classifies a service failure so the transport can pick a status
type Kind int

const (
	KindInternal Kind = iota
	KindInvalid
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
)

// Error is the typed failure returned by every service.
// Internal errors keep the cause in Err; it is logged, never shown to callers.
type Error struct {
	Kind    Kind
	Code    models.Code
	Message string
	Details interface{}
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind Kind, code models.Code, msg string) *Error {
	if msg == "" {
		msg = code.Message()
	}
	return &Error{Kind: kind, Code: code, Message: msg}
}

func invalid(code models.Code, msg string) *Error {
	return newError(KindInvalid, code, msg)
}

func notFound(code models.Code, msg string) *Error {
	return newError(KindNotFound, code, msg)
}

func conflict(code models.Code, msg string) *Error {
	return newError(KindConflict, code, msg)
}

func internal(err error, msg string) *Error {
	return &Error{Kind: KindInternal, Code: models.CodeServerException, Message: msg, Err: err}
}

// AsError extracts a *Error from err. Anything else is reported as internal.
func AsError(err error) *Error {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr
	}
	return internal(err, "unexpected error")
}

// IsKind reports whether err is a service error of the given kind
func IsKind(err error, kind Kind) bool {
	var svcErr *Error
	return errors.As(err, &svcErr) && svcErr.Kind == kind
}
