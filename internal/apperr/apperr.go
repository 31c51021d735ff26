// Package apperr defines the error kinds the services return and the HTTP
// layer turns into flash messages.
package apperr

import (
	"errors"
)

var (
	Unauthenticated    = errors.New("unauthenticated")
	Forbidden          = errors.New("forbidden")
	NotFound           = errors.New("not found")
	Validation         = errors.New("validation error")
	Conflict           = errors.New("conflict")
	InvalidCredentials = errors.New("invalid credentials")
)

// Error is a kinded error with a message fit for the user.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.Error()
}

// Is matches the kind, so errors.Is(err, apperr.Forbidden) works.
func (e *Error) Is(target error) bool {
	return e.Kind == target
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind error, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NewValidation(message string) *Error {
	return New(Validation, message)
}

func NewNotFound(message string) *Error {
	return New(NotFound, message)
}

func NewForbidden(message string) *Error {
	return New(Forbidden, message)
}

func NewConflict(message string) *Error {
	return New(Conflict, message)
}

// Message returns the user-facing text of err, or fallback when err carries
// none.
func Message(err error, fallback string) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}

// Kind returns the kind of err, or nil for errors that are not kinded.
func Kind(err error) error {
	for _, k := range []error{Unauthenticated, Forbidden, NotFound, Validation, Conflict, InvalidCredentials} {
		if errors.Is(err, k) {
			return k
		}
	}
	return nil
}
