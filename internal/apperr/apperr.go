// Package apperr defines the error taxonomy shared by the service layers.
// Every failure that crosses a package boundary is one of three kinds:
// validation (bad client input), not_found (missing resource), or internal
// (everything else). The handler layer maps kinds to HTTP status codes in
// exactly one place.
package apperr

import (
	"errors"
	"fmt"
)

type Kind string

const (
	KindValidation Kind = "validation"
	KindNotFound   Kind = "not_found"
	KindInternal   Kind = "internal"
)

type Error struct {
	Kind    Kind
	Message string
	// Fields carries the per-field messages of a failed validation.
	// Nil for other kinds.
	Fields map[string]string
	Err    error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// ValidationFields wraps a validator's field→message mapping. The mapping
// must be non-empty.
func ValidationFields(fields map[string]string) *Error {
	return &Error{Kind: KindValidation, Message: "validation failed", Fields: fields}
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func Internal(message string, err error) *Error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

// KindOf reports the kind of err, or KindInternal for errors that did not
// originate from this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
