package services

import (
	"errors"
	"fmt"
)

// Kind classifies service failures; controllers map each kind to a status code.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindConflict
	KindAuth
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindConflict:
		return "conflict"
	case KindAuth:
		return "auth"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

// Error is a classified service error. Two Errors match under errors.Is when
// kind and message agree, so callers can compare against the sentinels below.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

var (
	ErrEmailTaken         = &Error{Kind: KindConflict, Message: "Email address is already registered"}
	ErrActivityExists     = &Error{Kind: KindConflict, Message: "Activity already exists for this user"}
	ErrInvalidCredentials = &Error{Kind: KindAuth, Message: "Invalid email or password"}
	ErrUserNotFound       = &Error{Kind: KindNotFound, Message: "User not found"}
	ErrActivityNotFound   = &Error{Kind: KindNotFound, Message: "Activity not found"}
)

// Validation wraps a malformed-input failure.
func Validation(message string, err error) *Error {
	return &Error{Kind: KindValidation, Message: message, Err: err}
}

// KindOf returns the kind of err, or KindInternal for unclassified errors.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}

// with returns a copy of e carrying err as detail; it still matches e under errors.Is.
func (e *Error) with(err error) *Error {
	return &Error{Kind: e.Kind, Message: e.Message, Err: err}
}
