package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an operation failure. Every error crossing a service
// boundary carries exactly one Kind; raw driver errors never leak out.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindConflict
	KindInvalidState
	KindForbidden
	KindStoreFailure
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInvalidState:
		return "invalid_state"
	case KindForbidden:
		return "forbidden"
	case KindStoreFailure:
		return "store_failure"
	default:
		return "unknown"
	}
}

type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, err error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...), Err: err}
}

func NotFound(format string, args ...interface{}) *Error {
	return New(KindNotFound, nil, format, args...)
}

func Conflict(format string, args ...interface{}) *Error {
	return New(KindConflict, nil, format, args...)
}

func InvalidState(format string, args ...interface{}) *Error {
	return New(KindInvalidState, nil, format, args...)
}

func Forbidden(format string, args ...interface{}) *Error {
	return New(KindForbidden, nil, format, args...)
}

func StoreFailure(err error, format string, args ...interface{}) *Error {
	return New(KindStoreFailure, err, format, args...)
}

// KindOf returns the Kind of err, or KindUnknown for foreign errors.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func IsNotFound(err error) bool     { return KindOf(err) == KindNotFound }
func IsConflict(err error) bool     { return KindOf(err) == KindConflict }
func IsInvalidState(err error) bool { return KindOf(err) == KindInvalidState }
func IsForbidden(err error) bool    { return KindOf(err) == KindForbidden }
func IsStoreFailure(err error) bool { return KindOf(err) == KindStoreFailure }
