// Package errors classifies failures with a Code while keeping the
// pkg/errors message and stack of the cause.
package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/pkg/errors"
)

// Code is a sentinel for errors.Is. A bare Code is itself an error.
type Code string

func (c Code) Error() string { return string(c) }

// Error pairs a Code with its cause.
type Error struct {
	Code Code
	Err  error
}

func coded(code Code, err error) error {
	return &Error{Code: code, Err: err}
}

func (e *Error) Error() string {
	switch {
	case e == nil:
		return "<nil>"
	case e.Err == nil:
		return string(e.Code)
	default:
		return string(e.Code) + ": " + e.Err.Error()
	}
}

// Format prints the cause's stack with %+v.
func (e *Error) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') && e.Err != nil {
		_, _ = fmt.Fprintf(s, "%s: %+v", e.Code, e.Err)
		return
	}
	_, _ = fmt.Fprint(s, e.Error())
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches the carried Code, so a wrapped failure still satisfies
// errors.Is(err, ErrAuth).
func (e *Error) Is(target error) bool {
	code, ok := target.(Code)
	return ok && e.Code == code
}

func New(code Code, message string) error {
	return coded(code, errors.New(message))
}

func Newf(code Code, format string, args ...any) error {
	return coded(code, errors.Errorf(format, args...))
}

// PureNew is an uncoded error with no stack.
func PureNew(message string) error {
	return stderrors.New(message)
}

// Wrap returns nil for a nil err.
func Wrap(code Code, err error, message string) error {
	if err == nil {
		return nil
	}
	return coded(code, errors.Wrap(err, message))
}

// Wrapf returns nil for a nil err.
func Wrapf(code Code, err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return coded(code, errors.Wrapf(err, format, args...))
}

// CodeOf returns the outermost Code in err's chain.
func CodeOf(err error) (Code, bool) {
	for ; err != nil; err = stderrors.Unwrap(err) {
		switch e := err.(type) {
		case *Error:
			return e.Code, true
		case Code:
			return e, true
		}
	}
	return "", false
}

func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first T in err's chain.
func As[T error](err error) (*T, bool) {
	var target T
	if !stderrors.As(err, &target) {
		return nil, false
	}
	return &target, true
}
