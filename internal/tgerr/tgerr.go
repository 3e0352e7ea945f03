// Package tgerr defines the error taxonomy used across timegrep (spec §7).
//
// Errors are distinguished by kind, not by Go type: every error is an
// *Error carrying a Kind, and call sites test the kind with Is (there are
// no per-kind sentinel values), while github.com/pkg/errors still gives
// every wrapped error a call-site trace.
package tgerr

import (
	"github.com/pkg/errors"
)

// Kind classifies a failure the way spec §7 names them.
type Kind int

const (
	// BadFormat: format string contains an unknown directive, %E/%O, or a trailing %.
	BadFormat Kind = iota
	// BadTimezone: a matched timezone token is not in the accepted shape.
	BadTimezone
	// BadArg: a datetime argument could not be parsed, or a numeric argument is negative/overflows.
	BadArg
	// RegexEngine: the regex library reported an unexpected failure.
	RegexEngine
	// OutOfMemory: an allocation failure.
	OutOfMemory
	// IoError: open/stat/mmap/read/write failure.
	IoError
)

func (k Kind) String() string {
	switch k {
	case BadFormat:
		return "BadFormat"
	case BadTimezone:
		return "BadTimezone"
	case BadArg:
		return "BadArg"
	case RegexEngine:
		return "RegexEngine"
	case OutOfMemory:
		return "OutOfMemory"
	case IoError:
		return "IoError"
	default:
		return "Unknown"
	}
}

// Error carries a Kind alongside the wrapped cause.
type Error struct {
	Kind Kind
	msg  string
	err  error
}

func (e *Error) Error() string {
	if e.err != nil {
		return e.Kind.String() + ": " + e.msg + ": " + e.err.Error()
	}
	return e.Kind.String() + ": " + e.msg
}

func (e *Error) Unwrap() error {
	return e.err
}

// New builds a Kind-tagged error with a message and no further cause.
func New(k Kind, msg string) error {
	return &Error{Kind: k, msg: msg}
}

// Wrap attaches a Kind to a lower-level error, preserving a stack trace via pkg/errors.
func Wrap(k Kind, err error, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: k, msg: msg, err: errors.WithStack(err)}
}

// Is reports whether err (or something it wraps) was produced with the given Kind.
func Is(err error, k Kind) bool {
	var e *Error
	for err != nil {
		if te, ok := err.(*Error); ok {
			e = te
			break
		}
		err = errors.Unwrap(err)
	}
	return e != nil && e.Kind == k
}
