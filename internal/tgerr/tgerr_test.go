package tgerr

import (
	"errors"
	"testing"
)

func TestNewAndIs(t *testing.T) {
	err := New(BadFormat, "bad format string")
	if !Is(err, BadFormat) {
		t.Fatal("Is(BadFormat): expected true")
	}
	if Is(err, IoError) {
		t.Fatal("Is(IoError): expected false")
	}
}

func TestWrapPreservesKindAndCause(t *testing.T) {
	cause := errors.New("underlying failure")
	wrapped := Wrap(IoError, cause, "reading file")
	if !Is(wrapped, IoError) {
		t.Fatal("Is(IoError): expected true")
	}
	if !errors.Is(wrapped, cause) {
		t.Fatal("errors.Is did not find the wrapped cause")
	}
}

func TestWrapNilIsNil(t *testing.T) {
	if Wrap(IoError, nil, "x") != nil {
		t.Fatal("Wrap(nil) should return nil")
	}
}

func TestErrorMessage(t *testing.T) {
	err := New(BadArg, "negative value")
	want := "BadArg: negative value"
	if err.Error() != want {
		t.Fatalf("Error() = %q, want %q", err.Error(), want)
	}
}
