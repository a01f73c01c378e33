package filter

import (
	"errors"
)

// ErrFilter is the base of all errors returned by this package.
// Every error kind below matches it with errors.Is.
var ErrFilter = errors.New("filter error")

// List of the supported error kinds.
var (
	ErrNullNotAllowed     = newKind("null value not allowed")
	ErrInvalidBoolean     = newKind("invalid boolean value")
	ErrInvalidInteger     = newKind("invalid integer value")
	ErrInvalidFloat       = newKind("invalid float value")
	ErrInvalidWholeNumber = newKind("invalid whole number value")
	ErrInvalidOperator    = newKind("invalid operator")
)

// kindError is a specific filter error kind, distinguishable with errors.Is but always matching ErrFilter too.
type kindError struct {
	msg string
}

func newKind(msg string) error {
	return &kindError{msg: msg}
}

func (k *kindError) Error() string {
	return k.msg
}

// Is implements the interface used by errors.Is.
func (k *kindError) Is(target error) bool {
	return target == ErrFilter
}
