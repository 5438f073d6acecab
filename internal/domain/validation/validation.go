// Package validation holds the error type shared by domain input checks.
package validation

import (
	"fmt"

	"github.com/go-faster/errors"
)

// ErrInvalid is matched by every *Error.
var ErrInvalid = errors.New("validation failed")

// Error describes a rejected input field.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *Error) Is(target error) bool {
	return target == ErrInvalid
}

// Field returns an *Error for a single field.
func Field(name, reason string) error {
	return &Error{Field: name, Reason: reason}
}

// Message returns an *Error that is not bound to one field.
func Message(msg string) error {
	return &Error{Reason: msg}
}
