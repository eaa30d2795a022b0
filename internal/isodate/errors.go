package isodate

import (
	"errors"
	"fmt"
)

// Sentinel kinds for errors.Is checks against a returned *Error.
var (
	ErrUnsupportedFormat = errors.New("unsupported date format")
	ErrFractionalField   = errors.New("fractional hours or minutes")
	ErrInvalidMonth      = errors.New("invalid month")
	ErrInvalidDay        = errors.New("invalid days for month")
)

// Error describes why a date string was rejected.
type Error struct {
	// Kind is one of the Err* sentinels above.
	Kind error

	// Source is the input string exactly as it was given.
	Source string
}

func (e *Error) Error() string {
	if e.Kind == ErrUnsupportedFormat || e.Kind == nil {
		return fmt.Sprintf("Unsupported date format: %s", e.Source)
	}
	return fmt.Sprintf("Unsupported date format (%s): %s", e.Kind, e.Source)
}

// Unwrap returns the error kind so errors.Is works on sentinels.
func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, source string) *Error {
	return &Error{Kind: kind, Source: source}
}
