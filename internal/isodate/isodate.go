// Package isodate parses the restricted ISO-8601 / RFC 9557 date grammar used
// in document front matter.
//
// Two shapes are accepted:
//
//	YYYY-MM-DD                                  bare date
//	YYYY-MM-DDTHH[:MM[:SS[.fff]]][Z|±HH[:MM]]   date-time
//
// Separators inside the date and time are optional, the year may be written
// in the six-digit signed extended form (+002021), and the date/time
// separator may be "T", "t" or a space. Fractional values are only allowed on
// seconds. Times without an offset are read as UTC.
//
// Parsing is a pure function of its input; every function here is safe for
// concurrent use.
package isodate

import "time"

// TimestampLayout renders a parsed instant with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// ParseParts matches, normalizes and validates input, returning the
// UTC-relative calendar fields.
func ParseParts(input string) (Parts, error) {
	m, err := Match(input)
	if err != nil {
		return Parts{}, err
	}

	parts, err := Normalize(m, ResolveOffset(m.Zone))
	if err != nil {
		return Parts{}, err
	}

	if err := parts.Validate(); err != nil {
		return Parts{}, err
	}
	return parts, nil
}

// Parse converts input into an absolute UTC instant.
//
// The returned error is always an *Error whose Kind is one of
// ErrUnsupportedFormat, ErrFractionalField, ErrInvalidMonth or ErrInvalidDay.
func Parse(input string) (time.Time, error) {
	parts, err := ParseParts(input)
	if err != nil {
		return time.Time{}, err
	}
	return parts.Time(), nil
}

// MustParse is like Parse but panics on error.
func MustParse(input string) time.Time {
	t, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return t
}
