// Package dates provides date helpers for CLI arguments and display.
//
// Front-matter date strings go through isodate; this package layers the CLI
// conveniences on top of it:
// - layout constants for printing
// - bare date detection and datetime-only parsing on top of isodate
// - relative keywords (today, yesterday, tomorrow) resolved to UTC days
package dates

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/aidanlsb/sitedates/internal/isodate"
)

// Layouts used when printing dates.
const (
	DateLayout            = "2006-01-02"
	DatetimeLayout        = "2006-01-02T15:04"
	DatetimeSecondsLayout = "2006-01-02T15:04:05"
)

// dateOnlyRegex matches every date-only shape isodate accepts.
var dateOnlyRegex = regexp.MustCompile(`^([+-]\d{6}|\d{4})-?\d{2}-?\d{2}$`)

// IsDateOnly reports whether s, ignoring surrounding space, is written as a
// bare date in any of the shapes isodate accepts (2021-01-01, 20210101,
// 2021-0101, +002021-01-01). It does not check the calendar.
func IsDateOnly(s string) bool {
	return dateOnlyRegex.MatchString(strings.TrimSpace(s))
}

// ErrNoTime is returned by ParseDatetime for a bare date.
var ErrNoTime = errors.New("datetime required")

// ParseDatetime parses a date-time accepted by isodate. Bare dates are
// rejected.
func ParseDatetime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("invalid datetime: empty")
	}
	if IsDateOnly(s) {
		return time.Time{}, fmt.Errorf("%w: %q has no time", ErrNoTime, s)
	}

	t, err := isodate.Parse(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid datetime: %w", err)
	}
	return t, nil
}

// ParseDateArg parses a CLI date argument which can be:
// - "today", "yesterday", "tomorrow" (relative dates)
// - anything isodate accepts (absolute date or datetime)
// - Empty string defaults to now
func ParseDateArg(arg string, now time.Time) (time.Time, error) {
	if arg == "" {
		return now, nil
	}

	if resolved, ok := ResolveRelativeDateKeyword(arg, now); ok {
		return resolved.Date, nil
	}

	dateArg := strings.TrimSpace(arg)
	parsed, err := isodate.Parse(dateArg)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w (use YYYY-MM-DD[THH:MM[:SS]] or today/yesterday/tomorrow)", err)
	}
	return parsed, nil
}
