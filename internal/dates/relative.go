package dates

import (
	"strings"
	"time"
)

// RelativeDate is a resolved relative date keyword.
type RelativeDate struct {
	Keyword string
	Date    time.Time // start of the resolved UTC day
}

// relativeDayOffsets maps each keyword to its distance in days from today.
var relativeDayOffsets = map[string]int{
	"today":     0,
	"tomorrow":  1,
	"yesterday": -1,
}

// NormalizeRelativeDateKeyword normalizes and validates a relative date keyword.
// Returns the canonical keyword and true when valid.
func NormalizeRelativeDateKeyword(value string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if _, ok := relativeDayOffsets[normalized]; !ok {
		return "", false
	}
	return normalized, true
}

// IsRelativeDateKeyword reports whether value is a supported relative date keyword.
func IsRelativeDateKeyword(value string) bool {
	_, ok := NormalizeRelativeDateKeyword(value)
	return ok
}

// ResolveRelativeDateKeyword resolves a relative date keyword against now.
// Days are UTC days, the same boundaries bare dates use.
func ResolveRelativeDateKeyword(value string, now time.Time) (RelativeDate, bool) {
	keyword, ok := NormalizeRelativeDateKeyword(value)
	if !ok {
		return RelativeDate{}, false
	}

	return RelativeDate{
		Keyword: keyword,
		Date:    startOfDay(now.UTC()).AddDate(0, 0, relativeDayOffsets[keyword]),
	}, true
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
