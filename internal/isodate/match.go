package isodate

import "regexp"

var (
	fullDateRegex = regexp.MustCompile(`^([+-]\d{6}|\d{4})-?([01]\d)-?([0-3]\d)$`)

	datetimeRegex = regexp.MustCompile(`^([+-]\d{6}|\d{4})-?([01]\d)-?([0-3]\d)` +
		`[Tt ]` +
		`([0-2]\d(?:[.,]\d+)?)` +
		`(?::?([0-5]\d(?:[.,]\d+)?)(?::?([0-5]\d))?(?:[.,](\d{1,9}))?)?` +
		`(Z|[+-][0-2]\d(?::?[0-5]\d)?)?$`)

	fractionalRegex = regexp.MustCompile(`^\d+[.,]\d+$`)
)

// RawMatch holds the substrings captured from a date string. Fields that the
// input omitted carry their defaults.
type RawMatch struct {
	Year     string
	Month    string // 1-based, as written
	Day      string
	Hours    string
	Minutes  string
	Seconds  string
	Fraction string // sub-second digits without the separator
	Zone     string // "Z" or a signed numeric offset

	// Source is the complete input the fields were taken from.
	Source string
}

func defaultMatch(source string) RawMatch {
	return RawMatch{
		Source:   source,
		Month:    "01",
		Day:      "01",
		Hours:    "0",
		Minutes:  "0",
		Seconds:  "0",
		Fraction: "0",
		Zone:     "Z",
	}
}

// Match classifies input as a bare date or a date-time and extracts its
// fields. Matching is purely lexical: impossible calendar values such as
// month 19 are left for Validate.
func Match(input string) (RawMatch, error) {
	m := defaultMatch(input)

	groups := fullDateRegex.FindStringSubmatchIndex(input)
	if groups == nil {
		groups = datetimeRegex.FindStringSubmatchIndex(input)
	}
	if groups == nil {
		return RawMatch{}, newError(ErrUnsupportedFormat, input)
	}

	fields := []*string{&m.Year, &m.Month, &m.Day, &m.Hours, &m.Minutes, &m.Seconds, &m.Fraction, &m.Zone}
	for i, field := range fields {
		start, end := submatch(groups, i+1)
		if start < 0 {
			continue
		}
		*field = input[start:end]
	}

	// Only the hour and minute groups admit a fraction in the pattern.
	if groupPresent(groups, 4) && fractionalRegex.MatchString(m.Hours) ||
		groupPresent(groups, 5) && fractionalRegex.MatchString(m.Minutes) {
		return RawMatch{}, newError(ErrFractionalField, input)
	}

	return m, nil
}

func submatch(groups []int, n int) (int, int) {
	if 2*n+1 >= len(groups) {
		return -1, -1
	}
	return groups[2*n], groups[2*n+1]
}

func groupPresent(groups []int, n int) bool {
	start, _ := submatch(groups, n)
	return start >= 0
}
