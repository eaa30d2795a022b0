package isodate

import (
	"regexp"
	"strconv"
)

var timezoneRegex = regexp.MustCompile(`^([+-]\d{2})(?::?(\d{2}))?$`)

// Offset is a fixed displacement from UTC. Both fields carry the sign of the
// designator, so "-05:30" is {Hours: -5, Minutes: -30}.
type Offset struct {
	Hours   int
	Minutes int
}

// ResolveOffset parses a timezone designator. "Z", the empty string, and
// anything that is not a ±HH[:MM] offset resolve to UTC.
func ResolveOffset(designator string) Offset {
	groups := timezoneRegex.FindStringSubmatch(designator)
	if groups == nil {
		return Offset{}
	}

	hours, _ := strconv.Atoi(groups[1])
	minutes := 0
	if groups[2] != "" {
		minutes, _ = strconv.Atoi(groups[2])
	}
	if groups[1][0] == '-' {
		minutes = -minutes
	}

	return Offset{Hours: hours, Minutes: minutes}
}
