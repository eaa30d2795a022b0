package isodate

import (
	"strconv"
	"time"
)

// Parts is a UTC-relative calendar instant. Hours and Minutes already have
// the source offset removed and may lie outside their usual ranges until the
// value is converted with Time.
type Parts struct {
	Year         int
	Month        int // 0-based
	Day          int // 1-based
	Hours        int
	Minutes      int
	Seconds      int
	Milliseconds int

	Source string
}

// Normalize converts matched substrings into Parts, removing the offset from
// the hour and minute fields. No range checks happen here.
func Normalize(m RawMatch, off Offset) (Parts, error) {
	fraction := m.Fraction
	if len(fraction) > 3 {
		fraction = fraction[:3]
	}

	raw := []string{m.Year, m.Month, m.Day, m.Hours, m.Minutes, m.Seconds, fraction}
	values := make([]int, len(raw))
	for i, s := range raw {
		n, err := strconv.ParseInt(s, 10, 0)
		if err != nil {
			return Parts{}, newError(ErrUnsupportedFormat, m.Source)
		}
		values[i] = int(n)
	}

	return Parts{
		Year:         values[0],
		Month:        values[1] - 1,
		Day:          values[2],
		Hours:        values[3] - off.Hours,
		Minutes:      values[4] - off.Minutes,
		Seconds:      values[5],
		Milliseconds: values[6],
		Source:       m.Source,
	}, nil
}

// Validate checks the month range and that Day exists in that month of
// Year. Day validity is decided by calendar rollover: a day past the end of
// the month lands in the following month.
func (p Parts) Validate() error {
	if p.Month < 0 || p.Month > 11 {
		return newError(ErrInvalidMonth, p.Source)
	}

	month := time.Month(p.Month + 1)
	first := time.Date(p.Year, month, 1, 0, 0, 0, 0, time.UTC)
	target := time.Date(p.Year, month, p.Day, 0, 0, 0, 0, time.UTC)
	if p.Day < 1 || first.Month() != target.Month() {
		return newError(ErrInvalidDay, p.Source)
	}

	return nil
}

// Args returns year, month, day, hours, minutes, seconds and milliseconds in
// that order.
func (p Parts) Args() [7]int {
	return [7]int{p.Year, p.Month, p.Day, p.Hours, p.Minutes, p.Seconds, p.Milliseconds}
}

// Time converts p to an absolute instant in UTC. Out-of-range hours and
// minutes roll over into neighbouring days, months and years.
func (p Parts) Time() time.Time {
	return time.Date(
		p.Year,
		time.Month(p.Month+1),
		p.Day,
		p.Hours,
		p.Minutes,
		p.Seconds,
		p.Milliseconds*int(time.Millisecond),
		time.UTC,
	)
}

// PartsOf splits t, viewed in UTC, back into Parts. Sub-millisecond
// precision is dropped.
func PartsOf(t time.Time) Parts {
	t = t.UTC()
	return Parts{
		Year:         t.Year(),
		Month:        int(t.Month()) - 1,
		Day:          t.Day(),
		Hours:        t.Hour(),
		Minutes:      t.Minute(),
		Seconds:      t.Second(),
		Milliseconds: t.Nanosecond() / int(time.Millisecond),
		Source:       t.Format(TimestampLayout),
	}
}
