package isodate

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func TestParseBareDates(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2021-01-01", time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC)},
		{"2020-02-29", time.Date(2020, time.February, 29, 0, 0, 0, 0, time.UTC)},
		{"2000-02-29", time.Date(2000, time.February, 29, 0, 0, 0, 0, time.UTC)},
		{"2021-12-31", time.Date(2021, time.December, 31, 0, 0, 0, 0, time.UTC)},
		{"20210415", time.Date(2021, time.April, 15, 0, 0, 0, 0, time.UTC)},
		{"2021-0415", time.Date(2021, time.April, 15, 0, 0, 0, 0, time.UTC)},
		{"+002021-06-01", time.Date(2021, time.June, 1, 0, 0, 0, 0, time.UTC)},
		{"-000044-03-15", time.Date(-44, time.March, 15, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tt.input, err)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
			if got.Location() != time.UTC {
				t.Fatalf("Parse(%q) location = %v, want UTC", tt.input, got.Location())
			}
			if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 || got.Nanosecond() != 0 {
				t.Fatalf("Parse(%q) has a time component: %v", tt.input, got)
			}
		})
	}
}

func TestParseEveryValidDayOfLeapAndCommonYears(t *testing.T) {
	for _, year := range []int{2020, 2021, 1900, 2000} {
		for month := time.January; month <= time.December; month++ {
			last := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
			for day := 1; day <= last; day++ {
				input := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
				if _, err := Parse(input); err != nil {
					t.Fatalf("Parse(%q) error: %v", input, err)
				}
			}
		}
	}
}

func TestParseDatetimes(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"2021-01-01T10:30:15Z", time.Date(2021, 1, 1, 10, 30, 15, 0, time.UTC)},
		{"2021-01-01t10:30:15", time.Date(2021, 1, 1, 10, 30, 15, 0, time.UTC)},
		{"2021-01-01 10:30", time.Date(2021, 1, 1, 10, 30, 0, 0, time.UTC)},
		{"2021-01-01T10", time.Date(2021, 1, 1, 10, 0, 0, 0, time.UTC)},
		{"2021-01-01T10Z", time.Date(2021, 1, 1, 10, 0, 0, 0, time.UTC)},
		{"20210101T103015", time.Date(2021, 1, 1, 10, 30, 15, 0, time.UTC)},
		{"2021-01-01T10:30:15.123Z", time.Date(2021, 1, 1, 10, 30, 15, 123*int(time.Millisecond), time.UTC)},
		{"2021-01-01T10:30:15,123Z", time.Date(2021, 1, 1, 10, 30, 15, 123*int(time.Millisecond), time.UTC)},
		{"2021-01-01T10:30:15.123456789Z", time.Date(2021, 1, 1, 10, 30, 15, 123*int(time.Millisecond), time.UTC)},
		{"2021-01-01T10:00:00+05:00", time.Date(2021, 1, 1, 5, 0, 0, 0, time.UTC)},
		{"2021-01-01T10:00:00-05:30", time.Date(2021, 1, 1, 15, 30, 0, 0, time.UTC)},
		{"2021-01-01T10:00:00+0530", time.Date(2021, 1, 1, 4, 30, 0, 0, time.UTC)},
		{"2021-01-01T10:00:00-05", time.Date(2021, 1, 1, 15, 0, 0, 0, time.UTC)},
		{"2021-01-01T23:00:00-02:00", time.Date(2021, 1, 2, 1, 0, 0, 0, time.UTC)},
		{"2021-01-01T00:15:00+01:00", time.Date(2020, 12, 31, 23, 15, 0, 0, time.UTC)},
		{"2021-01-01T24:00Z", time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		got, err := Parse(tt.input)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tt.input, err)
		}
		if !got.Equal(tt.want) {
			t.Fatalf("Parse(%q) = %s, want %s", tt.input, got.Format(TimestampLayout), tt.want.Format(TimestampLayout))
		}
	}
}

func TestParseFractionMilliseconds(t *testing.T) {
	tests := []struct {
		input string
		want  int
	}{
		{"2021-01-01T10:30:15.123Z", 123},
		{"2021-01-01T10:30:15.1Z", 1},
		{"2021-01-01T10:30:15.12Z", 12},
		{"2021-01-01T10:30:15.012Z", 12},
		{"2021-01-01T10:30:15.9999Z", 999},
		{"2021-01-01T10:30:15Z", 0},
	}

	for _, tt := range tests {
		parts, err := ParseParts(tt.input)
		if err != nil {
			t.Fatalf("ParseParts(%q) error: %v", tt.input, err)
		}
		if parts.Milliseconds != tt.want {
			t.Fatalf("ParseParts(%q).Milliseconds = %d, want %d", tt.input, parts.Milliseconds, tt.want)
		}
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		input string
		kind  error
	}{
		{"", ErrUnsupportedFormat},
		{"not-a-date", ErrUnsupportedFormat},
		{"2021-1-01", ErrUnsupportedFormat},
		{"21-01-01", ErrUnsupportedFormat},
		{"2021/01/01", ErrUnsupportedFormat},
		{"2021-01-01T", ErrUnsupportedFormat},
		{"2021-01-01T10:30:60Z", ErrUnsupportedFormat},
		{"2021-01-01T10:60Z", ErrUnsupportedFormat},
		{"2021-01-01T30:00Z", ErrUnsupportedFormat},
		{"2021-01-01T10:30:15.1234567890Z", ErrUnsupportedFormat},
		{"2021-01-01T10:30:15+5:30", ErrUnsupportedFormat},
		{"2021-01-01T10:30:15 UTC", ErrUnsupportedFormat},
		{"2021-01-01T10:30:15z", ErrUnsupportedFormat},
		{"2021-01-01T10:30:15Z[Europe/Paris]", ErrUnsupportedFormat},
		{" 2021-01-01", ErrUnsupportedFormat},
		{"2021-W01-1", ErrUnsupportedFormat},
		{"2021-01-01T10.5:30:15Z", ErrFractionalField},
		{"2021-01-01T10.5Z", ErrFractionalField},
		{"2021-01-01T10,5", ErrFractionalField},
		{"2021-01-01T10:30.5Z", ErrFractionalField},
		{"2021-13-01", ErrInvalidMonth},
		{"2021-00-10", ErrInvalidMonth},
		{"2021-19-01T10:00Z", ErrInvalidMonth},
		{"2021-02-29", ErrInvalidDay},
		{"1900-02-29", ErrInvalidDay},
		{"2021-04-31", ErrInvalidDay},
		{"2021-01-00", ErrInvalidDay},
		{"2021-01-32", ErrInvalidDay},
		{"2021-06-31T12:00:00Z", ErrInvalidDay},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) succeeded, want %v", tt.input, tt.kind)
			}
			if !errors.Is(err, tt.kind) {
				t.Fatalf("Parse(%q) error = %v, want kind %v", tt.input, err, tt.kind)
			}

			var perr *Error
			if !errors.As(err, &perr) {
				t.Fatalf("Parse(%q) error %T is not *Error", tt.input, err)
			}
			if perr.Source != tt.input {
				t.Fatalf("Source = %q, want %q", perr.Source, tt.input)
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	tests := map[string]string{
		"nope":                   "Unsupported date format: nope",
		"2021-01-01T10.5:30:15Z": "Unsupported date format (fractional hours or minutes): 2021-01-01T10.5:30:15Z",
		"2021-13-01":             "Unsupported date format (invalid month): 2021-13-01",
		"2021-02-29":             "Unsupported date format (invalid days for month): 2021-02-29",
	}
	for input, want := range tests {
		_, err := Parse(input)
		if err == nil || err.Error() != want {
			t.Fatalf("Parse(%q) error = %v, want %q", input, err, want)
		}
	}
}

func TestParsePartsAppliesOffsetToBothFields(t *testing.T) {
	parts, err := ParseParts("2021-01-01T10:00:00-05:30")
	if err != nil {
		t.Fatalf("ParseParts error: %v", err)
	}
	if parts.Hours != 15 || parts.Minutes != 30 {
		t.Fatalf("got %02d:%02d, want 15:30", parts.Hours, parts.Minutes)
	}

	parts, err = ParseParts("2021-01-01T10:00:00+05:30")
	if err != nil {
		t.Fatalf("ParseParts error: %v", err)
	}
	// Normalization leaves the negative minute for Time to roll over.
	if parts.Hours != 5 || parts.Minutes != -30 {
		t.Fatalf("got hours=%d minutes=%d, want 5 and -30", parts.Hours, parts.Minutes)
	}
	if got := parts.Time().Format(TimestampLayout); got != "2021-01-01T04:30:00.000Z" {
		t.Fatalf("Time() = %s", got)
	}
}

func TestParsePartsZuluKeepsLiteralFields(t *testing.T) {
	for _, input := range []string{"2021-03-04T07:08:09Z", "2021-03-04T07:08:09"} {
		parts, err := ParseParts(input)
		if err != nil {
			t.Fatalf("ParseParts(%q) error: %v", input, err)
		}
		if parts.Hours != 7 || parts.Minutes != 8 || parts.Seconds != 9 {
			t.Fatalf("ParseParts(%q) = %+v", input, parts)
		}
		if parts.Source != input {
			t.Fatalf("Source = %q, want %q", parts.Source, input)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	inputs := []string{
		"2021-01-01",
		"2020-02-29T23:59:59.999Z",
		"1999-12-31T00:00:00.001Z",
		"+012345-06-07T08:09:10.011Z",
		"2021-01-01T10:00:00-05:30",
		"2021-01-01T00:15:00+01:00",
	}

	for _, input := range inputs {
		parts, err := ParseParts(input)
		if err != nil {
			t.Fatalf("ParseParts(%q) error: %v", input, err)
		}

		instant := parts.Time()
		back := PartsOf(instant)
		if !back.Time().Equal(instant) {
			t.Fatalf("%q: PartsOf(t).Time() = %v, want %v", input, back.Time(), instant)
		}
		if again := PartsOf(back.Time()); again.Args() != back.Args() {
			t.Fatalf("%q: normalization not idempotent: %v vs %v", input, again.Args(), back.Args())
		}
		if parts.Hours >= 0 && parts.Hours < 24 && parts.Minutes >= 0 && parts.Minutes < 60 && back.Args() != parts.Args() {
			t.Fatalf("%q: round trip = %v, want %v", input, back.Args(), parts.Args())
		}
	}
}

func TestParseConcurrent(t *testing.T) {
	inputs := []string{"2021-01-01", "2020-02-29T12:00:00+02:00", "2021-02-29", "bad"}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				input := inputs[j%len(inputs)]
				_, err := Parse(input)
				if (err == nil) != (input == inputs[0] || input == inputs[1]) {
					t.Errorf("Parse(%q) err = %v", input, err)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected MustParse to panic")
		}
	}()
	MustParse("2021-02-30")
}

// Years are proleptic Gregorian across the whole six-digit range: 0-99 are
// not shifted into the 1900s, and there is no cap at the edge of the
// JavaScript Date range (+/-275760).
func TestParseYearRangeEdges(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
	}{
		{"0000-02-29", time.Date(0, time.February, 29, 0, 0, 0, 0, time.UTC)},
		{"0099-12-31", time.Date(99, time.December, 31, 0, 0, 0, 0, time.UTC)},
		{"0050-06-01T12:00Z", time.Date(50, time.June, 1, 12, 0, 0, 0, time.UTC)},
		{"+275760-09-14", time.Date(275760, time.September, 14, 0, 0, 0, 0, time.UTC)},
		{"+999999-12-31", time.Date(999999, time.December, 31, 0, 0, 0, 0, time.UTC)},
		{"-271822-01-01", time.Date(-271822, time.January, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := Parse(tt.input)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tt.input, err)
		}
		if !got.Equal(tt.want) {
			t.Fatalf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}

	// Year 0 is a leap year but 1900 is not, so the shift would matter.
	if _, err := Parse("1900-02-29"); !errors.Is(err, ErrInvalidDay) {
		t.Fatalf("Parse(1900-02-29) err = %v, want ErrInvalidDay", err)
	}
}
