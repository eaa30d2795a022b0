package isodate

import (
	"errors"
	"testing"
)

func TestMatchAppliesDefaults(t *testing.T) {
	m, err := Match("2021-04-05")
	if err != nil {
		t.Fatalf("Match error: %v", err)
	}
	want := RawMatch{
		Year:     "2021",
		Month:    "04",
		Day:      "05",
		Hours:    "0",
		Minutes:  "0",
		Seconds:  "0",
		Fraction: "0",
		Zone:     "Z",
		Source:   "2021-04-05",
	}
	if m != want {
		t.Fatalf("Match = %+v, want %+v", m, want)
	}
}

func TestMatchExtractsDatetimeFields(t *testing.T) {
	m, err := Match("+002021-04-05 06:07:08,123456-05:30")
	if err != nil {
		t.Fatalf("Match error: %v", err)
	}
	want := RawMatch{
		Year:     "+002021",
		Month:    "04",
		Day:      "05",
		Hours:    "06",
		Minutes:  "07",
		Seconds:  "08",
		Fraction: "123456",
		Zone:     "-05:30",
		Source:   "+002021-04-05 06:07:08,123456-05:30",
	}
	if m != want {
		t.Fatalf("Match = %+v, want %+v", m, want)
	}
}

func TestMatchHoursOnlyKeepsMinuteDefaults(t *testing.T) {
	m, err := Match("2021-04-05T06+01")
	if err != nil {
		t.Fatalf("Match error: %v", err)
	}
	if m.Hours != "06" || m.Minutes != "0" || m.Seconds != "0" || m.Zone != "+01" {
		t.Fatalf("Match = %+v", m)
	}
}

func TestMatchRejectsFractionalHoursAndMinutes(t *testing.T) {
	for _, input := range []string{"2021-04-05T06.5", "2021-04-05T06:07,25Z"} {
		_, err := Match(input)
		if !errors.Is(err, ErrFractionalField) {
			t.Fatalf("Match(%q) error = %v, want ErrFractionalField", input, err)
		}
	}
}

func TestResolveOffset(t *testing.T) {
	tests := []struct {
		designator string
		want       Offset
	}{
		{"Z", Offset{}},
		{"", Offset{}},
		{"+00:00", Offset{}},
		{"+05:30", Offset{Hours: 5, Minutes: 30}},
		{"-05:30", Offset{Hours: -5, Minutes: -30}},
		{"-0530", Offset{Hours: -5, Minutes: -30}},
		{"+0945", Offset{Hours: 9, Minutes: 45}},
		{"-08", Offset{Hours: -8}},
		{"-00:30", Offset{Hours: 0, Minutes: -30}},
		{"garbage", Offset{}},
	}

	for _, tt := range tests {
		if got := ResolveOffset(tt.designator); got != tt.want {
			t.Fatalf("ResolveOffset(%q) = %+v, want %+v", tt.designator, got, tt.want)
		}
	}
}

func TestNormalize(t *testing.T) {
	m := RawMatch{
		Year:     "2021",
		Month:    "01",
		Day:      "31",
		Hours:    "10",
		Minutes:  "00",
		Seconds:  "59",
		Fraction: "98765",
		Zone:     "-05:30",
		Source:   "src",
	}

	got, err := Normalize(m, Offset{Hours: -5, Minutes: -30})
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	want := Parts{Year: 2021, Month: 0, Day: 31, Hours: 15, Minutes: 30, Seconds: 59, Milliseconds: 987, Source: "src"}
	if got != want {
		t.Fatalf("Normalize = %+v, want %+v", got, want)
	}
}

func TestNormalizeDoesNotScaleShortFractions(t *testing.T) {
	m := defaultMatch("x")
	m.Year = "2021"
	m.Fraction = "05"

	got, err := Normalize(m, Offset{})
	if err != nil {
		t.Fatalf("Normalize error: %v", err)
	}
	if got.Milliseconds != 5 {
		t.Fatalf("Milliseconds = %d, want 5", got.Milliseconds)
	}
}

func TestNormalizeRejectsNonNumericFields(t *testing.T) {
	m := defaultMatch("bogus")
	m.Year = "twenty"

	_, err := Normalize(m, Offset{})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("Normalize error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestValidateUsesCalendarRollover(t *testing.T) {
	tests := []struct {
		parts Parts
		want  error
	}{
		{Parts{Year: 2024, Month: 1, Day: 29}, nil},
		{Parts{Year: 2023, Month: 1, Day: 29}, ErrInvalidDay},
		{Parts{Year: 2023, Month: 10, Day: 31}, ErrInvalidDay},
		{Parts{Year: 2023, Month: 11, Day: 31}, nil},
		{Parts{Year: 2023, Month: 12, Day: 1}, ErrInvalidMonth},
		{Parts{Year: 2023, Month: -1, Day: 1}, ErrInvalidMonth},
		{Parts{Year: 2023, Month: 0, Day: 0}, ErrInvalidDay},
		// Offset-shifted hours do not affect day validity.
		{Parts{Year: 2023, Month: 0, Day: 31, Hours: 26}, nil},
	}

	for _, tt := range tests {
		err := tt.parts.Validate()
		if tt.want == nil {
			if err != nil {
				t.Fatalf("Validate(%+v) error: %v", tt.parts, err)
			}
			continue
		}
		if !errors.Is(err, tt.want) {
			t.Fatalf("Validate(%+v) error = %v, want %v", tt.parts, err, tt.want)
		}
	}
}

func TestArgsOrder(t *testing.T) {
	p := Parts{Year: 1, Month: 2, Day: 3, Hours: 4, Minutes: 5, Seconds: 6, Milliseconds: 7}
	if got := p.Args(); got != [7]int{1, 2, 3, 4, 5, 6, 7} {
		t.Fatalf("Args = %v", got)
	}
}
