package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/sitedates/internal/dates"
	"github.com/aidanlsb/sitedates/internal/isodate"
	"github.com/aidanlsb/sitedates/internal/ui"
)

var (
	parseParts    bool
	parseDatetime bool
)

// parsedDate is one parse result. Exactly one of UTC or Error is set.
type parsedDate struct {
	Input  string     `json:"input"`
	UTC    string     `json:"utc,omitempty"`
	UnixMs *int64     `json:"unix_ms,omitempty"`
	Parts  *dateParts `json:"parts,omitempty"`
	Code   string     `json:"code,omitempty"`
	Error  string     `json:"error,omitempty"`
}

type dateParts struct {
	Year         int `json:"year"`
	Month        int `json:"month"`
	Day          int `json:"day"`
	Hours        int `json:"hours"`
	Minutes      int `json:"minutes"`
	Seconds      int `json:"seconds"`
	Milliseconds int `json:"milliseconds"`
}

var parseCmd = &cobra.Command{
	Use:   "parse <date>...",
	Short: "Parse ISO 8601 dates into UTC instants",
	Long: `Parses each argument with the front-matter date grammar and prints the
normalized UTC instant. Relative keywords (today, yesterday, tomorrow) are
resolved to the start of the current UTC day, like bare dates.

With --parts, also prints the seven normalized fields: year, 0-based month,
day, hours, minutes, seconds and milliseconds. With --datetime, bare dates
are rejected and every non-keyword argument must carry a time.

Exits non-zero if any argument fails to parse.`,
	Example: `  sdate parse 2021-01-01T10:00:00-05:00
  sdate parse --parts 20210405T0607
  sdate parse today --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		results := parseAll(args, time.Now())

		failed := 0
		for _, r := range results {
			if r.Error != "" {
				failed++
			}
		}

		if isJSONOutput() {
			resp := Response{OK: failed == 0, Data: map[string]interface{}{"dates": results}, Meta: &Meta{Count: len(results)}}
			if failed > 0 {
				resp.Error = &ErrorInfo{Code: ErrInvalidDate, Message: fmt.Sprintf("%d of %d dates failed to parse", failed, len(results))}
			}
			outputJSON(resp)
		} else {
			for _, r := range results {
				printParsedDate(r)
			}
		}

		if failed > 0 {
			return errReported
		}
		return nil
	},
}

func parseAll(args []string, now time.Time) []parsedDate {
	results := make([]parsedDate, 0, len(args))
	for _, arg := range args {
		results = append(results, parseOne(arg, now))
	}
	return results
}

func parseOne(arg string, now time.Time) parsedDate {
	result := parsedDate{Input: arg}

	if rel, ok := dates.ResolveRelativeDateKeyword(arg, now); ok {
		return withInstant(result, isodate.PartsOf(rel.Date.UTC()))
	}

	if parseDatetime {
		if _, err := dates.ParseDatetime(arg); errors.Is(err, dates.ErrNoTime) {
			result.Code = ErrInvalidInput
			result.Error = err.Error()
			return result
		}
	}

	p, err := isodate.ParseParts(arg)
	if err != nil {
		result.Code = dateErrorCode(err)
		result.Error = err.Error()
		return result
	}
	return withInstant(result, p)
}

func withInstant(result parsedDate, p isodate.Parts) parsedDate {
	t := p.Time()
	ms := t.UnixMilli()
	result.UTC = t.Format(isodate.TimestampLayout)
	result.UnixMs = &ms
	if parseParts {
		result.Parts = &dateParts{
			Year:         p.Year,
			Month:        p.Month,
			Day:          p.Day,
			Hours:        p.Hours,
			Minutes:      p.Minutes,
			Seconds:      p.Seconds,
			Milliseconds: p.Milliseconds,
		}
	}
	return result
}

func printParsedDate(r parsedDate) {
	if r.Error != "" {
		fmt.Println(ui.Errorf("%s: %s", r.Input, r.Error))
		return
	}
	fmt.Printf("%s  %s\n", ui.Accent.Render(r.UTC), ui.Hint(r.Input))
	if p := r.Parts; p != nil {
		fmt.Printf("  year=%d month=%d day=%d hours=%d minutes=%d seconds=%d ms=%d\n",
			p.Year, p.Month, p.Day, p.Hours, p.Minutes, p.Seconds, p.Milliseconds)
	}
}

func init() {
	parseCmd.Flags().BoolVar(&parseParts, "parts", false, "Also print the normalized calendar fields")
	parseCmd.Flags().BoolVar(&parseDatetime, "datetime", false, "Reject bare dates; require a time component")
	rootCmd.AddCommand(parseCmd)
}
