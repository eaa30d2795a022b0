package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/sitedates/internal/config"
	"github.com/aidanlsb/sitedates/internal/dates"
	"github.com/aidanlsb/sitedates/internal/index"
	"github.com/aidanlsb/sitedates/internal/ui"
)

var (
	docsSince string
	docsUntil string
)

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "List indexed documents in date order",
	Long: `Lists documents from the index built by 'sdate build', oldest first.
Undated documents are listed last, and only when no range is given.

--since and --until accept anything 'sdate parse' does. Days are UTC days,
for bare dates and for today/yesterday/tomorrow alike. A bare date or
keyword for --until includes the whole day.`,
	Example: `  sdate docs
  sdate docs --since 2021-01-01 --until 2021-06-30
  sdate docs --since yesterday --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := parseRange(docsSince, docsUntil, time.Now())
		if err != nil {
			return handleError(ErrInvalidInput, err, "Use YYYY-MM-DD, a full ISO 8601 date-time, or today/yesterday/tomorrow")
		}

		db, err := index.Open(filepath.Join(getSitePath(), config.StateDir))
		if err != nil {
			return handleError(ErrDatabaseError, err, "Run 'sdate build' first")
		}
		defer db.Close()

		docs, err := db.List(commandContext(cmd), r)
		if err != nil {
			return handleError(ErrDatabaseError, err, "Run 'sdate build' to rebuild the index")
		}

		if isJSONOutput() {
			if docs == nil {
				docs = []index.Document{}
			}
			outputSuccess(map[string]interface{}{"documents": docs}, &Meta{Count: len(docs)})
			return nil
		}

		if len(docs) == 0 {
			fmt.Println(ui.Hint("No documents. Run 'sdate build' to index the site."))
			return nil
		}

		rows := make([]ui.DocumentRow, 0, len(docs))
		for _, doc := range docs {
			row := ui.DocumentRow{Permalink: doc.Permalink, Title: doc.Title}
			if doc.HasDate {
				row.Date = doc.Date.Format(isoMillis)
			} else if doc.DateError != "" {
				row.Date = ui.SymbolError + " invalid"
			}
			rows = append(rows, row)
		}
		fmt.Print(ui.RenderDocuments(ui.NewDisplayContext(os.Stdout), rows))
		fmt.Println()
		return nil
	},
}

const isoMillis = "2006-01-02T15:04:05.000Z"

// parseRange resolves --since and --until. A date-only or keyword --until is
// widened to the last millisecond of that day.
func parseRange(since, until string, now time.Time) (index.Range, error) {
	var r index.Range
	if since != "" {
		t, err := dates.ParseDateArg(since, now)
		if err != nil {
			return r, fmt.Errorf("--since: %w", err)
		}
		r.Since = t
	}
	if until != "" {
		t, err := dates.ParseDateArg(until, now)
		if err != nil {
			return r, fmt.Errorf("--until: %w", err)
		}
		if dates.IsDateOnly(until) || dates.IsRelativeDateKeyword(until) {
			t = t.Add(24*time.Hour - time.Millisecond)
		}
		r.Until = t
	}
	if !r.Since.IsZero() && !r.Until.IsZero() && r.Until.Before(r.Since) {
		return r, fmt.Errorf("--until %s is before --since %s", until, since)
	}
	return r, nil
}

func init() {
	docsCmd.Flags().StringVar(&docsSince, "since", "", "Only documents dated at or after this date")
	docsCmd.Flags().StringVar(&docsUntil, "until", "", "Only documents dated at or before this date")
	rootCmd.AddCommand(docsCmd)
}
