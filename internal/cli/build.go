package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/sitedates/internal/config"
	"github.com/aidanlsb/sitedates/internal/index"
	"github.com/aidanlsb/sitedates/internal/site"
	"github.com/aidanlsb/sitedates/internal/ui"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Copy passthrough files and rebuild the document index",
	Long: `Copies every passthrough entry from sdate.toml into the output directory
and rebuilds the document index at .sdate/index.db.

Documents whose date fails to parse are still indexed, without a date, and
reported as warnings. Use 'sdate check' to fail on them instead.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sitePath := getSitePath()
		start := time.Now()

		db, rebuilt, err := index.OpenWithRebuild(filepath.Join(sitePath, config.StateDir))
		if err != nil {
			return handleError(ErrDatabaseError, err, "Delete .sdate/ and run 'sdate build' again")
		}
		defer db.Close()

		var spinner *ui.Spinner
		if !isJSONOutput() {
			spinner = ui.NewSpinner(os.Stdout, "Building "+sitePath)
			spinner.Start()
		}

		b := &site.Builder{SiteDir: sitePath, Config: getConfig(), Log: newLogger()}
		result, err := b.Build(commandContext(cmd), db)
		if spinner != nil {
			spinner.Stop()
		}
		if err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		warnings := buildWarnings(result, rebuilt)
		elapsed := time.Since(start).Milliseconds()

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"documents": result.Documents,
				"dated":     result.Dated,
				"copied":    result.Copied,
				"output":    getConfig().OutputDir(sitePath),
			}, &Meta{Count: result.Documents, QueryTimeMs: elapsed}, warnings...)
			return nil
		}

		for _, w := range warnings {
			if w.Path != "" {
				fmt.Println(ui.Warningf("%s: %s", w.Path, w.Message))
			} else {
				fmt.Println(ui.Warningf("%s", w.Message))
			}
		}
		fmt.Println(ui.Successf("Indexed %d documents (%d dated), copied %d files in %dms",
			result.Documents, result.Dated, result.Copied.Files, elapsed))
		return nil
	},
}

func buildWarnings(result site.BuildResult, rebuilt bool) []Warning {
	var warnings []Warning
	if rebuilt {
		warnings = append(warnings, Warning{Code: WarnIndexRebuilt, Message: "index schema changed; rebuilt from scratch"})
	}
	for _, missing := range result.Copied.Missing {
		warnings = append(warnings, Warning{Code: WarnPassthroughMissing, Message: "passthrough entry not found", Path: missing})
	}
	for _, doc := range result.Invalid {
		warnings = append(warnings, Warning{Code: WarnInvalidDate, Message: doc.DateErr.Error(), Path: doc.RelativePath})
	}
	for _, doc := range result.Failed {
		warnings = append(warnings, Warning{Code: WarnDocumentSkipped, Message: doc.Err.Error(), Path: doc.RelativePath})
	}
	return warnings
}

func init() {
	rootCmd.AddCommand(buildCmd)
}
