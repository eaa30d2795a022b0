package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/sitedates/internal/config"
	"github.com/aidanlsb/sitedates/internal/index"
	"github.com/aidanlsb/sitedates/internal/site"
	"github.com/aidanlsb/sitedates/internal/ui"
	"github.com/aidanlsb/sitedates/internal/watcher"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Build, then reindex documents as they change",
	Long: `Runs 'sdate build' once, then watches the input directory and updates
the index whenever a markdown file is written, created or removed. Stop with
Ctrl-C. Passthrough files are only copied by the initial build.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sitePath := getSitePath()
		siteCfg := getConfig()
		log := newLogger()

		ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
		defer stop()

		db, _, err := index.OpenWithRebuild(filepath.Join(sitePath, config.StateDir))
		if err != nil {
			return handleError(ErrDatabaseError, err, "Delete .sdate/ and try again")
		}
		defer db.Close()

		b := &site.Builder{SiteDir: sitePath, Config: siteCfg, Log: log}
		result, err := b.Build(ctx, db)
		if err != nil {
			return handleError(ErrFileWriteError, err, "")
		}
		if !isJSONOutput() {
			fmt.Println(ui.Successf("Indexed %d documents (%d dated)", result.Documents, result.Dated))
			fmt.Println(ui.Hint("Watching " + siteCfg.InputDir(sitePath) + " (Ctrl-C to stop)"))
		}

		w, err := watcher.New(watcher.Config{
			Root:     siteCfg.InputDir(sitePath),
			Options:  site.WalkOptions{DateField: siteCfg.DateField, Ignore: siteCfg.IgnoredDirs()},
			Database: db,
			Log:      log,
			OnChange: func(ev watcher.Event) {
				if isJSONOutput() {
					outputJSONEvent(ev)
				}
			},
		})
		if err != nil {
			return handleError(ErrInternal, err, "")
		}

		if err := w.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return handleError(ErrInternal, err, "")
		}
		return nil
	},
}

// outputJSONEvent writes one envelope per change so scripts can stream them.
func outputJSONEvent(ev watcher.Event) {
	data := map[string]interface{}{"path": ev.Path, "removed": ev.Removed}
	if ev.Err != nil {
		outputError(ErrFileReadError, ev.Err.Error(), data, "")
		return
	}
	if !ev.Removed {
		data["document"] = ev.Doc.Record()
	}
	outputSuccess(data, nil)
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
