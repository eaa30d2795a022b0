// Package cli implements the command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aidanlsb/sitedates/internal/config"
	"github.com/aidanlsb/sitedates/internal/logging"
	"github.com/aidanlsb/sitedates/internal/ui"
)

var (
	// Global flags
	sitePathFlag   string
	configPathFlag string
	verbose        bool

	// Resolved values
	resolvedSitePath string
	cfg              *config.Config
)

// errReported marks failures whose details were already written to stdout,
// so Execute only sets the exit status.
var errReported = errors.New("failure already reported")

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "sdate",
	Short: "sdate - ISO 8601 dates for markdown sites",
	Long: `sdate reads the date field from the front matter of every markdown
document in a site, normalizes it to a UTC instant, and keeps a small index
of documents ordered by date. It also copies static passthrough files into
the build directory.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip site resolution for commands that don't need it
		switch cmd.Name() {
		case "init", "completion", "help", "version":
			return nil
		}

		var err error
		resolvedSitePath, err = resolveSitePath()
		if err != nil {
			return handleError(ErrInvalidInput, err, "")
		}

		cfg, err = config.LoadWithFile(resolvedSitePath, configPathFlag)
		if err != nil {
			// parse and grammar work without a site; fall back to defaults.
			if cmd.Name() == "parse" || cmd.Name() == "grammar" {
				cfg = config.Default()
			} else {
				return handleError(ErrConfigInvalid, fmt.Errorf("failed to load config: %w", err), "Check sdate.toml and .env in the site root")
			}
		}
		ui.ConfigureTheme(cfg.UI.Accent)

		switch cmd.Name() {
		case "check", "build", "docs", "watch":
			if _, err := os.Stat(resolvedSitePath); os.IsNotExist(err) {
				return handleErrorMsg(ErrSiteNotFound, fmt.Sprintf("site not found: %s", resolvedSitePath), "Run 'sdate init' to create one")
			}
		}
		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintln(os.Stderr, ui.Error(err.Error()))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&sitePathFlag, "site", "s", "", "Site root directory (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&configPathFlag, "config", "", "Path to config file (default: <site>/sdate.toml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for scripts)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log progress details to stderr")
	rootCmd.SetGlobalNormalizationFunc(normalizeFlagName)
}

// normalizeFlagName lets --date_field and --date-field name the same flag.
func normalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
}

func resolveSitePath() (string, error) {
	path := strings.TrimSpace(sitePathFlag)
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to determine working directory: %w", err)
		}
		path = wd
	}
	return filepath.Abs(path)
}

// getSitePath returns the resolved site root.
func getSitePath() string {
	return resolvedSitePath
}

// getConfig returns the loaded config.
func getConfig() *config.Config {
	if cfg == nil {
		return config.Default()
	}
	return cfg
}

// newLogger returns the stderr logger. JSON mode keeps stderr quiet.
func newLogger() *logrus.Logger {
	if jsonOutput {
		return logging.Discard()
	}
	return logging.New(os.Stderr, verbose)
}

// commandContext returns cmd's context, or Background when the command is
// invoked without Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
