package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/sitedates/internal/config"
)

var (
	initOutput      string
	initDateField   string
	initPassthrough []string
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Initialize a site",
	Long: `Creates the sdate files for a site at path (default: --site or the
current directory).

Creates:
  - sdate.toml   (site configuration)
  - .sdate/      (index directory)
  - .gitignore   (ignores the index and build output)

With --output, --date-field or --passthrough, those values are written into
sdate.toml, replacing the commented template (or rewriting an existing file).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := sitePathFlag
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			path = "."
		}

		configPath := filepath.Join(path, config.FileName)
		_, statErr := os.Stat(configPath)
		createdConfig := os.IsNotExist(statErr)

		savedConfig := false
		if cmd.Flags().Changed("output") || cmd.Flags().Changed("date-field") || cmd.Flags().Changed("passthrough") {
			if err := writeInitConfig(cmd, configPath, createdConfig); err != nil {
				return err
			}
			savedConfig = true
		} else if _, err := config.CreateDefault(path); err != nil {
			return handleError(ErrFileWriteError, err, "")
		}
		if err := os.MkdirAll(filepath.Join(path, config.StateDir), 0755); err != nil {
			return handleError(ErrFileWriteError, fmt.Errorf("failed to create %s directory: %w", config.StateDir, err), "")
		}

		siteCfg, err := config.Load(path)
		if err != nil {
			return handleError(ErrConfigInvalid, err, "Fix sdate.toml and run 'sdate init' again")
		}
		gitignoreStatus, err := ensureGitignore(path, siteCfg.Output)
		if err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]interface{}{
				"path":           path,
				"config":         configPath,
				"created_config": createdConfig,
				"saved_config":   savedConfig,
				"gitignore":      gitignoreStatus,
			}, nil)
			return nil
		}

		fmt.Printf("Initializing site at: %s\n", path)
		switch {
		case createdConfig:
			fmt.Println("✓ Created sdate.toml (site configuration)")
		case savedConfig:
			fmt.Println("✓ Updated sdate.toml")
		default:
			fmt.Println("• sdate.toml already exists (kept)")
		}
		fmt.Println("✓ Ensured .sdate/ directory exists")

		switch gitignoreStatus {
		case "created":
			fmt.Println("✓ Created .gitignore")
		case "updated":
			fmt.Println("✓ Updated .gitignore (added sdate entries)")
		default:
			fmt.Println("• .gitignore already has sdate entries")
		}

		if createdConfig {
			fmt.Println("\nSite initialized! Run 'sdate build' after adding markdown files.")
		} else {
			fmt.Println("\nExisting site detected. Configuration preserved.")
		}
		return nil
	},
}

// writeInitConfig applies the init flags to the existing config (or the
// defaults) and saves it to configPath.
func writeInitConfig(cmd *cobra.Command, configPath string, create bool) error {
	siteCfg := config.Default()
	if !create {
		loaded, err := config.LoadFrom(configPath)
		if err != nil {
			return handleError(ErrConfigInvalid, err, "Fix sdate.toml and run 'sdate init' again")
		}
		siteCfg = loaded
	}

	if cmd.Flags().Changed("output") {
		siteCfg.Output = initOutput
	}
	if cmd.Flags().Changed("date-field") {
		siteCfg.DateField = initDateField
	}
	if cmd.Flags().Changed("passthrough") {
		siteCfg.Passthrough = initPassthrough
	}
	if err := siteCfg.Validate(); err != nil {
		return handleError(ErrConfigInvalid, err, "")
	}
	if err := config.SaveTo(configPath, siteCfg); err != nil {
		return handleError(ErrFileWriteError, err, "")
	}
	return nil
}

// ensureGitignore adds the index directory and build output to the site's
// .gitignore. Returns "created", "updated" or "unchanged".
func ensureGitignore(siteDir, output string) (string, error) {
	gitignorePath := filepath.Join(siteDir, ".gitignore")
	entries := []string{config.StateDir + "/", strings.TrimSuffix(filepath.ToSlash(output), "/") + "/"}

	existingContent := ""
	if data, err := os.ReadFile(gitignorePath); err == nil {
		existingContent = string(data)
	}

	var missingEntries []string
	for _, entry := range entries {
		if !strings.Contains(existingContent, entry) {
			missingEntries = append(missingEntries, entry)
		}
	}
	if len(missingEntries) == 0 {
		return "unchanged", nil
	}

	status := "created"
	var newContent string
	if existingContent == "" {
		newContent = "# sdate (auto-generated)\n# Derived files - markdown is the source of truth\n\n" +
			strings.Join(missingEntries, "\n") + "\n"
	} else {
		status = "updated"
		newContent = strings.TrimRight(existingContent, "\n") + "\n\n# sdate\n" +
			strings.Join(missingEntries, "\n") + "\n"
	}

	if err := os.WriteFile(gitignorePath, []byte(newContent), 0644); err != nil {
		return "", fmt.Errorf("failed to write .gitignore: %w", err)
	}
	return status, nil
}

func init() {
	initCmd.Flags().StringVar(&initOutput, "output", "", "Build directory to write into sdate.toml")
	initCmd.Flags().StringVar(&initDateField, "date-field", "", "Front-matter date key to write into sdate.toml")
	initCmd.Flags().StringSliceVar(&initPassthrough, "passthrough", nil, "Passthrough entries to write into sdate.toml")
	rootCmd.AddCommand(initCmd)
}
