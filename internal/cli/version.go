package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/sitedates/internal/buildinfo"
)

const defaultModulePath = "github.com/aidanlsb/sitedates"

type versionInfo struct {
	Version    string `json:"version"`
	ModulePath string `json:"module_path"`
	Commit     string `json:"commit,omitempty"`
	CommitTime string `json:"commit_time,omitempty"`
	Modified   bool   `json:"modified"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

var readBuildInfo = debug.ReadBuildInfo

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show sdate version and build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := currentVersionInfo()

		if isJSONOutput() {
			outputSuccess(info, nil)
			return nil
		}

		fmt.Printf("sdate %s (%s, %s)\n", info.Version, info.GoVersion, info.Platform)
		if info.Commit != "" {
			suffix := ""
			if info.Modified {
				suffix = " (modified)"
			}
			fmt.Printf("commit: %s%s %s\n", info.Commit, suffix, info.CommitTime)
		}
		return nil
	},
}

func currentVersionInfo() versionInfo {
	info := versionInfo{
		Version:    "devel",
		ModulePath: defaultModulePath,
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
	}

	if bi, ok := readBuildInfo(); ok && bi != nil {
		if bi.Main.Path != "" {
			info.ModulePath = bi.Main.Path
		}
		info.Version = normalizeVersion(bi.Main.Version)
		if bi.GoVersion != "" {
			info.GoVersion = bi.GoVersion
		}

		settings := make(map[string]string, len(bi.Settings))
		for _, s := range bi.Settings {
			settings[s.Key] = s.Value
		}
		if settings["GOOS"] != "" && settings["GOARCH"] != "" {
			info.Platform = settings["GOOS"] + "/" + settings["GOARCH"]
		}
		info.Commit = settings["vcs.revision"]
		info.CommitTime = settings["vcs.time"]
		info.Modified = strings.EqualFold(settings["vcs.modified"], "true")
	}

	// Release binaries carry ldflags metadata, which fills what the module
	// build info leaves empty.
	if buildinfo.Stamped() {
		if info.Version == "devel" && buildinfo.Version != "" {
			info.Version = normalizeVersion(buildinfo.Version)
		}
		if info.Commit == "" {
			info.Commit = buildinfo.Commit
		}
		if info.CommitTime == "" {
			info.CommitTime = buildinfo.Date
		}
	}
	return info
}

func normalizeVersion(version string) string {
	if version == "" || version == "(devel)" {
		return "devel"
	}
	return version
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
