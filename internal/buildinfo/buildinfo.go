// Package buildinfo holds release metadata stamped at link time:
//
//	go build -ldflags "-X github.com/aidanlsb/sitedates/internal/buildinfo.Version=v0.3.0"
package buildinfo

// They default to empty for local/dev builds.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)

// Stamped reports whether any release metadata was injected.
func Stamped() bool {
	return Version != "" || Commit != "" || Date != ""
}
