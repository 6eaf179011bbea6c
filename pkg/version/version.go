// Package version provides build and version information for launchindex.
package version

import (
	"fmt"
	"runtime"
)

// Version is the current version of launchindex.
// Set via ldflags at build time, or defaults to dev.
// Makefile sets: -X github.com/Aman-CERP/launchindex/pkg/version.Version=$(VERSION)
var Version = "dev"

// Build information set via ldflags at build time.
var (
	// Commit is the git commit hash.
	Commit = "unknown"

	// Date is the build date in RFC3339 format.
	Date = "unknown"

	// GoVersion is the Go version used to build the binary (set at runtime).
	GoVersion = runtime.Version()
)

// BuildInfo is structured version information for JSON output.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Info returns the current build information.
func Info() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: GoVersion,
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a human-readable version string.
func (b BuildInfo) String() string {
	return fmt.Sprintf("launchindex %s (%s, built %s, %s, %s)",
		b.Version, b.Commit, b.Date, b.GoVersion, b.Platform)
}
