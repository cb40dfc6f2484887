// Package buildinfo carries version metadata stamped with -ldflags:
//
//	go build -ldflags "-X pixeng/internal/buildinfo.Version=v0.3.0"
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns a compact build identifier for titles and log lines.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	return "dev"
}

// String returns the full build description printed by -version.
func String() string {
	return fmt.Sprintf("pixeng %s (commit %s, built %s)", Version, Commit, Date)
}
