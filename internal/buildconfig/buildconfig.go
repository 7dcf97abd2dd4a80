package buildconfig

import "fmt"

// Set at build time:
//
//	go build -ldflags "-X github.com/Harshitk-cp/bayes/internal/buildconfig.version=v0.3.0"
var (
	version = "dev"
	commit  = "unknown"
)

func Version() string { return version }

func Commit() string { return commit }

// VersionInfo is reported by /metrics.
func VersionInfo() map[string]string {
	return map[string]string{
		"version": version,
		"commit":  commit,
	}
}

// String is printed by the -version flag of the binaries.
func String() string {
	return fmt.Sprintf("%s (%s)", version, commit)
}
