// Package version reports the build version set by the linker.
package version

import "fmt"

// Set with -ldflags "-X github.com/agrisync/agrisync/cmd/runtime/version.gitCommit=...".
var (
	version   = "v0.1.0"
	gitCommit = "unknown"
	buildDate = "unknown"
)

// Get returns the version string of the running binary.
func Get() string {
	return fmt.Sprintf("%s-%s (built %s)", version, gitCommit, buildDate)
}
