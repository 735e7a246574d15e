package version

import "fmt"

var (
	// Version is the four-part version of the build. It can be overridden via ldflags.
	Version = "0.0.0.0"
	// Revision is the git commit hash embedded at build time (or "none").
	Revision = "none"
	// DateTime is the build timestamp embedded at build time.
	DateTime = "unknown"
)

// Short returns only the version string.
func Short() string {
	return Version
}

// Full returns a human-readable version string with revision and build time.
func Full() string {
	return fmt.Sprintf("version: %s, revision: %s, built at: %s", Version, Revision, DateTime)
}
