// Package buildinfo carries release metadata stamped at link time.
package buildinfo

// Set with -ldflags "-X github.com/devnesthq/devnest/internal/buildinfo.Version=..."
// for release binaries. Empty for local builds.
var (
	Version = ""
	Commit  = ""
	Date    = ""
)
