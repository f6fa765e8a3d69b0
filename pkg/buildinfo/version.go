// Package buildinfo carries version metadata stamped at build time.
//
// Release builds override the defaults via ldflags:
//
//	go build -ldflags "-X github.com/figtools/figgen/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/figtools/figgen/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/figtools/figgen/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package buildinfo

import "fmt"

var (
	// Version is the semantic version, "dev" for local builds.
	Version = "dev"

	// Commit is the git commit SHA the binary was built from.
	Commit = "none"

	// Date is the UTC build timestamp.
	Date = "unknown"
)

// String returns the formatted build information.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the version template string for cobra.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
