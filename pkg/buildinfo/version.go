// Package buildinfo holds version information stamped in at build time:
//
//	go build -ldflags "-X github.com/gaste/heuristic-ccp/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/gaste/heuristic-ccp/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/gaste/heuristic-ccp/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" ./cmd/ccp
package buildinfo

import "fmt"

// Set via ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the build information, one field per line.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (commit %s, built %s)\n", Version, Commit, Date)
}
