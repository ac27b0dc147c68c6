// Package version holds build metadata injected at link time via
// -ldflags "-X github.com/jeanpaul/axon/pkg/version.Version=...".
package version

var (
	Version = "dev"
	Commit  = "unknown"
)
