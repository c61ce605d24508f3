// Package buildmeta holds version information stamped in at link time:
//
//	go build -ldflags="-X github.com/gitops-playground/playctl/internal/buildmeta.Version=v0.3.0"
//
//nolint:gochecknoglobals
package buildmeta

var (
	// Version is the release tag.
	Version = "dev"
	// Commit is the Git SHA.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)
