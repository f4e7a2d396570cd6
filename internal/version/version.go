// Package version holds build information set via -ldflags.
package version

// Version is the release version, overridden at build time:
//
//	go build -ldflags "-X github.com/griffithind/runcompose/internal/version.Version=v1.2.3"
var Version = "dev"

// Commit is the git commit the binary was built from.
var Commit = "none"
