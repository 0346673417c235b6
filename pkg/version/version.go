// Package version exposes build metadata injected at link time.
package version

// Build metadata, overridden via -ldflags at release build time.
//
//nolint:gochecknoglobals // Set once at link time, read-only afterwards.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)
