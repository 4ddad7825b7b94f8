// Package version exposes the thermogen build version.
package version

// Version is the current thermogen version. Overridden at build time via
// -ldflags "-X github.com/bldgsim/thermogen/pkg/version.Version=...".
//
//nolint:gochecknoglobals // Build-time injection target.
var Version = "0.3.0-dev"

// GetVersion returns the current version string.
func GetVersion() string {
	return Version
}
