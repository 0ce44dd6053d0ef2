// Package version holds build-time version info for citybike.
// Set via main using Set(), read from anywhere via Version().
package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Build information, populated by Set() at startup.
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

// Set stores build-time version info. Call once from main.
func Set(v, c, d string) {
	version = v
	commit = c
	buildDate = d
}

// Version returns the build version string.
func Version() string { return version }

// Commit returns the build commit hash.
func Commit() string { return commit }

// BuildDate returns the build date string.
func BuildDate() string { return buildDate }

// UserAgent returns the HTTP User-Agent sent with outgoing requests.
// Release builds report their canonical semver, anything else reports dev.
func UserAgent() string {
	v := version
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "citybike/dev"
	}
	return "citybike/" + strings.TrimPrefix(semver.Canonical(v), "v")
}
