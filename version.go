package ringlytools

import (
	"runtime/debug"

	"golang.org/x/mod/semver"
)

var (
	// Version is set at build time with
	// -ldflags "-X github.com/ringly/ringlytools.Version=v1.2.3".
	Version = "v0.0.0-unknown"
)

// SemVer returns the canonical semantic version of the running binary.
// It prefers Version, then the main module's version from build info.
func SemVer() string {
	if semver.IsValid(Version) && Version != "v0.0.0-unknown" {
		return semver.Canonical(Version)
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		if v := semver.Canonical(info.Main.Version); v != "" {
			return v
		}
	}

	return Version
}
