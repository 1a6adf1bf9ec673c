//nolint:gochecknoglobals // allow global variables
package config

import "golang.org/x/mod/semver"

var (
	// Version is the stellar-txresult version number, which is injected during build time.
	Version = "0.0.0"

	// CommitHash is the stellar-txresult git commit hash, which is injected during build time.
	CommitHash = ""

	// BuildTimestamp is the timestamp at which stellar-txresult was built, injected during build time.
	BuildTimestamp = ""

	// Branch is the git branch from which stellar-txresult was built, injected during build time.
	Branch = ""
)

// CanonicalVersion returns Version in canonical semver form ("v1.2.3"), or
// an empty string if Version is not a valid semantic version.
func CanonicalVersion() string {
	v := Version
	if len(v) == 0 || v[0] != 'v' {
		v = "v" + v
	}
	return semver.Canonical(v)
}
