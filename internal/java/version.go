// Package java validates, discovers and inspects Java SDK installations.
package java

import (
	"errors"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrNoVersion is returned by ParseVersion for an empty string.
var ErrNoVersion = errors.New("no version")

// ParseVersion turns a Java version string into a semantic version.
// Legacy "1.x" versions map to major x ("1.8.0_322" becomes 8.0.0+322)
// and the update suffix becomes build metadata.
func ParseVersion(s string) (*semver.Version, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrNoVersion
	}
	if strings.HasPrefix(s, "1.") {
		s = strings.TrimPrefix(s, "1.")
	}
	s = strings.Replace(s, "_", "+", 1)
	return semver.NewVersion(s)
}

// Major returns the feature release number of a Java version string, or 0.
func Major(s string) uint64 {
	v, err := ParseVersion(s)
	if err != nil {
		return 0
	}
	return v.Major()
}
