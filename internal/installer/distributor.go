package installer

import "context"

// Distributor is a source of JDK builds.
type Distributor interface {
	Name() string
	// Releases lists the feature releases on offer, newest first.
	Releases(ctx context.Context) ([]Release, error)
	// Latest returns the newest JDK package for a feature release.
	Latest(ctx context.Context, major int, goos, goarch string) (*Asset, error)
}

// Release is an installable Java feature release.
type Release struct {
	Major int  `json:"major" yaml:"major"`
	LTS   bool `json:"lts" yaml:"lts"`
}

// Asset describes a downloadable JDK package.
type Asset struct {
	URL      string
	Checksum string // SHA-256, hex
	Size     int64
	FileName string
	Version  string
}
