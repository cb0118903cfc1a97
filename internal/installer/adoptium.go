package installer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"time"
)

const adoptiumAPIBase = "https://api.adoptium.net/v3"

// Adoptium fetches Eclipse Temurin builds from the Adoptium API.
type Adoptium struct {
	baseURL string
	client  *http.Client
}

// AdoptiumOption configures an Adoptium client.
type AdoptiumOption func(*Adoptium)

// WithBaseURL points the client at another API root.
func WithBaseURL(u string) AdoptiumOption {
	return func(a *Adoptium) { a.baseURL = u }
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) AdoptiumOption {
	return func(a *Adoptium) { a.client = c }
}

// NewAdoptium creates an Adoptium client.
func NewAdoptium(opts ...AdoptiumOption) *Adoptium {
	a := &Adoptium{
		baseURL: adoptiumAPIBase,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

func (a *Adoptium) Name() string {
	return "Eclipse Temurin"
}

type adoptiumReleasesResponse struct {
	AvailableLTSReleases []int `json:"available_lts_releases"`
	AvailableReleases    []int `json:"available_releases"`
}

type adoptiumAssetResponse struct {
	Binary struct {
		Package struct {
			Link     string `json:"link"`
			Checksum string `json:"checksum"`
			Size     int64  `json:"size"`
			Name     string `json:"name"`
		} `json:"package"`
	} `json:"binary"`
	Version struct {
		OpenJDKVersion string `json:"openjdk_version"`
		Semver         string `json:"semver"`
	} `json:"version"`
}

// Releases returns the available feature releases. When the API cannot be
// reached a built-in list is returned together with the error.
func (a *Adoptium) Releases(ctx context.Context) ([]Release, error) {
	var resp adoptiumReleasesResponse
	if err := a.getJSON(ctx, a.baseURL+"/info/available_releases", &resp); err != nil {
		return fallbackReleases(), fmt.Errorf("using built-in release list: %w", err)
	}

	lts := make(map[int]bool, len(resp.AvailableLTSReleases))
	for _, v := range resp.AvailableLTSReleases {
		lts[v] = true
	}
	releases := make([]Release, 0, len(resp.AvailableReleases))
	for _, v := range resp.AvailableReleases {
		releases = append(releases, Release{Major: v, LTS: lts[v]})
	}
	sort.Slice(releases, func(i, j int) bool {
		return releases[i].Major > releases[j].Major
	})
	return releases, nil
}

func fallbackReleases() []Release {
	return []Release{
		{Major: 25, LTS: true},
		{Major: 24},
		{Major: 21, LTS: true},
		{Major: 17, LTS: true},
		{Major: 11, LTS: true},
		{Major: 8, LTS: true},
	}
}

// Latest returns the newest JDK package for major on the given platform.
func (a *Adoptium) Latest(ctx context.Context, major int, goos, goarch string) (*Asset, error) {
	q := url.Values{}
	q.Set("architecture", adoptiumArch(goarch))
	q.Set("image_type", "jdk")
	q.Set("os", adoptiumOS(goos))
	q.Set("vendor", "eclipse")
	u := fmt.Sprintf("%s/assets/latest/%d/hotspot?%s", a.baseURL, major, q.Encode())

	var assets []adoptiumAssetResponse
	if err := a.getJSON(ctx, u, &assets); err != nil {
		return nil, fmt.Errorf("failed to query Java %d: %w", major, err)
	}
	if len(assets) == 0 {
		return nil, fmt.Errorf("%w: Java %d for %s/%s", ErrNoPackage, major, goos, goarch)
	}

	pkg := assets[0].Binary.Package
	return &Asset{
		URL:      pkg.Link,
		Checksum: pkg.Checksum,
		Size:     pkg.Size,
		FileName: pkg.Name,
		Version:  assets[0].Version.OpenJDKVersion,
	}, nil
}

func (a *Adoptium) getJSON(ctx context.Context, u string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

func adoptiumOS(goos string) string {
	if goos == "darwin" {
		return "mac"
	}
	return goos
}

func adoptiumArch(goarch string) string {
	switch goarch {
	case "amd64":
		return "x64"
	case "arm64":
		return "aarch64"
	case "386":
		return "x32"
	default:
		return goarch
	}
}
