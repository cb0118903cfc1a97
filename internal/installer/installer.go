// Package installer downloads Eclipse Temurin JDKs into javaver's install
// directory so they can be registered like any other SDK.
package installer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"runtime"

	"javaver/internal/log"
	"javaver/internal/registry"
)

var (
	// ErrNoPackage means the distributor has no build for the platform.
	ErrNoPackage = errors.New("no JDK package available")

	// ErrChecksum means a downloaded archive did not match its checksum.
	ErrChecksum = errors.New("checksum mismatch")

	// ErrNotJDK means the unpacked archive does not contain a Java SDK.
	ErrNotJDK = errors.New("archive does not contain a Java SDK")
)

// Installer downloads and unpacks JDKs.
type Installer struct {
	dist      Distributor
	dir       string
	validator registry.Validator
	client    *http.Client
	goos      string
	goarch    string
	logger    log.Logger
}

// Option configures an Installer.
type Option func(*Installer)

// WithPlatform overrides the target operating system and architecture.
func WithPlatform(goos, goarch string) Option {
	return func(i *Installer) { i.goos, i.goarch = goos, goarch }
}

// WithDownloadClient sets the client used for archive downloads.
func WithDownloadClient(c *http.Client) Option {
	return func(i *Installer) { i.client = c }
}

// WithLogger sets the logger.
func WithLogger(l log.Logger) Option {
	return func(i *Installer) { i.logger = l }
}

// New creates an Installer that unpacks into dir. v decides whether an
// unpacked directory is a usable SDK root.
func New(dist Distributor, dir string, v registry.Validator, opts ...Option) *Installer {
	i := &Installer{
		dist:      dist,
		dir:       dir,
		validator: v,
		client:    http.DefaultClient,
		goos:      runtime.GOOS,
		goarch:    runtime.GOARCH,
		logger:    log.Default(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Dir returns the install directory.
func (i *Installer) Dir() string {
	return i.dir
}

// Installed is the outcome of a successful Install.
type Installed struct {
	Name    string
	Path    string
	Version string
}

// Name returns the registry name javaver gives a Temurin release.
func Name(major int) string {
	return fmt.Sprintf("temurin-%d", major)
}

// Install downloads the latest build of major, verifies it and moves it to
// <dir>/temurin-<major>, replacing an earlier install there.
func (i *Installer) Install(ctx context.Context, major int, progress ProgressFunc) (*Installed, error) {
	asset, err := i.dist.Latest(ctx, major, i.goos, i.goarch)
	if err != nil {
		return nil, err
	}
	i.logger.Info("downloading JDK", "version", asset.Version, "file", asset.FileName, "size", asset.Size)

	if err := os.MkdirAll(i.dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create install directory: %w", err)
	}
	tmp, err := os.MkdirTemp(i.dir, ".download-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tmp)

	archive := filepath.Join(tmp, filepath.Base(asset.FileName))
	if err := Download(ctx, i.client, asset.URL, archive, progress); err != nil {
		return nil, err
	}
	if asset.Checksum != "" {
		if err := VerifyChecksum(archive, asset.Checksum); err != nil {
			return nil, err
		}
	} else {
		i.logger.Warn("package has no checksum; skipping verification", "file", asset.FileName)
	}

	extracted, err := Extract(archive, filepath.Join(tmp, "extract"))
	if err != nil {
		return nil, fmt.Errorf("extraction failed: %w", err)
	}
	// macOS bundles keep the JDK under Contents/Home.
	home := extracted
	if bundle := filepath.Join(extracted, "Contents", "Home"); i.validator.IsValidSdkRoot(bundle) {
		home = bundle
	}
	if !i.validator.IsValidSdkRoot(home) {
		return nil, fmt.Errorf("%w: %s", ErrNotJDK, asset.FileName)
	}

	name := Name(major)
	final := filepath.Join(i.dir, name)
	if _, err := os.Stat(final); err == nil {
		i.logger.Info("replacing existing install", "path", final)
		if err := os.RemoveAll(final); err != nil {
			return nil, fmt.Errorf("failed to remove old installation: %w", err)
		}
	}
	if err := os.Rename(extracted, final); err != nil {
		return nil, fmt.Errorf("failed to move JDK into place: %w", err)
	}

	path := final
	if home != extracted {
		path = filepath.Join(final, "Contents", "Home")
	}
	return &Installed{Name: name, Path: path, Version: asset.Version}, nil
}
