// Package updater replaces the running javaver binary with the latest
// GitHub release.
package updater

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/creativeprojects/go-selfupdate"

	"javaver/internal/config"
	"javaver/internal/log"
)

// UpdateTimeout bounds a full check-and-apply cycle.
const UpdateTimeout = 5 * time.Minute

var (
	// ErrDisabled is returned when update.enabled is false.
	ErrDisabled = errors.New("self-update is disabled (set update.enabled = true)")

	// ErrDevBuild is returned when the running binary has no release version.
	ErrDevBuild = errors.New("cannot self-update a development build")
)

// Updater checks for and applies releases.
type Updater struct {
	settings       *config.Settings
	currentVersion string
	selfUpdater    *selfupdate.Updater
	logger         log.Logger
}

// New creates an Updater for the given running version.
func New(settings *config.Settings, version string, logger log.Logger) (*Updater, error) {
	if !settings.Update.Enabled {
		return nil, ErrDisabled
	}
	current := cleanVersion(version)
	if _, err := semver.StrictNewVersion(current); err != nil {
		return nil, ErrDevBuild
	}
	if logger == nil {
		logger = log.NewNoop()
	}

	su, err := selfupdate.NewUpdater(selfupdate.Config{
		Validator: &selfupdate.ChecksumValidator{
			UniqueFilename: "SHA256SUMS.txt",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create updater: %w", err)
	}

	return &Updater{
		settings:       settings,
		currentVersion: current,
		selfUpdater:    su,
		logger:         logger,
	}, nil
}

// CurrentVersion returns the running version without a "v" prefix.
func (u *Updater) CurrentVersion() string {
	return u.currentVersion
}

// CheckForUpdate queries GitHub for the latest release. It returns nil when
// the running binary is current or the release was skipped.
func (u *Updater) CheckForUpdate(ctx context.Context) (*selfupdate.Release, error) {
	repo := u.settings.Update.Repository
	latest, found, err := u.selfUpdater.DetectLatest(ctx, selfupdate.ParseSlug(repo))
	if err != nil {
		return nil, fmt.Errorf("failed to check for updates: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("no releases found for %s", repo)
	}

	u.settings.Update.LastCheck = time.Now()
	if err := u.settings.Save(); err != nil {
		u.logger.Warn("failed to save settings", "error", err)
	}

	if latest.LessOrEqual(u.currentVersion) {
		return nil, nil
	}
	if u.settings.Update.SkipVersion == latest.Version() {
		u.logger.Debug("release skipped by user", "version", latest.Version())
		return nil, nil
	}
	return latest, nil
}

// PerformUpdate downloads release and replaces the executable, restoring a
// backup if the replacement fails.
func (u *Updater) PerformUpdate(ctx context.Context, release *selfupdate.Release) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to determine executable path: %w", err)
	}

	backup := exe + ".backup"
	if err := copyFile(exe, backup); err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}

	if err := selfupdate.UpdateTo(ctx, release.AssetURL, release.AssetName, exe); err != nil {
		if rollbackErr := os.Rename(backup, exe); rollbackErr != nil {
			return fmt.Errorf("update failed and rollback failed: update error: %w, rollback error: %v", err, rollbackErr)
		}
		return fmt.Errorf("update failed (rolled back): %w", err)
	}

	if err := os.Remove(backup); err != nil {
		u.logger.Debug("backup left behind", "path", backup, "error", err)
	}
	return nil
}

// SkipVersion records version as skipped.
func (u *Updater) SkipVersion(version string) error {
	u.settings.Update.SkipVersion = version
	return u.settings.Save()
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, 0o755)
}

func cleanVersion(version string) string {
	return strings.TrimPrefix(strings.TrimSpace(version), "v")
}
