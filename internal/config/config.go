// Package config loads and saves javaver's user settings.
//
// Settings live in a TOML file under the XDG config directory
// (%LOCALAPPDATA%\javaver\config.toml on Windows). They say where the SDK
// registry lives, which extra directories `javaver auto` scans, and how
// self-update behaves. The SDK registry itself is not part of the settings.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"

	"javaver/internal/registry"
)

const (
	// EnvConfigFile overrides the settings file location.
	EnvConfigFile = "JAVAVER_CONFIG"

	// EnvRegistryFile overrides the registry file location.
	EnvRegistryFile = "JAVAVER_REGISTRY"

	// DefaultRepository is the GitHub slug self-update checks.
	DefaultRepository = "javaver/javaver"
)

// Settings holds the user-configurable settings.
type Settings struct {
	// RegistryFile is where the SDK registry is stored. Empty means
	// javaver-config.json next to the executable.
	RegistryFile string `toml:"registry_file"`

	// SearchPaths are scanned by `javaver auto` after the built-in roots.
	SearchPaths []string `toml:"search_paths"`

	// InstallDir receives JDKs downloaded by `javaver install`.
	InstallDir string `toml:"install_dir"`

	Update UpdateSettings `toml:"update"`

	path string
}

// UpdateSettings controls self-update.
type UpdateSettings struct {
	Enabled     bool      `toml:"enabled"`
	Repository  string    `toml:"repository"`
	LastCheck   time.Time `toml:"last_check"`
	SkipVersion string    `toml:"skip_version"`
}

// Default returns settings with default values bound to path.
func Default(path string) *Settings {
	return &Settings{
		SearchPaths: make([]string, 0),
		Update: UpdateSettings{
			Enabled:    true,
			Repository: DefaultRepository,
		},
		path: path,
	}
}

// DefaultPath returns the settings file location, honouring JAVAVER_CONFIG.
func DefaultPath() (string, error) {
	if p := os.Getenv(EnvConfigFile); p != "" {
		return p, nil
	}
	p, err := xdg.ConfigFile(filepath.Join("javaver", "config.toml"))
	if err != nil {
		return "", fmt.Errorf("failed to resolve config path: %w", err)
	}
	return p, nil
}

// Load reads settings from path. A missing file yields defaults.
func Load(path string) (*Settings, error) {
	s := Default(path)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if _, err := toml.Decode(string(data), s); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	s.path = path
	s.SearchPaths = cleanPaths(s.SearchPaths)
	if s.Update.Repository == "" {
		s.Update.Repository = DefaultRepository
	}
	return s, nil
}

// Path returns the file the settings were loaded from.
func (s *Settings) Path() string {
	return s.path
}

// Save writes the settings back to their file.
func (s *Settings) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(s); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// RegistryPath resolves the registry file location. Precedence: flag,
// JAVAVER_REGISTRY, registry_file, then javaver-config.json beside the
// running executable.
func (s *Settings) RegistryPath(flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	if p := os.Getenv(EnvRegistryFile); p != "" {
		return p, nil
	}
	if s.RegistryFile != "" {
		return s.RegistryFile, nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Join(filepath.Dir(exe), registry.FileName), nil
}

// InstallPath returns the JDK install directory, defaulting to
// $XDG_DATA_HOME/javaver/jdks.
func (s *Settings) InstallPath() string {
	if s.InstallDir != "" {
		return s.InstallDir
	}
	return filepath.Join(xdg.DataHome, "javaver", "jdks")
}

// AddSearchPath appends path unless it is already configured.
func (s *Settings) AddSearchPath(path string) bool {
	path = filepath.Clean(strings.TrimSpace(path))
	if path == "" || path == "." {
		return false
	}
	for _, p := range s.SearchPaths {
		if strings.EqualFold(p, path) {
			return false
		}
	}
	s.SearchPaths = append(s.SearchPaths, path)
	return true
}

// RemoveSearchPath removes path if configured.
func (s *Settings) RemoveSearchPath(path string) bool {
	path = filepath.Clean(strings.TrimSpace(path))
	for i, p := range s.SearchPaths {
		if strings.EqualFold(p, path) {
			s.SearchPaths = append(s.SearchPaths[:i], s.SearchPaths[i+1:]...)
			return true
		}
	}
	return false
}

// cleanPaths drops blanks and case-insensitive duplicates.
func cleanPaths(paths []string) []string {
	out := make([]string, 0, len(paths))
	seen := make(map[string]bool)
	for _, p := range paths {
		p = filepath.Clean(strings.TrimSpace(p))
		if p == "" || p == "." {
			continue
		}
		key := strings.ToLower(p)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}
