package config

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// Key describes a settings key reachable through `javaver config`.
type Key struct {
	Name        string
	Description string
}

// Keys lists the keys Get and Set understand.
func Keys() []Key {
	return []Key{
		{"registry_file", "Registry file location (empty: next to the executable)"},
		{"search_paths", "Extra directories for 'javaver auto', separated by " + string(filepath.ListSeparator)},
		{"install_dir", "Where 'javaver install' puts JDKs (empty: XDG data directory)"},
		{"update.enabled", "Allow 'javaver self-update' (true/false)"},
		{"update.repository", "GitHub owner/repo that releases are fetched from"},
		{"update.skip_version", "Release version self-update ignores"},
	}
}

// Get returns the value of key as a string.
func (s *Settings) Get(key string) (string, bool) {
	switch strings.ToLower(key) {
	case "registry_file":
		return s.RegistryFile, true
	case "search_paths":
		return strings.Join(s.SearchPaths, string(filepath.ListSeparator)), true
	case "install_dir":
		return s.InstallDir, true
	case "update.enabled":
		return strconv.FormatBool(s.Update.Enabled), true
	case "update.repository":
		return s.Update.Repository, true
	case "update.skip_version":
		return s.Update.SkipVersion, true
	default:
		return "", false
	}
}

// Set updates key from its string form.
func (s *Settings) Set(key, value string) error {
	switch strings.ToLower(key) {
	case "registry_file":
		s.RegistryFile = strings.TrimSpace(value)
	case "search_paths":
		s.SearchPaths = cleanPaths(filepath.SplitList(value))
	case "install_dir":
		s.InstallDir = strings.TrimSpace(value)
	case "update.enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for update.enabled: must be true or false")
		}
		s.Update.Enabled = b
	case "update.repository":
		value = strings.TrimSpace(value)
		if strings.Count(value, "/") != 1 {
			return fmt.Errorf("invalid value for update.repository: expected owner/repo")
		}
		s.Update.Repository = value
	case "update.skip_version":
		s.Update.SkipVersion = strings.TrimSpace(value)
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
