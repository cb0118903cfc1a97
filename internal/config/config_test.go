package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"javaver/internal/registry"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	s, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, path, s.Path())
	assert.Empty(t, s.RegistryFile)
	assert.Empty(t, s.SearchPaths)
	assert.True(t, s.Update.Enabled)
	assert.Equal(t, DefaultRepository, s.Update.Repository)
}

func TestLoadParsesAndCleans(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
registry_file = "/data/sdks.json"
search_paths = ["/opt/java", " /opt/java ", "", "/OPT/JAVA", "/srv/jdks"]

[update]
enabled = false
skip_version = "1.4.0"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	s, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "/data/sdks.json", s.RegistryFile)
	assert.Equal(t, []string{filepath.Clean("/opt/java"), filepath.Clean("/srv/jdks")}, s.SearchPaths)
	assert.False(t, s.Update.Enabled)
	assert.Equal(t, "1.4.0", s.Update.SkipVersion)
	assert.Equal(t, DefaultRepository, s.Update.Repository)
}

func TestLoadInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("registry_file = [unterminated"), 0o644))

	_, err := Load(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	s := Default(path)
	s.RegistryFile = "/data/sdks.json"
	s.AddSearchPath("/opt/java")
	s.Update.LastCheck = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.Update.SkipVersion = "2.0.0"

	require.NoError(t, s.Save())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s.RegistryFile, loaded.RegistryFile)
	assert.Equal(t, s.SearchPaths, loaded.SearchPaths)
	assert.True(t, s.Update.LastCheck.Equal(loaded.Update.LastCheck))
	assert.Equal(t, s.Update.SkipVersion, loaded.Update.SkipVersion)
	assert.Equal(t, s.Update.Enabled, loaded.Update.Enabled)
}

func TestDefaultPathHonoursEnv(t *testing.T) {
	t.Setenv(EnvConfigFile, "/custom/javaver.toml")

	p, err := DefaultPath()

	require.NoError(t, err)
	assert.Equal(t, "/custom/javaver.toml", p)
}

func TestDefaultPathUnderXDG(t *testing.T) {
	t.Setenv(EnvConfigFile, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	p, err := DefaultPath()

	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(p, filepath.Join("javaver", "config.toml")))
}

func TestRegistryPathPrecedence(t *testing.T) {
	s := Default(filepath.Join(t.TempDir(), "config.toml"))

	t.Run("executable directory by default", func(t *testing.T) {
		t.Setenv(EnvRegistryFile, "")
		p, err := s.RegistryPath("")
		require.NoError(t, err)
		assert.Equal(t, registry.FileName, filepath.Base(p))
	})

	t.Run("settings", func(t *testing.T) {
		t.Setenv(EnvRegistryFile, "")
		s.RegistryFile = "/from/settings.json"
		t.Cleanup(func() { s.RegistryFile = "" })
		p, err := s.RegistryPath("")
		require.NoError(t, err)
		assert.Equal(t, "/from/settings.json", p)
	})

	t.Run("environment beats settings", func(t *testing.T) {
		t.Setenv(EnvRegistryFile, "/from/env.json")
		s.RegistryFile = "/from/settings.json"
		t.Cleanup(func() { s.RegistryFile = "" })
		p, err := s.RegistryPath("")
		require.NoError(t, err)
		assert.Equal(t, "/from/env.json", p)
	})

	t.Run("flag beats everything", func(t *testing.T) {
		t.Setenv(EnvRegistryFile, "/from/env.json")
		p, err := s.RegistryPath("/from/flag.json")
		require.NoError(t, err)
		assert.Equal(t, "/from/flag.json", p)
	})
}

func TestSearchPaths(t *testing.T) {
	s := Default("")

	assert.True(t, s.AddSearchPath("/opt/java"))
	assert.False(t, s.AddSearchPath("/OPT/JAVA"))
	assert.False(t, s.AddSearchPath("  "))
	assert.True(t, s.AddSearchPath("/srv/jdks"))

	assert.True(t, s.RemoveSearchPath("/opt/Java"))
	assert.False(t, s.RemoveSearchPath("/opt/java"))
	assert.Equal(t, []string{filepath.Clean("/srv/jdks")}, s.SearchPaths)
}

func TestGetSet(t *testing.T) {
	s := Default("")
	sep := string(filepath.ListSeparator)

	require.NoError(t, s.Set("registry_file", " /data/sdks.json "))
	require.NoError(t, s.Set("search_paths", "/a"+sep+"/b"+sep+"/A"))
	require.NoError(t, s.Set("install_dir", "/opt/javaver"))
	require.NoError(t, s.Set("update.enabled", "false"))
	require.NoError(t, s.Set("UPDATE.REPOSITORY", "acme/javaver"))
	require.NoError(t, s.Set("update.skip_version", "3.1.0"))

	tests := map[string]string{
		"registry_file":       "/data/sdks.json",
		"search_paths":        filepath.Clean("/a") + sep + filepath.Clean("/b"),
		"install_dir":         "/opt/javaver",
		"update.enabled":      "false",
		"update.repository":   "acme/javaver",
		"update.skip_version": "3.1.0",
	}
	for key, want := range tests {
		got, ok := s.Get(key)
		assert.True(t, ok, key)
		assert.Equal(t, want, got, key)
	}

	_, ok := s.Get("nope")
	assert.False(t, ok)
}

func TestSetErrors(t *testing.T) {
	s := Default("")

	assert.ErrorContains(t, s.Set("update.enabled", "maybe"), "true or false")
	assert.ErrorContains(t, s.Set("update.repository", "no-slash"), "owner/repo")
	assert.ErrorContains(t, s.Set("colour", "blue"), "unknown config key")
}

func TestKeysAreGettable(t *testing.T) {
	s := Default("")
	for _, k := range Keys() {
		_, ok := s.Get(k.Name)
		assert.True(t, ok, k.Name)
	}
}

func TestInstallPath(t *testing.T) {
	s := Default("")
	assert.Equal(t, filepath.Join(xdg.DataHome, "javaver", "jdks"), s.InstallPath())

	s.InstallDir = "/opt/jdks"
	assert.Equal(t, "/opt/jdks", s.InstallPath())
}
