package updater

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"javaver/internal/config"
)

func TestNewRefusesWhenDisabled(t *testing.T) {
	s := config.Default(filepath.Join(t.TempDir(), "config.toml"))
	s.Update.Enabled = false

	_, err := New(s, "1.2.3", nil)

	assert.ErrorIs(t, err, ErrDisabled)
}

func TestNewRefusesDevBuild(t *testing.T) {
	s := config.Default(filepath.Join(t.TempDir(), "config.toml"))

	for _, v := range []string{"dev", "", "1.2"} {
		_, err := New(s, v, nil)
		assert.ErrorIs(t, err, ErrDevBuild, v)
	}
}

func TestNewStripsPrefix(t *testing.T) {
	s := config.Default(filepath.Join(t.TempDir(), "config.toml"))

	u, err := New(s, "v1.4.0", nil)

	require.NoError(t, err)
	assert.Equal(t, "1.4.0", u.CurrentVersion())
}

func TestSkipVersionPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	s := config.Default(path)
	u, err := New(s, "1.0.0", nil)
	require.NoError(t, err)

	require.NoError(t, u.SkipVersion("1.1.0"))

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "1.1.0", loaded.Update.SkipVersion)
}

func TestTruncateChangelog(t *testing.T) {
	assert.Equal(t, "See release notes on GitHub for details.", truncateChangelog("  ", 10))
	assert.Equal(t, "short", truncateChangelog("short", 10))

	long := strings.Repeat("word ", 40)
	got := truncateChangelog(long, 50)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, len(got), 53)
	assert.False(t, strings.HasSuffix(strings.TrimSuffix(got, "..."), " "))

	lines := "first line\nsecond line\nthird line"
	assert.Equal(t, "first line\nsecond line...", truncateChangelog(lines, 25))

	accents := strings.Repeat("é", 10)
	got = truncateChangelog(accents, 5)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "éé...", got)
}

func TestShowUpdateSuccess(t *testing.T) {
	var buf bytes.Buffer
	ShowUpdateSuccess(&buf, "2.0.0")
	assert.Contains(t, buf.String(), "2.0.0")
	assert.Contains(t, buf.String(), "Update complete")
}
