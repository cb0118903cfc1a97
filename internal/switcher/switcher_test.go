package switcher

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"javaver/internal/env"
	"javaver/internal/registry"
)

// Tests use ';' so PATH literals read the same on every platform. Concurrent
// writers between the PATH read and write are an accepted race and are not
// simulated here.

var (
	jdk17 = registry.Entry{Name: "jdk-17", Path: filepath.Join("sdks", "jdk-17")}
	jdk21 = registry.Entry{Name: "jdk-21", Path: filepath.Join("sdks", "jdk-21")}
)

func testRegistry(t *testing.T, entries ...registry.Entry) *registry.Registry {
	t.Helper()
	reg := registry.New()
	for _, e := range entries {
		require.NoError(t, reg.Add(e))
	}
	return reg
}

func join(parts ...string) string { return strings.Join(parts, ";") }

func newSwitcher(store env.Store) *Switcher {
	return New(store, WithListSeparator(';'))
}

func TestSwitchMovesTargetToFront(t *testing.T) {
	bin := jdk17.BinDir()

	tests := []struct {
		name   string
		before string
		after  []string
	}{
		{"target in the middle", join("A", "B", bin, "C"), []string{bin, "A", "B", "C"}},
		{"target absent", join("A", "B", "C"), []string{bin, "A", "B", "C"}},
		{"target already first", join(bin, "A"), []string{bin, "A"}},
		{"target last", join("A", bin), []string{bin, "A"}},
		{"empty PATH", "", []string{bin}},
		{"empty segments kept", join("A", "", "B"), []string{bin, "A", "", "B"}},
		{"only first duplicate removed", join("A", bin, "B", bin), []string{bin, "A", "B", bin}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := env.NewMemoryStore(tt.before)

			res, err := newSwitcher(store).Switch(testRegistry(t, jdk17), "jdk-17")

			require.NoError(t, err)
			assert.Equal(t, tt.after, res.Path)
			assert.Equal(t, strings.Join(tt.after, ";"), store.Value())
			assert.Equal(t, 1, store.Writes())
			assert.Equal(t, 1, store.Broadcasts())
		})
	}
}

func TestSwitchCaseInsensitiveMatch(t *testing.T) {
	bin := jdk17.BinDir()
	store := env.NewMemoryStore(join("A", strings.ToUpper(bin), "B"))

	res, err := newSwitcher(store).Switch(testRegistry(t, jdk17), "jdk-17")

	require.NoError(t, err)
	assert.Equal(t, []string{bin, "A", "B"}, res.Path)
}

func TestSwitchIsIdempotent(t *testing.T) {
	reg := testRegistry(t, jdk17, jdk21)
	store := env.NewMemoryStore(join("A", jdk21.BinDir(), "B", jdk17.BinDir()))
	s := newSwitcher(store)

	_, err := s.Switch(reg, "jdk-17")
	require.NoError(t, err)
	afterFirst := store.Value()

	res, err := s.Switch(reg, "jdk-17")
	require.NoError(t, err)

	assert.Equal(t, afterFirst, store.Value())
	count := 0
	for _, p := range res.Path {
		if strings.EqualFold(p, jdk17.BinDir()) {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.Equal(t, jdk17.BinDir(), res.Path[0])
}

func TestSwitchBetweenSDKs(t *testing.T) {
	reg := testRegistry(t, jdk17, jdk21)
	store := env.NewMemoryStore(join("A", "B"))
	s := newSwitcher(store)

	_, err := s.Switch(reg, "jdk-17")
	require.NoError(t, err)
	res, err := s.Switch(reg, "jdk-21")
	require.NoError(t, err)

	assert.Equal(t, []string{jdk21.BinDir(), jdk17.BinDir(), "A", "B"}, res.Path)
	assert.Equal(t, []string{jdk17.BinDir(), "A", "B"}, res.Previous)
}

func TestSwitchResult(t *testing.T) {
	store := env.NewMemoryStore("A")

	res, err := newSwitcher(store).Switch(testRegistry(t, jdk17), "JDK-17")

	require.NoError(t, err)
	assert.Equal(t, jdk17, res.Entry)
	assert.Equal(t, jdk17.BinDir(), res.BinDir)
	assert.Equal(t, jdk17.Path, res.JavaHome)
	assert.NotEqual(t, res.BinDir, res.JavaHome)
	assert.Equal(t, []string{"A"}, res.Previous)
}

func TestSwitchUnknownSDK(t *testing.T) {
	store := env.NewMemoryStore("A;B")

	res, err := newSwitcher(store).Switch(testRegistry(t, jdk17), "jdk-8")

	require.Nil(t, res)
	require.ErrorIs(t, err, registry.ErrUnknownSDK)
	var ue *UnknownSDKError
	require.ErrorAs(t, err, &ue)
	assert.Equal(t, "jdk-8", ue.Name)
	assert.Equal(t, "A;B", store.Value())
	assert.Equal(t, 0, store.Writes())
	assert.Equal(t, 0, store.Broadcasts())
}

func TestRemoveThenSelect(t *testing.T) {
	reg := testRegistry(t, jdk17, jdk21)
	store := env.NewMemoryStore("A")

	_, err := reg.Remove("jdk-17")
	require.NoError(t, err)

	res, err := newSwitcher(store).Switch(reg, "jdk-17")

	require.Nil(t, res)
	require.ErrorIs(t, err, registry.ErrUnknownSDK)
	assert.Equal(t, "A", store.Value())
	assert.Equal(t, 0, store.Writes())
}

func TestSwitchWriteRefused(t *testing.T) {
	denied := errors.New("Access is denied.")
	store := env.NewMemoryStore("A;B")
	store.WriteErr = denied

	res, err := newSwitcher(store).Switch(testRegistry(t, jdk17), "jdk-17")

	require.Nil(t, res)
	require.ErrorIs(t, err, ErrPermission)
	require.ErrorIs(t, err, denied)
	assert.Contains(t, err.Error(), "administrator")
	assert.Equal(t, "A;B", store.Value())
	assert.Equal(t, 0, store.Broadcasts())
}

func TestSwitchWriteUnsupported(t *testing.T) {
	store := env.NewMemoryStore("A;B")
	store.WriteErr = fmt.Errorf("machine-wide PATH on linux: %w", errors.ErrUnsupported)

	_, err := newSwitcher(store).Switch(testRegistry(t, jdk17), "jdk-17")

	require.ErrorIs(t, err, ErrPermission)
	assert.Contains(t, err.Error(), "--dry-run")
	assert.NotContains(t, err.Error(), "elevated")
}

func TestSwitchReadFailureWritesNothing(t *testing.T) {
	store := env.NewMemoryStore("A")
	store.ReadErr = errors.New("key missing")

	_, err := newSwitcher(store).Switch(testRegistry(t, jdk17), "jdk-17")

	require.Error(t, err)
	assert.Equal(t, 0, store.Writes())
	assert.Equal(t, 0, store.Broadcasts())
}

func TestSwitchBroadcastFailureIgnored(t *testing.T) {
	store := env.NewMemoryStore("A")
	store.BroadcastErr = env.ErrNoListeners

	res, err := newSwitcher(store).Switch(testRegistry(t, jdk17), "jdk-17")

	require.NoError(t, err)
	assert.Equal(t, []string{jdk17.BinDir(), "A"}, res.Path)
	assert.Equal(t, 1, store.Broadcasts())
}

func TestDefaultSeparator(t *testing.T) {
	sep := string(filepath.ListSeparator)
	store := env.NewMemoryStore(strings.Join([]string{"A", "B"}, sep))

	_, err := New(store).Switch(testRegistry(t, jdk17), "jdk-17")

	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{jdk17.BinDir(), "A", "B"}, sep), store.Value())
}

func TestRewriteDoesNotMutateInput(t *testing.T) {
	in := []string{"A", "X", "B"}

	out := Rewrite(in, "x")

	assert.Equal(t, []string{"x", "A", "B"}, out)
	assert.Equal(t, []string{"A", "X", "B"}, in)
}

func TestSplit(t *testing.T) {
	assert.Equal(t, []string{}, Split("", ";"))
	assert.Equal(t, []string{"A"}, Split("A", ";"))
	assert.Equal(t, []string{"A", "", "B", ""}, Split("A;;B;", ";"))
}

func TestActive(t *testing.T) {
	reg := testRegistry(t, jdk17, jdk21)

	tests := []struct {
		name   string
		list   []string
		want   registry.Entry
		wantOK bool
	}{
		{"first registered bin wins", []string{"A", jdk21.BinDir(), jdk17.BinDir()}, jdk21, true},
		{"case insensitive", []string{strings.ToUpper(jdk17.BinDir())}, jdk17, true},
		{"none registered", []string{"A", "B"}, registry.Entry{}, false},
		{"empty", nil, registry.Entry{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Active(reg, tt.list)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
