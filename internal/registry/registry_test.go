package registry

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func acceptAll() Validator { return ValidatorFunc(func(string) bool { return true }) }

func rejectAll() Validator { return ValidatorFunc(func(string) bool { return false }) }

func mustAdd(t *testing.T, r *Registry, name, path string) {
	t.Helper()
	require.NoError(t, r.Add(Entry{Name: name, Path: path}))
}

func TestAddPreservesOrder(t *testing.T) {
	r := New()
	mustAdd(t, r, "jdk-21", "/opt/jdk-21")
	mustAdd(t, r, "jdk-8", "/opt/jdk-8")
	mustAdd(t, r, "jdk-17", "/opt/jdk-17")

	assert.Equal(t, []string{"jdk-21", "jdk-8", "jdk-17"}, r.Names())
	assert.Equal(t, 3, r.Len())
}

func TestAddDuplicateLeavesRegistryUnchanged(t *testing.T) {
	tests := []struct {
		name      string
		duplicate string
	}{
		{"exact", "jdk-17"},
		{"different case", "JDK-17"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New()
			mustAdd(t, r, "jdk-17", "/opt/jdk-17")
			mustAdd(t, r, "jdk-21", "/opt/jdk-21")
			before := r.Entries()

			err := r.Add(Entry{Name: tt.duplicate, Path: "/elsewhere"})

			require.ErrorIs(t, err, ErrDuplicateName)
			assert.Equal(t, before, r.Entries())
		})
	}
}

func TestContainsNameAndGet(t *testing.T) {
	r := New()
	mustAdd(t, r, "Temurin17", "/opt/temurin-17")

	assert.True(t, r.ContainsName("Temurin17"))
	assert.True(t, r.ContainsName("temurin17"))
	assert.False(t, r.ContainsName("temurin"))

	e, ok := r.Get("TEMURIN17")
	require.True(t, ok)
	assert.Equal(t, "Temurin17", e.Name)
	assert.Equal(t, "/opt/temurin-17", e.Path)

	_, ok = r.Get("zulu")
	assert.False(t, ok)
}

func TestRemove(t *testing.T) {
	r := New()
	mustAdd(t, r, "a", "/a")
	mustAdd(t, r, "b", "/b")
	mustAdd(t, r, "c", "/c")

	removed, err := r.Remove("B")
	require.NoError(t, err)
	assert.Equal(t, Entry{Name: "b", Path: "/b"}, removed)
	assert.Equal(t, []string{"a", "c"}, r.Names())

	_, err = r.Remove("b")
	require.ErrorIs(t, err, ErrUnknownSDK)
	assert.Equal(t, []string{"a", "c"}, r.Names())
}

func TestEntriesReturnsCopy(t *testing.T) {
	r := New()
	mustAdd(t, r, "a", "/a")

	entries := r.Entries()
	entries[0].Name = "mutated"

	assert.Equal(t, []string{"a"}, r.Names())
}

func TestRegister(t *testing.T) {
	t.Run("normalises name and path", func(t *testing.T) {
		r := New()
		dir := t.TempDir()

		e, err := r.Register(acceptAll(), "  jdk-17 ", dir+string(filepath.Separator)+".")

		require.NoError(t, err)
		assert.Equal(t, "jdk-17", e.Name)
		assert.Equal(t, filepath.Clean(dir), e.Path)
		assert.True(t, filepath.IsAbs(e.Path))
		assert.Equal(t, []Entry{e}, r.Entries())
	})

	t.Run("relative path made absolute", func(t *testing.T) {
		r := New()
		e, err := r.Register(acceptAll(), "rel", "sdks/jdk")

		require.NoError(t, err)
		assert.True(t, filepath.IsAbs(e.Path))
	})

	t.Run("validator gate runs before mutation", func(t *testing.T) {
		r := New()
		var asked string
		v := ValidatorFunc(func(p string) bool { asked = p; return false })

		_, err := r.Register(v, "broken", t.TempDir())

		require.ErrorIs(t, err, ErrInvalidPath)
		var ipe *InvalidPathError
		require.True(t, errors.As(err, &ipe))
		assert.Equal(t, asked, ipe.Path)
		assert.Equal(t, 0, r.Len())
	})

	t.Run("empty name", func(t *testing.T) {
		r := New()
		_, err := r.Register(acceptAll(), "   ", "/opt/jdk")
		require.ErrorIs(t, err, ErrEmptyName)
		assert.Equal(t, 0, r.Len())
	})

	t.Run("duplicate name", func(t *testing.T) {
		r := New()
		mustAdd(t, r, "jdk", "/opt/jdk")

		_, err := r.Register(acceptAll(), "JDK", "/opt/other")

		require.ErrorIs(t, err, ErrDuplicateName)
		assert.Equal(t, []Entry{{Name: "jdk", Path: "/opt/jdk"}}, r.Entries())
	})
}

func TestImport(t *testing.T) {
	root := t.TempDir()
	valid := filepath.Join(root, "jdk-21")
	invalid := filepath.Join(root, "not-a-jdk")
	v := ValidatorFunc(func(p string) bool { return p != invalid })

	r := New()
	mustAdd(t, r, "jdk-17", filepath.Join(root, "jdk-17"))

	res := r.Import(v, []Entry{
		{Name: "jdk-21", Path: valid},
		{Name: "jdk-17", Path: filepath.Join(root, "jdk-17-copy")},
		{Name: "not-a-jdk", Path: invalid},
	})

	require.Len(t, res.Added, 1)
	assert.Equal(t, "jdk-21", res.Added[0].Name)

	require.Len(t, res.Skipped, 2)
	assert.ErrorIs(t, res.Skipped[0].Reason, ErrDuplicateName)
	assert.Equal(t, "jdk-17", res.Skipped[0].Entry.Name)
	assert.ErrorIs(t, res.Skipped[1].Reason, ErrInvalidPath)

	assert.Equal(t, []string{"jdk-17", "jdk-21"}, r.Names())
}

func TestImportNothingValid(t *testing.T) {
	r := New()
	res := r.Import(rejectAll(), []Entry{{Name: "x", Path: "/x"}})

	assert.Empty(t, res.Added)
	assert.Len(t, res.Skipped, 1)
	assert.Equal(t, 0, r.Len())
}

func TestBinDir(t *testing.T) {
	e := Entry{Name: "jdk", Path: filepath.Join("opt", "jdk")}
	assert.Equal(t, filepath.Join("opt", "jdk", "bin"), e.BinDir())
}
