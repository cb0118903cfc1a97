package registry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileName is the registry file name used when no location is configured.
const FileName = "javaver-config.json"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Load reads the registry at path. A missing file yields an empty registry;
// a file that exists but does not decode yields a *DecodeError.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return New(), nil
		}
		return nil, fmt.Errorf("failed to read registry %s: %w", path, err)
	}

	// Files edited with PowerShell's Set-Content -Encoding UTF8 carry a BOM.
	data = bytes.TrimPrefix(data, utf8BOM)

	var doc document
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	if dec.More() {
		return nil, &DecodeError{Path: path, Err: errors.New("unexpected data after registry document")}
	}

	reg := New()
	for i, e := range doc.SDK {
		if prev, ok := reg.Get(e.Name); ok {
			return nil, &DecodeError{Path: path, Err: fmt.Errorf(
				"%w: entry %d %q clashes with %q (%s); names compare case-insensitively, rename or remove one",
				ErrDuplicateName, i+1, e.Name, prev.Name, prev.Path)}
		}
		if err := reg.Add(e); err != nil {
			return nil, &DecodeError{Path: path, Err: err}
		}
	}
	return reg, nil
}

// Save writes reg to path, replacing any previous file atomically.
func Save(reg *Registry, path string) error {
	if err := save(reg, path); err != nil {
		return &PersistError{Path: path, Err: err}
	}
	return nil
}

func save(reg *Registry, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := json.MarshalIndent(document{SDK: reg.Entries()}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}
	data = append(data, '\n')

	f, err := os.CreateTemp(dir, ".javaver-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmp := f.Name()
	defer func() { _ = os.Remove(tmp) }()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write registry: %w", err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to fsync registry: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close registry file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace registry: %w", err)
	}
	return nil
}
