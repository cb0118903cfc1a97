// Package registry keeps the ordered list of named Java SDKs and persists it.
//
// Names are compared case-insensitively everywhere (lookup, duplicate
// detection, removal) but stored exactly as the user typed them.
package registry

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Registry is an ordered set of SDK entries with unique names.
type Registry struct {
	sdks []Entry
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{sdks: make([]Entry, 0)}
}

// Len returns the number of registered SDKs.
func (r *Registry) Len() int {
	return len(r.sdks)
}

// Entries returns a copy of the entries in insertion order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.sdks))
	copy(out, r.sdks)
	return out
}

// Names returns the registered names in insertion order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.sdks))
	for i, e := range r.sdks {
		names[i] = e.Name
	}
	return names
}

func (r *Registry) index(name string) int {
	for i, e := range r.sdks {
		if strings.EqualFold(e.Name, name) {
			return i
		}
	}
	return -1
}

// ContainsName reports whether an entry with this name exists.
func (r *Registry) ContainsName(name string) bool {
	return r.index(name) >= 0
}

// Get returns the entry registered under name.
func (r *Registry) Get(name string) (Entry, bool) {
	i := r.index(name)
	if i < 0 {
		return Entry{}, false
	}
	return r.sdks[i], true
}

// Add appends entry. The registry is left unchanged when the name is taken.
func (r *Registry) Add(entry Entry) error {
	if r.ContainsName(entry.Name) {
		return fmt.Errorf("%w: %q", ErrDuplicateName, entry.Name)
	}
	r.sdks = append(r.sdks, entry)
	return nil
}

// Remove deletes the entry registered under name and returns it.
func (r *Registry) Remove(name string) (Entry, error) {
	i := r.index(name)
	if i < 0 {
		return Entry{}, fmt.Errorf("%w: %q", ErrUnknownSDK, name)
	}
	removed := r.sdks[i]
	r.sdks = append(r.sdks[:i], r.sdks[i+1:]...)
	return removed, nil
}

// Register validates path and adds it under name. Nothing is mutated unless
// the name is usable, the path passes v and the name is free.
func (r *Registry) Register(v Validator, name, path string) (Entry, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Entry{}, ErrEmptyName
	}

	path = strings.TrimSpace(path)
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	path = filepath.Clean(path)

	if !v.IsValidSdkRoot(path) {
		return Entry{}, &InvalidPathError{Path: path}
	}

	entry := Entry{Name: name, Path: path}
	if err := r.Add(entry); err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// Skipped is a discovery candidate that was not added.
type Skipped struct {
	Entry  Entry
	Reason error
}

// ImportResult summarises an Import call.
type ImportResult struct {
	Added   []Entry
	Skipped []Skipped
}

// Import registers each candidate in order. Duplicate names and invalid
// paths are collected in Skipped rather than aborting the import.
func (r *Registry) Import(v Validator, candidates []Entry) ImportResult {
	var res ImportResult
	for _, c := range candidates {
		entry, err := r.Register(v, c.Name, c.Path)
		if err != nil {
			res.Skipped = append(res.Skipped, Skipped{Entry: c, Reason: err})
			continue
		}
		res.Added = append(res.Added, entry)
	}
	return res
}
