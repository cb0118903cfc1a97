// Package switcher makes one registered SDK the one found first on PATH.
package switcher

import (
	"fmt"
	"path/filepath"
	"strings"

	"javaver/internal/env"
	"javaver/internal/log"
	"javaver/internal/registry"
)

// Result describes a completed switch.
type Result struct {
	Entry    registry.Entry
	BinDir   string
	Previous []string
	Path     []string
	// JavaHome is the value JAVA_HOME should take. Applying it is left to
	// the caller and only affects that process and its children.
	JavaHome string
}

// Switcher rewrites PATH through an env.Store.
type Switcher struct {
	store  env.Store
	sep    string
	logger log.Logger
}

// Option configures a Switcher.
type Option func(*Switcher)

// WithListSeparator overrides the PATH list separator, which defaults to
// filepath.ListSeparator.
func WithListSeparator(sep rune) Option {
	return func(s *Switcher) { s.sep = string(sep) }
}

// WithLogger sets the logger. Defaults to log.Default().
func WithLogger(l log.Logger) Option {
	return func(s *Switcher) { s.logger = l }
}

// New returns a Switcher writing through store.
func New(store env.Store, opts ...Option) *Switcher {
	s := &Switcher{
		store:  store,
		sep:    string(filepath.ListSeparator),
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Switch puts the bin directory of the SDK registered as name at the front
// of PATH, removing its previous occurrence. The only failures are an
// unknown name, an unreadable PATH and a refused write; in each case the
// store is left untouched. A failed broadcast is logged and ignored.
//
// The read and the write are not guarded against other writers.
func (s *Switcher) Switch(reg *registry.Registry, name string) (*Result, error) {
	entry, ok := reg.Get(name)
	if !ok {
		return nil, &UnknownSDKError{Name: name}
	}
	bin := entry.BinDir()

	current, err := s.store.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read system PATH: %w", err)
	}
	previous := Split(current, s.sep)
	updated := Rewrite(previous, bin)

	s.logger.Debug("rewriting PATH", "sdk", entry.Name, "bin", bin, "before", len(previous), "after", len(updated))

	if err := s.store.WriteAll(strings.Join(updated, s.sep)); err != nil {
		return nil, &PermissionError{Err: err}
	}

	if err := s.store.Broadcast(); err != nil {
		s.logger.Debug("environment change broadcast failed", "error", err)
	}

	return &Result{
		Entry:    entry,
		BinDir:   bin,
		Previous: previous,
		Path:     updated,
		JavaHome: JavaHome(entry),
	}, nil
}

// JavaHome returns the JAVA_HOME value for entry: the SDK root, not bin.
func JavaHome(entry registry.Entry) string {
	return entry.Path
}

// Split breaks a PATH value into its entries. The empty value has no
// entries; empty segments of a non-empty value are kept.
func Split(value, sep string) []string {
	if value == "" {
		return []string{}
	}
	return strings.Split(value, sep)
}

// Rewrite returns list with bin moved to the front. Only the first entry
// equal to bin ignoring case is removed; everything else keeps its order.
func Rewrite(list []string, bin string) []string {
	out := make([]string, 0, len(list)+1)
	out = append(out, bin)
	removed := false
	for _, p := range list {
		if !removed && strings.EqualFold(p, bin) {
			removed = true
			continue
		}
		out = append(out, p)
	}
	return out
}

// Active returns the registered SDK whose bin directory appears first in
// list, if any.
func Active(reg *registry.Registry, list []string) (registry.Entry, bool) {
	entries := reg.Entries()
	for _, p := range list {
		for _, e := range entries {
			if strings.EqualFold(p, e.BinDir()) {
				return e, true
			}
		}
	}
	return registry.Entry{}, false
}
