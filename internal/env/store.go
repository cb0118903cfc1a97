// Package env holds the environment stores the switcher writes PATH through.
package env

import (
	"errors"
	"sync"
)

// PathVar is the name of the variable the stores read and write.
const PathVar = "Path"

// Store is a place that holds the machine-wide PATH value and can tell
// running processes that it changed.
type Store interface {
	// Read returns the current value. A variable that is not set reads as
	// the empty string with a nil error.
	Read() (string, error)
	// WriteAll replaces the whole value.
	WriteAll(value string) error
	// Broadcast notifies running processes of the change. Best effort.
	Broadcast() error
}

// ErrNoListeners is returned by MemoryStore.Broadcast when configured to
// simulate a broadcast nobody answered.
var ErrNoListeners = errors.New("no process acknowledged the environment change")

// MemoryStore is an in-process Store. It backs --dry-run and the tests.
type MemoryStore struct {
	mu         sync.Mutex
	value      string
	writes     int
	broadcasts int

	// ReadErr, WriteErr and BroadcastErr, when set, are returned by the
	// corresponding method instead of doing the work.
	ReadErr      error
	WriteErr     error
	BroadcastErr error
}

// NewMemoryStore returns a MemoryStore holding value.
func NewMemoryStore(value string) *MemoryStore {
	return &MemoryStore{value: value}
}

// Snapshot copies the current value of another store into a MemoryStore.
func Snapshot(s Store) (*MemoryStore, error) {
	v, err := s.Read()
	if err != nil {
		return nil, err
	}
	return NewMemoryStore(v), nil
}

func (m *MemoryStore) Read() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ReadErr != nil {
		return "", m.ReadErr
	}
	return m.value, nil
}

func (m *MemoryStore) WriteAll(value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.value = value
	m.writes++
	return nil
}

func (m *MemoryStore) Broadcast() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.broadcasts++
	return m.BroadcastErr
}

// Value returns the stored value without going through Read.
func (m *MemoryStore) Value() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value
}

// Writes returns how many successful WriteAll calls were made.
func (m *MemoryStore) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// Broadcasts returns how many times Broadcast was called.
func (m *MemoryStore) Broadcasts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.broadcasts
}
