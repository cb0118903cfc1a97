//go:build !windows

package env

import (
	"errors"
	"fmt"
	"os"
	"runtime"
)

// SystemStore on non-Windows platforms can only read the PATH of the current
// process. There is no machine-wide store to write to.
type SystemStore struct{}

// NewSystemStore returns the Store for the machine environment.
func NewSystemStore() Store {
	return &SystemStore{}
}

func (s *SystemStore) Read() (string, error) {
	return os.Getenv("PATH"), nil
}

func (s *SystemStore) WriteAll(string) error {
	return fmt.Errorf("machine-wide PATH on %s: %w", runtime.GOOS, errors.ErrUnsupported)
}

func (s *SystemStore) Broadcast() error {
	return nil
}

// IsAdmin reports whether the process runs as root.
func IsAdmin() bool {
	return os.Geteuid() == 0
}
