package cli

import (
	"errors"

	"javaver/internal/registry"
	"javaver/internal/switcher"
)

// Exit codes. Scripts can rely on these to tell failure modes apart.
const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0

	// ExitGeneral indicates a general error
	ExitGeneral = 1

	// ExitUsage indicates invalid arguments or flags
	ExitUsage = 2

	// ExitDuplicateName indicates the SDK name is already registered
	ExitDuplicateName = 3

	// ExitUnknownSDK indicates no SDK is registered under the name
	ExitUnknownSDK = 4

	// ExitInvalidPath indicates the directory is not a Java SDK root
	ExitInvalidPath = 5

	// ExitCorruptRegistry indicates the registry file could not be decoded
	ExitCorruptRegistry = 6

	// ExitPersist indicates the registry could not be saved
	ExitPersist = 7

	// ExitPermission indicates the system PATH could not be written
	ExitPermission = 8
)

// usageError marks errors caused by how javaver was invoked.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func newUsageError(err error) error {
	if err == nil {
		return nil
	}
	return &usageError{err: err}
}

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var ue *usageError
	switch {
	case errors.Is(err, switcher.ErrPermission):
		return ExitPermission
	case errors.Is(err, registry.ErrCorrupt):
		return ExitCorruptRegistry
	case errors.Is(err, registry.ErrDuplicateName):
		return ExitDuplicateName
	case errors.Is(err, registry.ErrUnknownSDK):
		return ExitUnknownSDK
	case errors.Is(err, registry.ErrInvalidPath):
		return ExitInvalidPath
	case errors.As(err, &ue), errors.Is(err, registry.ErrEmptyName):
		return ExitUsage
	case errors.Is(err, registry.ErrPersist):
		return ExitPersist
	default:
		return ExitGeneral
	}
}
