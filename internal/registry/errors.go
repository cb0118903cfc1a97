package registry

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateName means an entry with the same name is already registered.
	ErrDuplicateName = errors.New("an SDK with this name is already registered")
	// ErrUnknownSDK means no entry has the requested name.
	ErrUnknownSDK = errors.New("no SDK registered under this name")
	// ErrEmptyName means the name was blank after trimming.
	ErrEmptyName = errors.New("SDK name must not be empty")
	// ErrInvalidPath means the validator rejected the SDK root.
	ErrInvalidPath = errors.New("not a Java SDK installation")
	// ErrCorrupt means the registry file exists but could not be decoded.
	ErrCorrupt = errors.New("registry file is corrupt")
	// ErrPersist means the registry could not be written back to disk.
	ErrPersist = errors.New("registry could not be saved")
)

// InvalidPathError reports an SDK root rejected by the validator.
type InvalidPathError struct {
	Path string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("%s: %s (expected %s)", ErrInvalidPath, e.Path, javaBinaryHint())
}

func (e *InvalidPathError) Is(target error) bool { return target == ErrInvalidPath }

// DecodeError reports a registry file that exists but is malformed.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrCorrupt, e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

func (e *DecodeError) Is(target error) bool { return target == ErrCorrupt }

// PersistError reports a failed registry write.
type PersistError struct {
	Path string
	Err  error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrPersist, e.Path, e.Err)
}

func (e *PersistError) Unwrap() error { return e.Err }

func (e *PersistError) Is(target error) bool { return target == ErrPersist }
