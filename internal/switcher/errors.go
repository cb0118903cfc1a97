package switcher

import (
	"errors"
	"fmt"

	"javaver/internal/registry"
)

// ErrPermission means the environment store refused the new PATH.
var ErrPermission = errors.New("the system PATH could not be written")

// PermissionError wraps the store's refusal to write PATH.
type PermissionError struct {
	Err error
}

func (e *PermissionError) Error() string {
	if errors.Is(e.Err, errors.ErrUnsupported) {
		return fmt.Sprintf("%s: %v (only Windows has a machine PATH to change; preview with --dry-run and update PATH in your shell profile)", ErrPermission, e.Err)
	}
	return fmt.Sprintf("%s: %v (administrator rights are required to change the machine PATH; re-run from an elevated terminal)", ErrPermission, e.Err)
}

func (e *PermissionError) Unwrap() error { return e.Err }

func (e *PermissionError) Is(target error) bool { return target == ErrPermission }

// UnknownSDKError is returned when the requested name is not registered.
type UnknownSDKError struct {
	Name string
}

func (e *UnknownSDKError) Error() string {
	return fmt.Sprintf("there is no SDK registered under the name %q", e.Name)
}

func (e *UnknownSDKError) Is(target error) bool { return target == registry.ErrUnknownSDK }
