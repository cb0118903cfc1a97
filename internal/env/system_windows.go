//go:build windows

package env

import (
	"errors"
	"fmt"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

const (
	hwndBroadcast    = 0xFFFF
	wmSettingChange  = 0x001A
	smtoAbortIfHung  = 0x0002
	broadcastTimeout = 5000 // milliseconds
)

// SystemEnvKey is the HKLM key holding machine-wide environment variables.
const SystemEnvKey = `SYSTEM\CurrentControlSet\Control\Session Manager\Environment`

var (
	user32              = windows.NewLazySystemDLL("user32.dll")
	sendMessageTimeoutW = user32.NewProc("SendMessageTimeoutW")
)

// SystemStore reads and writes the machine-wide Path value in the registry.
// Writing requires an elevated process.
type SystemStore struct {
	key string
}

// NewSystemStore returns the Store for the machine environment.
func NewSystemStore() Store {
	return &SystemStore{key: SystemEnvKey}
}

func (s *SystemStore) Read() (string, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, s.key, registry.QUERY_VALUE)
	if err != nil {
		return "", fmt.Errorf("failed to open registry key: %w", err)
	}
	defer k.Close()

	value, _, err := k.GetStringValue(PathVar)
	if errors.Is(err, registry.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", PathVar, err)
	}
	return value, nil
}

// WriteAll stores value as REG_EXPAND_SZ so %VAR% references in other
// entries keep expanding.
func (s *SystemStore) WriteAll(value string) error {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, s.key, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("failed to open registry key for writing: %w", err)
	}
	defer k.Close()

	if err := k.SetExpandStringValue(PathVar, value); err != nil {
		return fmt.Errorf("failed to write %s: %w", PathVar, err)
	}
	return nil
}

// Broadcast sends WM_SETTINGCHANGE("Environment") to all top-level windows,
// giving hung windows up to five seconds before moving on.
func (s *SystemStore) Broadcast() error {
	param, err := syscall.UTF16PtrFromString("Environment")
	if err != nil {
		return err
	}
	var result uintptr
	ret, _, callErr := sendMessageTimeoutW.Call(
		uintptr(hwndBroadcast),
		uintptr(wmSettingChange),
		0,
		uintptr(unsafe.Pointer(param)),
		uintptr(smtoAbortIfHung),
		uintptr(broadcastTimeout),
		uintptr(unsafe.Pointer(&result)),
	)
	if ret == 0 {
		return fmt.Errorf("WM_SETTINGCHANGE broadcast failed: %w", callErr)
	}
	return nil
}

// IsAdmin reports whether the process token belongs to the Administrators group.
func IsAdmin() bool {
	var sid *windows.SID
	err := windows.AllocateAndInitializeSid(
		&windows.SECURITY_NT_AUTHORITY,
		2,
		windows.SECURITY_BUILTIN_DOMAIN_RID,
		windows.DOMAIN_ALIAS_RID_ADMINS,
		0, 0, 0, 0, 0, 0,
		&sid)
	if err != nil {
		return false
	}
	defer windows.FreeSid(sid)

	member, err := windows.Token(0).IsMember(sid)
	if err != nil {
		return false
	}
	return member
}
