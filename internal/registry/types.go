package registry

import (
	"path/filepath"
	"runtime"
)

// Entry is one named SDK installation.
type Entry struct {
	Name string `json:"name" yaml:"name"`
	Path string `json:"path" yaml:"path"`
}

// BinDir returns the directory that goes on PATH for this SDK.
func (e Entry) BinDir() string {
	return filepath.Join(e.Path, "bin")
}

// document is the on-disk shape of the registry file. The "sdk" key keeps
// files written by earlier javaver releases readable.
type document struct {
	SDK []Entry `json:"sdk"`
}

// Validator decides whether a directory is a usable SDK root.
type Validator interface {
	IsValidSdkRoot(path string) bool
}

// ValidatorFunc adapts a plain function to Validator.
type ValidatorFunc func(path string) bool

func (f ValidatorFunc) IsValidSdkRoot(path string) bool { return f(path) }

func javaBinaryHint() string {
	if runtime.GOOS == "windows" {
		return `bin\java.exe`
	}
	return "bin/java"
}
