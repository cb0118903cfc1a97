package java

import (
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"sort"
	"strings"

	"javaver/internal/log"
	"javaver/internal/registry"
)

// Detector validates SDK roots and finds them under well-known directories.
type Detector struct {
	roots  []string
	exe    string
	logger log.Logger
}

// Option configures a Detector.
type Option func(*Detector)

// WithRoots replaces the built-in search roots.
func WithRoots(roots ...string) Option {
	return func(d *Detector) { d.roots = roots }
}

// WithLogger sets the logger. Defaults to log.Default().
func WithLogger(l log.Logger) Option {
	return func(d *Detector) { d.logger = l }
}

// NewDetector creates a Detector searching DefaultRoots.
func NewDetector(opts ...Option) *Detector {
	d := &Detector{
		roots:  DefaultRoots(),
		exe:    executableName(),
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DefaultRoots returns the directories vendors install JDKs into.
func DefaultRoots() []string {
	if runtime.GOOS != "windows" {
		return []string{"/usr/lib/jvm"}
	}
	return []string{
		`C:\Program Files\Java`,
		`C:\Program Files\Eclipse Adoptium`,
		`C:\Program Files (x86)\Java`,
		`C:\Program Files\Eclipse Foundation`,
		`C:\Program Files\Zulu`,
		`C:\Program Files\Amazon Corretto`,
		`C:\Program Files\Microsoft`,
	}
}

// Roots returns the roots Discover searches before any extra ones.
func (d *Detector) Roots() []string {
	out := make([]string, len(d.roots))
	copy(out, d.roots)
	return out
}

func executableName() string {
	if runtime.GOOS == "windows" {
		return "java.exe"
	}
	return "java"
}

// IsValidSdkRoot reports whether path is a directory with a java executable
// in its bin subdirectory.
func (d *Detector) IsValidSdkRoot(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}
	bin, err := os.Stat(filepath.Join(path, "bin", d.exe))
	return err == nil && bin.Mode().IsRegular()
}

// Discover returns a candidate for every immediate subdirectory of the
// search roots (built-in roots first, then extra) that is a valid SDK root.
// Candidates are named after their directory. Within one root they are
// ordered newest Java version first.
func (d *Detector) Discover(extra ...string) []registry.Entry {
	var out []registry.Entry
	seenRoot := make(map[string]bool)
	seenPath := make(map[string]bool)

	for _, root := range append(d.Roots(), extra...) {
		root = filepath.Clean(strings.TrimSpace(root))
		if root == "" || root == "." {
			continue
		}
		key := strings.ToLower(root)
		if seenRoot[key] {
			continue
		}
		seenRoot[key] = true

		d.logger.Info("searching for SDKs", "root", root)
		entries, err := os.ReadDir(root)
		if err != nil {
			d.logger.Info("skipping search root", "root", root, "error", err)
			continue
		}

		var found []candidate
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			path := filepath.Join(root, entry.Name())
			if !d.IsValidSdkRoot(path) {
				d.logger.Debug("not an SDK root", "path", path)
				continue
			}
			if seenPath[strings.ToLower(path)] {
				continue
			}
			seenPath[strings.ToLower(path)] = true
			found = append(found, candidate{
				entry:   registry.Entry{Name: entry.Name(), Path: path},
				version: d.quickVersion(path),
			})
		}

		sortNewestFirst(found)
		for _, c := range found {
			out = append(out, c.entry)
		}
	}
	return out
}

type candidate struct {
	entry   registry.Entry
	version string
}

func sortNewestFirst(cs []candidate) {
	sort.SliceStable(cs, func(i, j int) bool {
		vi, erri := ParseVersion(cs[i].version)
		vj, errj := ParseVersion(cs[j].version)
		switch {
		case erri == nil && errj == nil:
			if !vi.Equal(vj) {
				return vi.GreaterThan(vj)
			}
		case erri == nil:
			return true
		case errj == nil:
			return false
		}
		return cs[i].entry.Name < cs[j].entry.Name
	})
}

// Version returns the Java version of the SDK at path, trying the release
// file, then `java -version`, then the directory name.
func (d *Detector) Version(path string) string {
	if v := readReleaseVersion(path); v != "" {
		return v
	}

	out, err := exec.Command(filepath.Join(path, "bin", d.exe), "-version").CombinedOutput()
	if err == nil {
		if v := parseVersionOutput(string(out)); v != "" {
			return v
		}
	}

	return parseVersionFromDirName(filepath.Base(path))
}

// quickVersion avoids starting a JVM; used while scanning many directories.
func (d *Detector) quickVersion(path string) string {
	if v := readReleaseVersion(path); v != "" {
		return v
	}
	return parseVersionFromDirName(filepath.Base(path))
}

var releaseVersionRe = regexp.MustCompile(`(?m)^JAVA_VERSION="([^"]+)"`)

// readReleaseVersion reads JAVA_VERSION from the release file every JDK
// since 9 (and most 8 builds) ship in their root.
func readReleaseVersion(path string) string {
	data, err := os.ReadFile(filepath.Join(path, "release"))
	if err != nil {
		return ""
	}
	if m := releaseVersionRe.FindStringSubmatch(string(data)); len(m) > 1 {
		return m[1]
	}
	return ""
}

var versionOutputRe = regexp.MustCompile(`version\s+"([^"]+)"`)

// parseVersionOutput extracts the quoted version from `java -version`.
func parseVersionOutput(output string) string {
	if m := versionOutputRe.FindStringSubmatch(output); len(m) > 1 {
		return m[1]
	}
	return ""
}

var dirNamePatterns = []*regexp.Regexp{
	regexp.MustCompile(`jdk(1\.\d+\.\d+_\d+)`),
	regexp.MustCompile(`jdk-?(\d+(?:\.\d+)*(?:_\d+)?)`),
	regexp.MustCompile(`(?:java|zulu|corretto|temurin)-?(\d+(?:\.\d+)*)`),
}

// parseVersionFromDirName handles names like "jdk-17.0.2", "jdk1.8.0_322",
// "zulu-21" and "java-11-openjdk". Returns "" when nothing matches.
func parseVersionFromDirName(name string) string {
	name = strings.ToLower(name)
	for _, re := range dirNamePatterns {
		if m := re.FindStringSubmatch(name); len(m) > 1 {
			return m[1]
		}
	}
	return ""
}
