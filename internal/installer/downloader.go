package installer

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
)

// ProgressFunc receives the bytes written so far and the expected total.
// total is -1 when the server does not announce a length.
type ProgressFunc func(done, total int64)

// Download fetches url into dest.
func Download(ctx context.Context, client *http.Client, url, dest string, progress ProgressFunc) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed with status: %d", resp.StatusCode)
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	w := io.Writer(out)
	if progress != nil {
		w = io.MultiWriter(out, &progressWriter{total: resp.ContentLength, fn: progress})
	}

	written, err := io.Copy(w, resp.Body)
	if err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if resp.ContentLength > 0 && written != resp.ContentLength {
		return fmt.Errorf("incomplete download: got %d bytes, expected %d", written, resp.ContentLength)
	}
	return out.Close()
}

type progressWriter struct {
	total int64
	done  int64
	fn    ProgressFunc
}

func (pw *progressWriter) Write(p []byte) (int, error) {
	pw.done += int64(len(p))
	pw.fn(pw.done, pw.total)
	return len(p), nil
}

// VerifyChecksum checks the SHA-256 of the file at path.
func VerifyChecksum(path, expected string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return fmt.Errorf("failed to calculate checksum: %w", err)
	}
	actual := hex.EncodeToString(h.Sum(nil))
	if !strings.EqualFold(actual, expected) {
		return fmt.Errorf("%w: expected %s, got %s", ErrChecksum, expected, actual)
	}
	return nil
}

// Extract unpacks a .zip, .tar.gz or .tar.xz archive into dest and returns
// the path of its single top-level directory.
func Extract(archive, dest string) (string, error) {
	var extract func(string, *sandbox) (string, error)
	switch {
	case strings.HasSuffix(archive, ".zip"):
		extract = extractZip
	case strings.HasSuffix(archive, ".tar.gz"), strings.HasSuffix(archive, ".tgz"):
		extract = extractTarGz
	case strings.HasSuffix(archive, ".tar.xz"):
		extract = extractTarXz
	default:
		return "", fmt.Errorf("unsupported archive format: %s", filepath.Base(archive))
	}
	box, err := newSandbox(dest)
	if err != nil {
		return "", err
	}
	root, err := extract(archive, box)
	if err != nil {
		return "", err
	}
	if root == "" {
		return "", fmt.Errorf("archive %s has no top-level directory", filepath.Base(archive))
	}
	return filepath.Join(dest, root), nil
}

// safeJoin joins name onto dest, refusing entries that escape it.
func safeJoin(dest, name string) (string, error) {
	p := filepath.Join(dest, name)
	if !within(dest, p) {
		return "", fmt.Errorf("archive entry %q escapes the target directory", name)
	}
	return p, nil
}

func within(dir, p string) bool {
	dir = filepath.Clean(dir)
	return p == dir || strings.HasPrefix(p, dir+string(os.PathSeparator))
}

// sandbox confines extraction to dest, following symlinks already written
// to disk by earlier entries.
type sandbox struct {
	dest     string
	resolved string
}

func newSandbox(dest string) (*sandbox, error) {
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	resolved, err := filepath.EvalSymlinks(dest)
	if err != nil {
		return nil, err
	}
	return &sandbox{dest: filepath.Clean(dest), resolved: resolved}, nil
}

// path returns where name is written. The entry itself must not be a
// symlink and its parent must resolve inside dest.
func (s *sandbox) path(name string) (string, error) {
	target, err := safeJoin(s.dest, name)
	if err != nil {
		return "", err
	}
	if target == s.dest {
		return target, nil
	}
	if fi, err := os.Lstat(target); err == nil && fi.Mode()&fs.ModeSymlink != 0 {
		return "", fmt.Errorf("archive entry %q overwrites a symlink", name)
	}
	parent, err := resolveExisting(filepath.Dir(target))
	if err != nil {
		return "", fmt.Errorf("archive entry %q: %w", name, err)
	}
	if !within(s.resolved, parent) {
		return "", fmt.Errorf("archive entry %q escapes the target directory", name)
	}
	return target, nil
}

// resolveExisting evaluates symlinks in the longest existing prefix of p
// and appends the missing remainder.
func resolveExisting(p string) (string, error) {
	var rest string
	for {
		r, err := filepath.EvalSymlinks(p)
		if err == nil {
			return filepath.Join(r, rest), nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		if _, lerr := os.Lstat(p); lerr == nil {
			return "", fmt.Errorf("dangling symlink %s", p)
		}
		parent := filepath.Dir(p)
		if parent == p {
			return "", err
		}
		rest = filepath.Join(filepath.Base(p), rest)
		p = parent
	}
}

func topLevel(name string) string {
	name = strings.TrimPrefix(filepath.ToSlash(name), "./")
	first, _, _ := strings.Cut(name, "/")
	return first
}

func extractZip(archive string, box *sandbox) (string, error) {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return "", fmt.Errorf("failed to open zip: %w", err)
	}
	defer r.Close()

	var root string
	for _, f := range r.File {
		if root == "" {
			root = topLevel(f.Name)
		}
		target, err := box.path(f.Name)
		if err != nil {
			return "", err
		}
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return "", err
			}
			continue
		}
		if err := writeEntry(target, f.Mode(), func() (io.ReadCloser, error) { return f.Open() }); err != nil {
			return "", err
		}
	}
	return root, nil
}

func extractTarGz(archive string, box *sandbox) (string, error) {
	f, err := os.Open(archive)
	if err != nil {
		return "", err
	}
	defer f.Close()

	gz, err := gzip.NewReader(f)
	if err != nil {
		return "", fmt.Errorf("failed to open gzip stream: %w", err)
	}
	defer gz.Close()
	return extractTar(gz, box)
}

func extractTarXz(archive string, box *sandbox) (string, error) {
	f, err := os.Open(archive)
	if err != nil {
		return "", err
	}
	defer f.Close()

	xr, err := xz.NewReader(f)
	if err != nil {
		return "", fmt.Errorf("failed to open xz stream: %w", err)
	}
	return extractTar(xr, box)
}

func extractTar(r io.Reader, box *sandbox) (string, error) {
	var root string
	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("failed to read tar: %w", err)
		}
		if root == "" && hdr.Name != "./" {
			root = topLevel(hdr.Name)
		}
		target, err := box.path(hdr.Name)
		if err != nil {
			return "", err
		}

		switch hdr.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return "", err
			}
		case tar.TypeReg:
			mode := os.FileMode(hdr.Mode).Perm()
			if err := writeEntry(target, mode, func() (io.ReadCloser, error) { return io.NopCloser(tr), nil }); err != nil {
				return "", err
			}
		case tar.TypeSymlink:
			if filepath.IsAbs(hdr.Linkname) {
				return "", fmt.Errorf("archive entry %q links outside the target directory", hdr.Name)
			}
			if _, err := safeJoin(box.dest, filepath.Join(filepath.Dir(hdr.Name), hdr.Linkname)); err != nil {
				return "", err
			}
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return "", err
			}
			if err := os.Symlink(hdr.Linkname, target); err != nil {
				return "", err
			}
		}
	}
	return root, nil
}

func writeEntry(target string, mode os.FileMode, open func() (io.ReadCloser, error)) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	rc, err := open()
	if err != nil {
		return fmt.Errorf("failed to open archive entry: %w", err)
	}
	defer rc.Close()

	if mode == 0 {
		mode = 0o644
	}
	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return fmt.Errorf("failed to extract file: %w", err)
	}
	return out.Close()
}
