package fs

import (
	"fmt"
	"io"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"

	"galleria/internal/debug"
)

// FilePermission is the mode for files created through a folder capability.
const FilePermission = 0o644

// System opens OS-backed folder capabilities. It stands in for the folder
// picker: callers hand it a path chosen by the user.
type System struct{}

// NewSystem creates the OS folder provider.
func NewSystem() *System {
	return &System{}
}

// Open validates that path is an existing directory and returns a capability
// for it. The returned capability's Ref is the absolute path, which is what
// gets persisted.
func (s *System) Open(path string) (FolderAccess, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", abs)
	}
	debug.Log(debug.FS, "Opened folder capability for %s", abs)
	return &osFolder{path: abs}, nil
}

// osFolder is the OS-backed FolderAccess implementation.
type osFolder struct {
	path string
}

func (f *osFolder) Ref() string {
	return f.path
}

func (f *osFolder) QueryPermission(mode AccessMode) Permission {
	if probeAccess(f.path, mode == ModeReadWrite) {
		return PermissionGranted
	}
	debug.Log(debug.FS, "Permission query denied: %s mode=%s", f.path, mode)
	return PermissionDenied
}

// RequestPermission re-probes access. The OS has no interactive prompt, so
// this only picks up permissions that changed since the query.
func (f *osFolder) RequestPermission(mode AccessMode) Permission {
	perm := f.QueryPermission(mode)
	debug.Log(debug.FS, "Permission request: %s mode=%s -> %v", f.path, mode, perm == PermissionGranted)
	return perm
}

func (f *osFolder) Walk(fn func(e Entry) error) error {
	var mu sync.Mutex

	conf := &fastwalk.Config{
		Follow: false, // Don't follow symlinks to avoid loops
	}

	return fastwalk.Walk(conf, f.path, func(fullPath string, d iofs.DirEntry, err error) error {
		if err != nil {
			debug.Log(debug.SCAN_ENTRY, "Walk: error at %q: %v", fullPath, err)
			return nil // Skip errors, continue walking
		}

		// Skip the root directory itself
		if fullPath == f.path {
			return nil
		}

		if d.IsDir() {
			return nil
		}

		info, err := fastwalk.StatDirEntry(fullPath, d)
		if err != nil {
			debug.Log(debug.SCAN_ENTRY, "Walk: skipping %q: stat error: %v", d.Name(), err)
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(f.path, fullPath)
		if err != nil {
			return nil
		}

		entry := Entry{
			Name:    d.Name(),
			RelPath: filepath.ToSlash(rel),
			Size:    info.Size(),
			ModTime: info.ModTime(),
		}

		// fastwalk may call us from multiple goroutines; serialize fn
		mu.Lock()
		defer mu.Unlock()
		return fn(entry)
	})
}

func (f *osFolder) ReadFile(relPath string) ([]byte, time.Time, error) {
	if strings.Contains(relPath, "..") {
		return nil, time.Time{}, fmt.Errorf("invalid relative path %q", relPath)
	}
	full := filepath.Join(f.path, filepath.FromSlash(relPath))

	info, err := os.Stat(full)
	if err != nil {
		return nil, time.Time{}, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, time.Time{}, err
	}
	return data, info.ModTime(), nil
}

func (f *osFolder) CreateFile(name string) (io.WriteCloser, error) {
	if name == "" || strings.ContainsAny(name, "/\\") {
		return nil, fmt.Errorf("invalid file name %q", name)
	}
	full := filepath.Join(f.path, name)
	file, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, FilePermission)
	if err != nil {
		return nil, err
	}
	debug.Log(debug.FS, "Created file %s", full)
	return file, nil
}
