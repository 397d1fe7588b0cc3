// Package fs provides the folder access capability consumed by the gallery
// engine. A FolderAccess is an opaque, permission-checked handle to one
// backing folder; the OS-backed implementation lives here, and tests inject
// fakes.
package fs

import (
	"io"
	"time"
)

// AccessMode selects the permission level being queried or requested.
type AccessMode int

const (
	ModeRead AccessMode = iota
	ModeReadWrite
)

func (m AccessMode) String() string {
	if m == ModeReadWrite {
		return "readwrite"
	}
	return "read"
}

// Permission is the result of a permission query or request.
type Permission int

const (
	PermissionDenied Permission = iota
	PermissionGranted
)

// Entry describes one file discovered while walking a folder.
type Entry struct {
	Name    string
	RelPath string // path from the folder root, "/"-separated
	Size    int64
	ModTime time.Time
}

// FolderAccess is the capability owned by exactly one gallery.
// Its Ref is the opaque reference persisted in the record store.
type FolderAccess interface {
	// Ref returns the persistable reference to the folder.
	Ref() string

	// QueryPermission reports the current permission state without
	// prompting or probing beyond a cheap check.
	QueryPermission(mode AccessMode) Permission

	// RequestPermission actively re-requests access. On the OS
	// implementation this is a fresh probe; fakes may model a user prompt.
	RequestPermission(mode AccessMode) Permission

	// Walk enumerates all files under the folder depth-first, calling fn
	// for each. Unreadable entries are skipped, not reported as errors.
	Walk(fn func(e Entry) error) error

	// ReadFile returns the content and modification time of a file given
	// its "/"-separated path relative to the folder root.
	ReadFile(relPath string) ([]byte, time.Time, error)

	// CreateFile creates a new file directly under the folder root.
	// Fails if a file of that name already exists.
	CreateFile(name string) (io.WriteCloser, error)
}
