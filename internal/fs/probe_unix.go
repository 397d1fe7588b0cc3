//go:build unix

package fs

import "golang.org/x/sys/unix"

// probeAccess checks whether the current process can read (and optionally
// write) the directory, using access(2).
func probeAccess(path string, write bool) bool {
	mode := uint32(unix.R_OK | unix.X_OK)
	if write {
		mode |= unix.W_OK
	}
	return unix.Access(path, mode) == nil
}
