//go:build !unix

package fs

import "os"

// probeAccess approximates access(2) on platforms without it: readability is
// tested by opening the directory, writability by the permission bits.
func probeAccess(path string, write bool) bool {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}
	dir, err := os.Open(path)
	if err != nil {
		return false
	}
	dir.Close()
	if write {
		return info.Mode().Perm()&0o200 != 0
	}
	return true
}
