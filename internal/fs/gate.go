package fs

import "galleria/internal/debug"

// VerifyAccess is the permission gate in front of every scan and write.
// It queries the current permission state and, if not already granted,
// actively requests it once. All failure paths resolve to false; callers
// skip the gallery (at load time) or abort the operation (at write time).
func VerifyAccess(folder FolderAccess, needsWrite bool) bool {
	mode := ModeRead
	if needsWrite {
		mode = ModeReadWrite
	}

	if folder.QueryPermission(mode) == PermissionGranted {
		return true
	}
	if folder.RequestPermission(mode) == PermissionGranted {
		debug.Log(debug.FS, "Access granted after request: %s mode=%s", folder.Ref(), mode)
		return true
	}
	debug.Log(debug.FS, "Access denied: %s mode=%s", folder.Ref(), mode)
	return false
}
