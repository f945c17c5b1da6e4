//go:build !windows

package symlink

// isPrivilegeError is Windows-only; EPERM and EACCES already match
// fs.ErrPermission elsewhere.
func isPrivilegeError(err error) bool {
	return false
}
