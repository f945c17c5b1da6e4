//go:build windows

package symlink

import (
	stderrors "errors"

	"golang.org/x/sys/windows"
)

// isPrivilegeError detects the missing SeCreateSymbolicLinkPrivilege
func isPrivilegeError(err error) bool {
	return stderrors.Is(err, windows.ERROR_PRIVILEGE_NOT_HELD)
}
