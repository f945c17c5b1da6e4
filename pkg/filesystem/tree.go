package filesystem

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/hyprlayer/pkg/types"
)

// DirMode is used for every directory hyprlayer creates
const DirMode fs.FileMode = 0755

// Exists reports whether path exists without following a final symlink
func Exists(fsys types.FS, path string) bool {
	_, err := fsys.Lstat(path)
	return err == nil
}

// IsDir reports whether path resolves to a directory, following symlinks
func IsDir(fsys types.FS, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && info.IsDir()
}

// OpenPermissions makes every real directory under root searchable and
// writable by its owner so the tree can be removed. Symlinks are not
// followed and file modes are left alone: files under searchable/ are hard
// links sharing their mode with the notes they mirror.
func OpenPermissions(fsys types.FS, root string) error {
	info, err := fsys.Lstat(root)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if !info.IsDir() {
		return nil
	}

	if err := fsys.Chmod(root, DirMode); err != nil {
		return err
	}

	entries, err := fsys.ReadDir(root)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.Type()&fs.ModeSymlink != 0 || !entry.IsDir() {
			continue
		}
		if err := OpenPermissions(fsys, filepath.Join(root, entry.Name())); err != nil {
			return err
		}
	}
	return nil
}

// RemoveTree removes root after forcing its directory permissions open.
// A missing root is not an error.
func RemoveTree(fsys types.FS, root string) error {
	if !Exists(fsys, root) {
		return nil
	}
	if err := OpenPermissions(fsys, root); err != nil {
		return err
	}
	return fsys.RemoveAll(root)
}
