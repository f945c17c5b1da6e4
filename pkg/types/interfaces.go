package types

import (
	"io/fs"
)

// FS is the filesystem interface required for hyprlayer operations.
// The symlink provisioner and the search index builder both go through it so
// tests can inject failures for individual paths.
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Rename(oldpath, newpath string) error
	Chmod(name string, mode fs.FileMode) error

	// Directory operations
	Mkdir(path string, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	ReadDir(name string) ([]fs.DirEntry, error)

	// Link operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)
	Link(oldname, newname string) error
	EvalSymlinks(path string) (string, error)

	// Removal
	Remove(name string) error
	RemoveAll(path string) error
}
