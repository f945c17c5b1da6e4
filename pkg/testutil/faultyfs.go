package testutil

import (
	"io/fs"
	"path/filepath"
	"sync"

	"github.com/arthur-debert/hyprlayer/pkg/types"
)

// FaultyFS wraps a types.FS and fails selected operations on selected paths
type FaultyFS struct {
	types.FS

	mu       sync.Mutex
	failures map[string]error
	calls    []string
}

// NewFaultyFS wraps inner
func NewFaultyFS(inner types.FS) *FaultyFS {
	return &FaultyFS{FS: inner, failures: map[string]error{}}
}

// FailOn makes op (e.g. "Symlink", "Link") on path return err. For
// two-path operations the path is the one being created.
func (f *FaultyFS) FailOn(op, path string, err error) *FaultyFS {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[op+":"+filepath.Clean(path)] = err
	return f
}

// Calls returns the recorded "op:path" entries for failing-capable ops
func (f *FaultyFS) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *FaultyFS) check(op, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := op + ":" + filepath.Clean(path)
	f.calls = append(f.calls, key)
	return f.failures[key]
}

func (f *FaultyFS) Symlink(oldname, newname string) error {
	if err := f.check("Symlink", newname); err != nil {
		return &fs.PathError{Op: "symlink", Path: newname, Err: err}
	}
	return f.FS.Symlink(oldname, newname)
}

func (f *FaultyFS) Link(oldname, newname string) error {
	if err := f.check("Link", newname); err != nil {
		return &fs.PathError{Op: "link", Path: newname, Err: err}
	}
	return f.FS.Link(oldname, newname)
}

func (f *FaultyFS) MkdirAll(path string, perm fs.FileMode) error {
	if err := f.check("MkdirAll", path); err != nil {
		return &fs.PathError{Op: "mkdir", Path: path, Err: err}
	}
	return f.FS.MkdirAll(path, perm)
}

func (f *FaultyFS) RemoveAll(path string) error {
	if err := f.check("RemoveAll", path); err != nil {
		return &fs.PathError{Op: "remove", Path: path, Err: err}
	}
	return f.FS.RemoveAll(path)
}

func (f *FaultyFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if err := f.check("WriteFile", name); err != nil {
		return &fs.PathError{Op: "write", Path: name, Err: err}
	}
	return f.FS.WriteFile(name, data, perm)
}
