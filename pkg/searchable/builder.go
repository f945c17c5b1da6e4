// Package searchable builds thoughts/searchable, a hard-link mirror of every
// real file reachable under thoughts/, for tools that do not follow symlinks.
package searchable

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/hyprlayer/pkg/errors"
	"github.com/arthur-debert/hyprlayer/pkg/filesystem"
	"github.com/arthur-debert/hyprlayer/pkg/logging"
	"github.com/arthur-debert/hyprlayer/pkg/paths"
	"github.com/arthur-debert/hyprlayer/pkg/types"
	"github.com/rs/zerolog"
)

// Builder creates and removes the searchable mirror
type Builder struct {
	fs     types.FS
	logger zerolog.Logger
}

// NewBuilder creates a Builder on the given filesystem
func NewBuilder(fsys types.FS) *Builder {
	return &Builder{
		fs:     fsys,
		logger: logging.GetLogger("searchable"),
	}
}

// Skip reports whether an entry name is excluded from the mirror
func Skip(name string) bool {
	return strings.HasPrefix(name, ".") ||
		name == paths.SearchableDirName ||
		name == paths.GeneratedIndexFile
}

// Build removes any existing mirror under thoughtsDir and recreates it,
// returning the number of files linked. A missing thoughtsDir is
// NOT_INITIALIZED and nothing is created. Files that cannot be hard linked
// (for example across devices) are left out of the mirror and the count.
func (b *Builder) Build(thoughtsDir string) (int, error) {
	done := logging.LogOperationStart(b.logger, "build searchable index")
	defer done()

	if !filesystem.IsDir(b.fs, thoughtsDir) {
		return 0, errors.Newf(errors.ErrNotInitialized, "%s is not a directory", thoughtsDir).
			WithDetail("path", thoughtsDir)
	}

	searchDir := paths.SearchableDir(thoughtsDir)
	if err := b.Remove(thoughtsDir); err != nil {
		return 0, err
	}
	if err := b.fs.MkdirAll(searchDir, filesystem.DirMode); err != nil {
		return 0, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", searchDir)
	}

	files, err := b.Collect(thoughtsDir)
	if err != nil {
		return 0, err
	}

	linked := 0
	for _, rel := range files {
		source := filepath.Join(thoughtsDir, rel)
		real, err := b.fs.EvalSymlinks(source)
		if err != nil {
			b.logger.Debug().Err(err).Str("path", source).Msg("Cannot resolve file, skipping")
			continue
		}

		target := filepath.Join(searchDir, rel)
		if err := b.fs.MkdirAll(filepath.Dir(target), filesystem.DirMode); err != nil {
			return linked, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(target))
		}
		if err := b.fs.Link(real, target); err != nil {
			b.logger.Debug().Err(err).Str("source", real).Str("target", target).Msg("Cannot hard link, skipping")
			continue
		}
		linked++
	}

	b.logger.Info().Int("linked", linked).Int("files", len(files)).Str("path", searchDir).Msg("Built searchable index")
	return linked, nil
}

// Remove deletes thoughtsDir/searchable after forcing its permissions open
func (b *Builder) Remove(thoughtsDir string) error {
	searchDir := paths.SearchableDir(thoughtsDir)
	if err := filesystem.RemoveTree(b.fs, searchDir); err != nil {
		return errors.Wrapf(err, errors.ErrFileRemove, "failed to remove %s", searchDir)
	}
	return nil
}

// Collect lists the files reachable under thoughtsDir, following symlinks,
// as sorted paths relative to thoughtsDir. Each real directory is entered
// at most once, so symlink cycles terminate.
func (b *Builder) Collect(thoughtsDir string) ([]string, error) {
	visited := make(map[string]struct{})
	var files []string

	if err := b.collect(thoughtsDir, thoughtsDir, visited, &files); err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func (b *Builder) collect(dir, base string, visited map[string]struct{}, files *[]string) error {
	canonical := b.canonical(dir)
	if _, seen := visited[canonical]; seen {
		b.logger.Trace().Str("dir", dir).Str("canonical", canonical).Msg("Already visited, not descending")
		return nil
	}
	visited[canonical] = struct{}{}

	entries, err := b.fs.ReadDir(dir)
	if err != nil {
		if dir == base {
			return errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", dir)
		}
		b.logger.Debug().Err(err).Str("dir", dir).Msg("Cannot read directory, skipping")
		return nil
	}

	for _, entry := range entries {
		name := entry.Name()
		if Skip(name) {
			continue
		}
		path := filepath.Join(dir, name)

		isDir, isFile := entry.IsDir(), entry.Type().IsRegular()
		if entry.Type()&fs.ModeSymlink != 0 {
			info, err := b.fs.Stat(path)
			if err != nil {
				b.logger.Debug().Err(err).Str("path", path).Msg("Dangling symlink, skipping")
				continue
			}
			isDir, isFile = info.IsDir(), info.Mode().IsRegular()
		}

		switch {
		case isDir:
			if err := b.collect(path, base, visited, files); err != nil {
				return err
			}
		case isFile:
			rel, err := filepath.Rel(base, path)
			if err != nil {
				continue
			}
			*files = append(*files, rel)
		}
	}
	return nil
}

func (b *Builder) canonical(dir string) string {
	real, err := b.fs.EvalSymlinks(dir)
	if err != nil {
		real = dir
	}
	if abs, err := filepath.Abs(real); err == nil {
		return abs
	}
	return real
}
