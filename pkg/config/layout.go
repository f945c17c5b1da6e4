package config

import (
	"path/filepath"

	"github.com/arthur-debert/hyprlayer/pkg/errors"
	"github.com/arthur-debert/hyprlayer/pkg/paths"
)

// Layout holds the physical directories of a thoughts repository for one
// mapped code repository and user. All paths are absolute with ~ expanded.
type Layout struct {
	ThoughtsRepo string
	ReposRoot    string

	// Per-repository directories; empty for unmapped repositories
	RepoDir   string
	UserDir   string
	SharedDir string

	GlobalDir       string
	GlobalUserDir   string
	GlobalSharedDir string
}

// Layout expands the effective configuration into physical paths
func (e EffectiveConfig) Layout(user string) (Layout, error) {
	repo, err := paths.ExpandHome(e.ThoughtsRepo)
	if err != nil {
		return Layout{}, err
	}
	if repo == "" {
		return Layout{}, errors.New(errors.ErrConfigInvalid, "thoughts repository path is empty")
	}

	l := Layout{
		ThoughtsRepo: repo,
		ReposRoot:    filepath.Join(repo, e.ReposDir),
		GlobalDir:    filepath.Join(repo, e.GlobalDir),
	}
	l.GlobalUserDir = filepath.Join(l.GlobalDir, user)
	l.GlobalSharedDir = filepath.Join(l.GlobalDir, paths.SharedDirName)

	if e.IsMapped() {
		l.RepoDir = filepath.Join(l.ReposRoot, e.MappedName)
		l.UserDir = filepath.Join(l.RepoDir, user)
		l.SharedDir = filepath.Join(l.RepoDir, paths.SharedDirName)
	}
	return l, nil
}

// Directories lists every directory init must create, parents first
func (l Layout) Directories() []string {
	dirs := []string{l.ThoughtsRepo, l.ReposRoot}
	if l.RepoDir != "" {
		dirs = append(dirs, l.RepoDir, l.UserDir, l.SharedDir)
	}
	return append(dirs, l.GlobalDir, l.GlobalUserDir, l.GlobalSharedDir)
}
