// Package symlink creates and removes the thoughts/ directory of a code
// repository: a plain directory holding three symlinks into the physical
// thoughts repository.
package symlink

import (
	stderrors "errors"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/hyprlayer/pkg/config"
	"github.com/arthur-debert/hyprlayer/pkg/errors"
	"github.com/arthur-debert/hyprlayer/pkg/filesystem"
	"github.com/arthur-debert/hyprlayer/pkg/logging"
	"github.com/arthur-debert/hyprlayer/pkg/paths"
	"github.com/arthur-debert/hyprlayer/pkg/types"
	"github.com/rs/zerolog"
)

// PermissionHelp is appended to SYMLINK_PERMISSION errors
const PermissionHelp = "creating symlinks requires extra privileges on this system; " +
	"either run the command as Administrator, or enable Developer Mode " +
	"(Settings > Privacy & security > For developers)"

// Link is one entry of thoughts/
type Link struct {
	Name   string
	Target string
}

// Provisioner manages thoughts/ inside code repositories
type Provisioner struct {
	fs     types.FS
	logger zerolog.Logger
}

// NewProvisioner creates a Provisioner on the given filesystem
func NewProvisioner(fsys types.FS) *Provisioner {
	return &Provisioner{
		fs:     fsys,
		logger: logging.GetLogger("symlink"),
	}
}

// Links returns the three entries thoughts/ must contain for layout
func Links(layout config.Layout, user string) []Link {
	return []Link{
		{Name: user, Target: layout.UserDir},
		{Name: paths.SharedDirName, Target: layout.SharedDir},
		{Name: paths.GlobalLinkName, Target: layout.GlobalDir},
	}
}

// Provision recreates <codeRepo>/thoughts with the three symlinks. The
// targets must already exist. A failed symlink leaves earlier ones in place;
// calling Provision again starts from scratch.
func (p *Provisioner) Provision(codeRepo string, layout config.Layout, user string) error {
	done := logging.LogOperationStart(p.logger, "provision")
	defer done()

	if layout.RepoDir == "" {
		return errors.New(errors.ErrRepoNotMapped, "cannot create thoughts links for an unmapped repository").
			WithDetail("repo", codeRepo)
	}

	links := Links(layout, user)
	for _, link := range links {
		if !filesystem.IsDir(p.fs, link.Target) {
			return errors.Newf(errors.ErrSymlinkTargetMissing, "symlink target %s does not exist", link.Target).
				WithDetail("target", link.Target)
		}
	}

	thoughtsDir := paths.ThoughtsDir(codeRepo)
	if filesystem.Exists(p.fs, thoughtsDir) {
		p.logger.Debug().Str("path", thoughtsDir).Msg("Removing existing thoughts directory")
		if err := filesystem.RemoveTree(p.fs, thoughtsDir); err != nil {
			return errors.Wrapf(err, errors.ErrFileRemove, "failed to remove %s", thoughtsDir)
		}
	}

	if err := p.fs.MkdirAll(thoughtsDir, filesystem.DirMode); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", thoughtsDir)
	}

	for _, link := range links {
		linkPath := filepath.Join(thoughtsDir, link.Name)
		if err := p.fs.Symlink(link.Target, linkPath); err != nil {
			return classifySymlinkError(err, linkPath, link.Target)
		}
		p.logger.Debug().Str("link", linkPath).Str("target", link.Target).Msg("Created symlink")
	}

	p.logger.Info().Str("path", thoughtsDir).Int("links", len(links)).Msg("Provisioned thoughts directory")
	return nil
}

// Teardown removes thoughts/searchable (forcing permissions open) and then
// thoughts/ itself. A missing thoughts/ is not an error.
func (p *Provisioner) Teardown(codeRepo string) error {
	thoughtsDir := paths.ThoughtsDir(codeRepo)
	searchable := paths.SearchableDir(thoughtsDir)

	if err := filesystem.RemoveTree(p.fs, searchable); err != nil {
		return errors.Wrapf(err, errors.ErrFileRemove, "failed to remove %s", searchable)
	}
	if err := p.fs.RemoveAll(thoughtsDir); err != nil {
		return errors.Wrapf(err, errors.ErrFileRemove, "failed to remove %s", thoughtsDir)
	}

	p.logger.Info().Str("path", thoughtsDir).Msg("Removed thoughts directory")
	return nil
}

// Inspect reports where each entry of thoughts/ currently points. Missing
// entries have an empty Target.
func (p *Provisioner) Inspect(codeRepo string, layout config.Layout, user string) []Link {
	thoughtsDir := paths.ThoughtsDir(codeRepo)
	expected := Links(layout, user)
	found := make([]Link, 0, len(expected))
	for _, link := range expected {
		target, err := p.fs.Readlink(filepath.Join(thoughtsDir, link.Name))
		if err != nil {
			target = ""
		}
		found = append(found, Link{Name: link.Name, Target: target})
	}
	return found
}

func classifySymlinkError(err error, linkPath, target string) error {
	if stderrors.Is(err, fs.ErrPermission) || isPrivilegeError(err) {
		return errors.Wrapf(err, errors.ErrSymlinkPermission, "cannot create symlink %s: %s", linkPath, PermissionHelp).
			WithDetail("link", linkPath).
			WithDetail("target", target)
	}
	return errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to create symlink %s -> %s", linkPath, target).
		WithDetail("link", linkPath).
		WithDetail("target", target)
}
