// Package hooks installs the git hooks that keep thoughts/ out of code
// commits and sync the thoughts repository after each commit.
package hooks

import (
	"bytes"
	"context"
	"embed"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"text/template"

	"github.com/arthur-debert/hyprlayer/pkg/errors"
	"github.com/arthur-debert/hyprlayer/pkg/filesystem"
	"github.com/arthur-debert/hyprlayer/pkg/gitrepo"
	"github.com/arthur-debert/hyprlayer/pkg/logging"
	"github.com/arthur-debert/hyprlayer/pkg/types"
	"github.com/rs/zerolog"
)

const (
	// Version is embedded in every hook; older installed hooks are replaced
	Version = 3

	// Marker identifies hooks written by hyprlayer
	Marker = "hyprlayer thoughts"

	// BackupSuffix is appended to a foreign hook moved aside
	BackupSuffix = ".old"

	hookMode = 0755
)

// Names are the hooks managed by the installer, in install order
var Names = []string{"pre-commit", "post-commit"}

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

var versionLine = regexp.MustCompile(`(?m)^#\s*Version:\s*(\d+)\s*$`)

type hookData struct {
	Name    string
	Marker  string
	Version int
	Command string
}

// Installer writes hooks into a code repository
type Installer struct {
	fs     types.FS
	runner gitrepo.CommandRunner
	logger zerolog.Logger

	// Command is the executable the post-commit hook invokes
	Command string
}

// NewInstaller creates an Installer. The runner locates the hooks directory
// through git so that worktrees share the main repository's hooks.
func NewInstaller(fsys types.FS, runner gitrepo.CommandRunner) *Installer {
	return &Installer{
		fs:      fsys,
		runner:  runner,
		logger:  logging.GetLogger("hooks"),
		Command: "hyprlayer",
	}
}

// Render returns the current content of the named hook
func (i *Installer) Render(name string) (string, error) {
	var buf bytes.Buffer
	err := templates.ExecuteTemplate(&buf, name+".tmpl", hookData{
		Name:    name,
		Marker:  Marker,
		Version: Version,
		Command: i.Command,
	})
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInternal, "failed to render %s hook", name)
	}
	return buf.String(), nil
}

// HooksDir returns <git-common-dir>/hooks for codeRepo. Without a usable
// git binary it falls back to <codeRepo>/.git/hooks when .git is a directory.
func (i *Installer) HooksDir(ctx context.Context, codeRepo string) (string, error) {
	out, err := i.runner.Run(ctx, codeRepo, "git", "rev-parse", "--git-common-dir")
	if err == nil {
		common := strings.TrimSpace(string(out))
		if common != "" {
			if !filepath.IsAbs(common) {
				common = filepath.Join(codeRepo, common)
			}
			return filepath.Join(filepath.Clean(common), "hooks"), nil
		}
	}

	dotGit := filepath.Join(codeRepo, ".git")
	if filesystem.IsDir(i.fs, dotGit) {
		i.logger.Debug().Err(err).Msg("git rev-parse failed, using .git/hooks")
		return filepath.Join(dotGit, "hooks"), nil
	}
	if err == nil {
		return "", errors.Newf(errors.ErrHookInstall, "cannot locate git hooks directory for %s", codeRepo).
			WithDetail("path", codeRepo)
	}
	return "", errors.Wrapf(err, errors.ErrHookInstall, "cannot locate git hooks directory for %s", codeRepo).
		WithDetail("path", codeRepo)
}

// Install ensures every managed hook is present and current, returning the
// names of the hooks it wrote.
//
//   - missing hooks are written
//   - our own hooks are replaced only when their version is older
//   - a foreign hook is moved to <name>.old and chained from the new hook;
//     when <name>.old already exists the foreign hook is left alone
func (i *Installer) Install(ctx context.Context, codeRepo string) ([]string, error) {
	dir, err := i.HooksDir(ctx, codeRepo)
	if err != nil {
		return nil, err
	}
	if err := i.fs.MkdirAll(dir, filesystem.DirMode); err != nil {
		return nil, errors.Wrapf(err, errors.ErrDirCreate, "failed to create hooks directory %s", dir)
	}

	var updated []string
	for _, name := range Names {
		wrote, err := i.installOne(dir, name)
		if err != nil {
			return updated, err
		}
		if wrote {
			updated = append(updated, name)
		}
	}
	return updated, nil
}

func (i *Installer) installOne(dir, name string) (bool, error) {
	path := filepath.Join(dir, name)
	logger := i.logger.With().Str("hook", name).Str("path", path).Logger()

	existing, err := i.fs.ReadFile(path)
	switch {
	case err != nil && !filesystem.Exists(i.fs, path):
		logger.Debug().Msg("Hook missing, installing")

	case err != nil:
		return false, errors.Wrapf(err, errors.ErrFileAccess, "failed to read hook %s", path)

	case IsOurs(string(existing)):
		installed := ParseVersion(string(existing))
		if installed >= Version {
			logger.Debug().Int("version", installed).Msg("Hook is current")
			return false, nil
		}
		logger.Info().Int("from", installed).Int("to", Version).Msg("Upgrading hook")

	default:
		backup := path + BackupSuffix
		if filesystem.Exists(i.fs, backup) {
			logger.Warn().Str("backup", backup).Msg("Foreign hook present and backup slot taken, leaving it alone")
			return false, nil
		}
		if err := i.fs.Rename(path, backup); err != nil {
			return false, errors.Wrapf(err, errors.ErrHookInstall, "failed to back up existing hook %s", path)
		}
		logger.Info().Str("backup", backup).Msg("Moved foreign hook aside")
	}

	content, err := i.Render(name)
	if err != nil {
		return false, err
	}
	if err := i.fs.WriteFile(path, []byte(content), hookMode); err != nil {
		return false, errors.Wrapf(err, errors.ErrHookInstall, "failed to write hook %s", path)
	}
	if err := i.fs.Chmod(path, hookMode); err != nil {
		return false, errors.Wrapf(err, errors.ErrHookInstall, "failed to make hook %s executable", path)
	}
	return true, nil
}

// IsOurs reports whether hook content was written by hyprlayer
func IsOurs(content string) bool {
	return strings.Contains(content, Marker)
}

// ParseVersion returns the "# Version: N" value of a hook, 0 when absent
func ParseVersion(content string) int {
	m := versionLine.FindStringSubmatch(content)
	if m == nil {
		return 0
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return v
}
