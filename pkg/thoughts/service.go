package thoughts

import (
	"time"

	"github.com/arthur-debert/hyprlayer/pkg/config"
	"github.com/arthur-debert/hyprlayer/pkg/errors"
	"github.com/arthur-debert/hyprlayer/pkg/filesystem"
	"github.com/arthur-debert/hyprlayer/pkg/gitrepo"
	"github.com/arthur-debert/hyprlayer/pkg/hooks"
	"github.com/arthur-debert/hyprlayer/pkg/logging"
	"github.com/arthur-debert/hyprlayer/pkg/paths"
	"github.com/arthur-debert/hyprlayer/pkg/searchable"
	"github.com/arthur-debert/hyprlayer/pkg/symlink"
	"github.com/arthur-debert/hyprlayer/pkg/types"
	"github.com/arthur-debert/hyprlayer/pkg/ui/prompt"
	"github.com/rs/zerolog"
)

// SyncTimeFormat is the layout of the timestamp in generated sync messages
const SyncTimeFormat = "2006-01-02 15:04:05"

// InitialCommitMessage is used for the first commit of a new thoughts
// repository
const InitialCommitMessage = "Initial thoughts repository setup"

// DefaultGitignore is written to new thoughts repositories
const DefaultGitignore = "# OS files\n.DS_Store\nThumbs.db\n\n" +
	"# Editor files\n.vscode/\n.idea/\n*.swp\n*.swo\n*~\n\n" +
	"# Temporary files\n*.tmp\n*.bak\n"

// Service runs the thoughts flows. The exported fields are the
// collaborators; tests replace them with fakes.
type Service struct {
	FS          types.FS
	Prompter    prompt.Prompter
	OpenRepo    gitrepo.Opener
	InitRepo    gitrepo.Opener
	Provisioner *symlink.Provisioner
	Builder     *searchable.Builder
	Hooks       *hooks.Installer
	Now         func() time.Time

	logger zerolog.Logger
}

// New creates a Service on the real filesystem. runner executes git for
// transport and hook discovery.
func New(fsys types.FS, prompter prompt.Prompter, runner gitrepo.CommandRunner) *Service {
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	if runner == nil {
		runner = gitrepo.NewExecRunner()
	}

	return &Service{
		FS:       fsys,
		Prompter: prompter,
		OpenRepo: func(path string) (gitrepo.Repository, error) {
			r, err := gitrepo.Open(path)
			if err != nil {
				return nil, err
			}
			return r.WithTransport(gitrepo.NewCLITransport(path, runner)), nil
		},
		InitRepo: func(path string) (gitrepo.Repository, error) {
			r, err := gitrepo.Init(path)
			if err != nil {
				return nil, err
			}
			return r.WithTransport(gitrepo.NewCLITransport(path, runner)), nil
		},
		Provisioner: symlink.NewProvisioner(fsys),
		Builder:     searchable.NewBuilder(fsys),
		Hooks:       hooks.NewInstaller(fsys, runner),
		Now:         time.Now,
		logger:      logging.GetLogger("thoughts"),
	}
}

// Common identifies the configuration document and code repository an
// operation works on. Empty fields fall back to the XDG config location and
// the working directory.
type Common struct {
	ConfigPath string
	RepoPath   string
}

func (c Common) configPath() (string, error) {
	if c.ConfigPath != "" {
		return c.ConfigPath, nil
	}
	p, err := paths.New("")
	if err != nil {
		return "", err
	}
	return p.ConfigFile(), nil
}

func (c Common) repoPath() (string, error) {
	if c.RepoPath != "" {
		return c.RepoPath, nil
	}
	return paths.CurrentRepoPath()
}

func (s *Service) prompter() prompt.Prompter {
	if s.Prompter == nil {
		return prompt.NewScripted()
	}
	return s.Prompter
}

// ensureDir creates dir and reports whether it had to
func (s *Service) ensureDir(dir string) (bool, error) {
	if filesystem.IsDir(s.FS, dir) {
		return false, nil
	}
	if err := s.FS.MkdirAll(dir, filesystem.DirMode); err != nil {
		return false, errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir).
			WithDetail("path", dir)
	}
	return true, nil
}

// pruneOrphans offers to drop mappings whose repository path is gone. It
// returns the orphans found and whether they were removed from cfg.
func (s *Service) pruneOrphans(cfg *config.GlobalConfig) ([]string, bool, error) {
	orphans := cfg.FindOrphanedMappings()
	if len(orphans) == 0 {
		return nil, false, nil
	}

	s.logger.Info().Strs("orphans", orphans).Msg("Found stale repository mappings")
	remove, err := s.prompter().Confirm(orphanQuestion(orphans), true)
	if err != nil {
		return orphans, false, err
	}
	if !remove {
		return orphans, false, nil
	}
	cfg.RemoveMappings(orphans)
	return orphans, true, nil
}

func orphanQuestion(orphans []string) string {
	q := "Found stale repo mappings (paths no longer exist):\n"
	for _, o := range orphans {
		q += "  " + o + "\n"
	}
	return q + "Remove stale mappings from config?"
}
