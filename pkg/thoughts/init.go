package thoughts

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/hyprlayer/pkg/config"
	"github.com/arthur-debert/hyprlayer/pkg/errors"
	"github.com/arthur-debert/hyprlayer/pkg/filesystem"
	"github.com/arthur-debert/hyprlayer/pkg/gitrepo"
	"github.com/arthur-debert/hyprlayer/pkg/logging"
	"github.com/arthur-debert/hyprlayer/pkg/paths"
	"github.com/arthur-debert/hyprlayer/pkg/symlink"
)

// Prompt titles used by Init
const (
	QuestionThoughtsRepo  = "Thoughts repository location"
	QuestionReposDir      = "Directory name for repository-specific thoughts"
	QuestionGlobalDir     = "Directory name for global thoughts"
	QuestionUser          = "Your username"
	QuestionReconfigure   = "Thoughts directory already configured for this repository. Do you want to reconfigure?"
	QuestionSelectDir     = "Select or create a thoughts directory for this repository"
	QuestionNewDir        = "Directory name for this project's thoughts"
	OptionCreateDirectory = "→ Create new directory"
	optionUseExisting     = "Use existing: "
)

// InitOptions configures Init
type InitOptions struct {
	Common
	// DefaultsPath is the optional TOML file with prompt defaults
	DefaultsPath string
	// Force skips the reconfigure question when thoughts/ already exists
	Force bool
	// Directory is the mapped directory name; prompted for when empty
	Directory string
	// Profile selects a named storage layout; empty means the default one
	Profile string
}

// InitResult describes what Init did
type InitResult struct {
	RepoPath      string
	ConfigPath    string
	ConfigCreated bool

	OrphansFound   []string
	OrphansRemoved bool

	// Cancelled is set when the user declined to reconfigure
	Cancelled bool

	User       string
	Profile    string
	Storage    config.ProfileStorage
	MappedName string
	// ExistingDirectory is set when MappedName was already present
	ExistingDirectory bool
	Layout            config.Layout

	RepoCreated    bool
	GitInitialized bool
	Links          []symlink.Link
	HooksUpdated   []string
}

// Init maps the code repository to a directory of the thoughts repository,
// creates the on-disk layout and provisions thoughts/.
func (s *Service) Init(ctx context.Context, opts InitOptions) (*InitResult, error) {
	done := logging.LogOperationStart(s.logger, "init")
	defer done()

	repoPath, err := opts.repoPath()
	if err != nil {
		return nil, err
	}
	if !gitrepo.IsRepo(repoPath) {
		return nil, errors.Newf(errors.ErrGitNotRepository, "not in a git repository: %s", repoPath).
			WithDetail("path", repoPath)
	}
	configPath, err := opts.configPath()
	if err != nil {
		return nil, err
	}

	result := &InitResult{RepoPath: repoPath, ConfigPath: configPath}

	cfg, err := config.LoadIfExists(configPath)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg, err = s.bootstrapConfig(opts.DefaultsPath)
		if err != nil {
			return nil, err
		}
		result.ConfigCreated = true
	}
	result.User = cfg.User

	orphans, removed, err := s.pruneOrphans(cfg)
	if err != nil {
		return nil, err
	}
	result.OrphansFound, result.OrphansRemoved = orphans, removed
	if removed {
		if err := config.Save(cfg, configPath); err != nil {
			return nil, err
		}
	}

	if err := cfg.ValidateProfile(opts.Profile); err != nil {
		return nil, err
	}
	result.Profile = opts.Profile

	thoughtsDir := paths.ThoughtsDir(repoPath)
	if !opts.Force && filesystem.Exists(s.FS, thoughtsDir) {
		reconfigure, err := s.prompter().Confirm(QuestionReconfigure, false)
		if err != nil {
			return nil, err
		}
		if !reconfigure {
			s.logger.Info().Str("repo", repoPath).Msg("Setup cancelled")
			result.Cancelled = true
			return result, nil
		}
	}

	storage := cfg.ResolveDirs(opts.Profile)
	result.Storage = storage
	thoughtsRepo, err := paths.ExpandHome(storage.ThoughtsRepo)
	if err != nil {
		return nil, err
	}
	if result.RepoCreated, err = s.ensureDir(thoughtsRepo); err != nil {
		return nil, err
	}
	reposRoot := filepath.Join(thoughtsRepo, storage.ReposDir)
	if _, err := s.ensureDir(reposRoot); err != nil {
		return nil, err
	}

	name, existing, err := s.chooseDirectory(reposRoot, repoPath, opts.Directory)
	if err != nil {
		return nil, err
	}
	result.MappedName, result.ExistingDirectory = name, existing

	cfg.RepoMappings[repoPath] = config.NewRepoMapping(name, opts.Profile)
	if err := config.Save(cfg, configPath); err != nil {
		return nil, err
	}

	layout, err := config.Resolve(cfg, repoPath).Layout(cfg.User)
	if err != nil {
		return nil, err
	}
	result.Layout = layout
	for _, dir := range layout.Directories() {
		if _, err := s.ensureDir(dir); err != nil {
			return nil, err
		}
	}

	if result.GitInitialized, err = s.initThoughtsRepo(layout.ThoughtsRepo); err != nil {
		return nil, err
	}

	if err := s.Provisioner.Provision(repoPath, layout, cfg.User); err != nil {
		return nil, err
	}
	result.Links = symlink.Links(layout, cfg.User)

	if result.HooksUpdated, err = s.Hooks.Install(ctx, repoPath); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("repo", repoPath).
		Str("mapped", name).
		Str("profile", opts.Profile).
		Msg("Thoughts initialized")
	return result, nil
}

func (s *Service) bootstrapConfig(defaultsPath string) (*config.GlobalConfig, error) {
	d, err := config.LoadDefaults(defaultsPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigInvalid, "failed to load defaults")
	}

	p := s.prompter()
	cfg := config.NewGlobalConfig(d)
	if cfg.ThoughtsRepo, err = p.Input(QuestionThoughtsRepo, d.ThoughtsRepo, nil); err != nil {
		return nil, err
	}
	if cfg.ReposDir, err = p.Input(QuestionReposDir, d.ReposDir, nil); err != nil {
		return nil, err
	}
	if cfg.GlobalDir, err = p.Input(QuestionGlobalDir, d.GlobalDir, nil); err != nil {
		return nil, err
	}
	if cfg.User, err = p.Input(QuestionUser, d.User, config.ValidateUserName); err != nil {
		return nil, err
	}
	return cfg, nil
}

// chooseDirectory returns the sanitized mapped name and whether it already
// exists under reposRoot.
func (s *Service) chooseDirectory(reposRoot, repoPath, requested string) (string, bool, error) {
	if requested != "" {
		name := config.SanitizeDirectoryName(requested)
		return name, filesystem.IsDir(s.FS, filepath.Join(reposRoot, name)), nil
	}

	existing, err := s.listDirectories(reposRoot)
	if err != nil {
		return "", false, err
	}

	p := s.prompter()
	if len(existing) > 0 {
		options := make([]string, 0, len(existing)+1)
		for _, name := range existing {
			options = append(options, optionUseExisting+name)
		}
		options = append(options, OptionCreateDirectory)

		choice, err := p.Select(QuestionSelectDir, options)
		if err != nil {
			return "", false, err
		}
		if choice < len(existing) {
			return existing[choice], true, nil
		}
	}

	answer, err := p.Input(QuestionNewDir, paths.RepoNameFromPath(repoPath), func(v string) error {
		if strings.TrimSpace(v) == "" {
			return errors.New(errors.ErrInvalidInput, "directory name must not be empty")
		}
		return nil
	})
	if err != nil {
		return "", false, err
	}
	name := config.SanitizeDirectoryName(strings.TrimSpace(answer))
	return name, filesystem.IsDir(s.FS, filepath.Join(reposRoot, name)), nil
}

func (s *Service) listDirectories(dir string) ([]string, error) {
	entries, err := s.FS.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to list %s", dir)
	}
	var names []string
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		if filesystem.IsDir(s.FS, filepath.Join(dir, e.Name())) {
			names = append(names, e.Name())
		}
	}
	return names, nil
}

// initThoughtsRepo turns dir into a git repository with a .gitignore and an
// initial commit. Existing repositories are left alone.
func (s *Service) initThoughtsRepo(dir string) (bool, error) {
	if gitrepo.IsRepo(dir) {
		return false, nil
	}

	repo, err := s.InitRepo(dir)
	if err != nil {
		return false, err
	}

	gitignore := filepath.Join(dir, ".gitignore")
	if err := s.FS.WriteFile(gitignore, []byte(DefaultGitignore), 0644); err != nil {
		return false, errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", gitignore)
	}
	if err := repo.AddAll(); err != nil {
		return false, err
	}
	if _, err := repo.Commit(InitialCommitMessage); err != nil {
		return false, err
	}
	return true, nil
}
