package thoughts

import (
	"context"
	"path"

	"github.com/arthur-debert/hyprlayer/pkg/config"
	"github.com/arthur-debert/hyprlayer/pkg/errors"
	"github.com/arthur-debert/hyprlayer/pkg/paths"
)

// Prompt titles used by ProfileCreate
const (
	QuestionProfileRepo      = "Thoughts repository"
	QuestionProfileReposDir  = "Repository-specific thoughts directory"
	QuestionProfileGlobalDir = "Global thoughts directory"
)

// Profile is a named storage layout with the repositories mapped to it
type Profile struct {
	Name    string                `json:"name"`
	Storage config.ProfileStorage `json:"storage"`
	Repos   []string              `json:"repos,omitempty"`
}

func profileOf(cfg *config.GlobalConfig, name string) Profile {
	return Profile{
		Name:    name,
		Storage: cfg.Profiles[name],
		Repos:   cfg.ReposUsingProfile(name),
	}
}

// ProfileCreateOptions configures ProfileCreate. Any storage field left
// empty is prompted for.
type ProfileCreateOptions struct {
	Common
	DefaultsPath string
	Name         string
	ThoughtsRepo string
	ReposDir     string
	GlobalDir    string
}

// ProfileCreateResult describes a created profile
type ProfileCreateResult struct {
	Profile
	// Requested is the name as given, before sanitizing
	Requested      string
	RepoCreated    bool
	GitInitialized bool
}

// Sanitized reports whether the requested name had to be changed
func (r *ProfileCreateResult) Sanitized() bool { return r.Requested != r.Name }

// ProfileCreate adds a profile and prepares its thoughts repository
func (s *Service) ProfileCreate(_ context.Context, opts ProfileCreateOptions) (*ProfileCreateResult, error) {
	configPath, err := opts.configPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	name := config.SanitizeProfileName(opts.Name)
	if name == "" {
		return nil, errors.New(errors.ErrInvalidInput, "profile name must not be empty")
	}
	if _, exists := cfg.Profiles[name]; exists {
		return nil, errors.Newf(errors.ErrProfileExists, "profile %q already exists", name).
			WithDetail("profile", name)
	}

	storage, err := s.profileStorage(opts, name)
	if err != nil {
		return nil, err
	}

	if cfg.Profiles == nil {
		cfg.Profiles = map[string]config.ProfileStorage{}
	}
	cfg.Profiles[name] = storage
	if err := config.Save(cfg, configPath); err != nil {
		return nil, err
	}

	result := &ProfileCreateResult{
		Profile:   Profile{Name: name, Storage: storage},
		Requested: opts.Name,
	}

	repoDir, err := paths.ExpandHome(storage.ThoughtsRepo)
	if err != nil {
		return nil, err
	}
	if result.RepoCreated, err = s.ensureDir(repoDir); err != nil {
		return nil, err
	}
	if result.GitInitialized, err = s.initThoughtsRepo(repoDir); err != nil {
		return nil, err
	}

	s.logger.Info().Str("profile", name).Str("thoughts_repo", storage.ThoughtsRepo).Msg("Profile created")
	return result, nil
}

func (s *Service) profileStorage(opts ProfileCreateOptions, name string) (config.ProfileStorage, error) {
	storage := config.ProfileStorage{
		ThoughtsRepo: opts.ThoughtsRepo,
		ReposDir:     opts.ReposDir,
		GlobalDir:    opts.GlobalDir,
	}
	if storage.ThoughtsRepo != "" && storage.ReposDir != "" && storage.GlobalDir != "" {
		return storage, nil
	}

	d, err := config.LoadDefaults(opts.DefaultsPath)
	if err != nil {
		return storage, errors.Wrap(err, errors.ErrConfigInvalid, "failed to load defaults")
	}

	p := s.prompter()
	questions := []struct {
		field *string
		title string
		def   string
	}{
		{&storage.ThoughtsRepo, QuestionProfileRepo, path.Join(d.ThoughtsRepo, name)},
		{&storage.ReposDir, QuestionProfileReposDir, d.ReposDir},
		{&storage.GlobalDir, QuestionProfileGlobalDir, d.GlobalDir},
	}
	for _, q := range questions {
		if *q.field != "" {
			continue
		}
		if *q.field, err = p.Input(q.title, q.def, nil); err != nil {
			return storage, err
		}
	}
	return storage, nil
}

// ProfileListOptions configures ProfileList
type ProfileListOptions struct {
	Common
}

// ProfileList is the default layout and every profile, sorted by name
type ProfileList struct {
	Default  config.ProfileStorage `json:"default"`
	Profiles []Profile             `json:"profiles"`
}

// ProfileList returns the configured profiles
func (s *Service) ProfileList(_ context.Context, opts ProfileListOptions) (*ProfileList, error) {
	configPath, err := opts.configPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	list := &ProfileList{Default: cfg.DefaultStorage(), Profiles: []Profile{}}
	for _, name := range cfg.ProfileNames() {
		list.Profiles = append(list.Profiles, profileOf(cfg, name))
	}
	return list, nil
}

// ProfileShowOptions configures ProfileShow
type ProfileShowOptions struct {
	Common
	Name string
}

// ProfileShow returns one profile, failing with PROFILE_NOT_FOUND
func (s *Service) ProfileShow(_ context.Context, opts ProfileShowOptions) (*Profile, error) {
	configPath, err := opts.configPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if _, ok := cfg.Profiles[opts.Name]; !ok {
		return nil, profileNotFound(opts.Name)
	}
	p := profileOf(cfg, opts.Name)
	return &p, nil
}

// ProfileDeleteOptions configures ProfileDelete
type ProfileDeleteOptions struct {
	Common
	Name string
	// Force deletes a profile that repositories are still mapped to. Those
	// mappings fall back to the default layout.
	Force bool
}

// ProfileDeleteResult describes a deleted profile
type ProfileDeleteResult struct {
	Name string
	// Orphaned lists repositories whose mapping still names the profile
	Orphaned []string
}

// ProfileDelete removes a profile. The thoughts repository is left on disk.
func (s *Service) ProfileDelete(_ context.Context, opts ProfileDeleteOptions) (*ProfileDeleteResult, error) {
	configPath, err := opts.configPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if _, ok := cfg.Profiles[opts.Name]; !ok {
		return nil, profileNotFound(opts.Name)
	}

	users := cfg.ReposUsingProfile(opts.Name)
	if len(users) > 0 && !opts.Force {
		return nil, errors.Newf(errors.ErrProfileInUse,
			"profile %q is in use by repository: %s; use --force to delete anyway", opts.Name, users[0]).
			WithDetail("profile", opts.Name).
			WithDetail("repos", users)
	}

	delete(cfg.Profiles, opts.Name)
	if len(cfg.Profiles) == 0 {
		cfg.Profiles = nil
	}
	if err := config.Save(cfg, configPath); err != nil {
		return nil, err
	}

	s.logger.Info().Str("profile", opts.Name).Int("orphaned", len(users)).Msg("Profile deleted")
	return &ProfileDeleteResult{Name: opts.Name, Orphaned: users}, nil
}

func profileNotFound(name string) error {
	return errors.Newf(errors.ErrProfileNotFound, "profile %q not found", name).
		WithDetail("profile", name)
}

// ConfigShowOptions configures ConfigShow
type ConfigShowOptions struct {
	Common
}

// ConfigShow loads the configuration for display
func (s *Service) ConfigShow(_ context.Context, opts ConfigShowOptions) (*config.GlobalConfig, string, error) {
	configPath, err := opts.configPath()
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, configPath, err
	}
	return cfg, configPath, nil
}
