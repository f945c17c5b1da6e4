package thoughts

import (
	"context"

	"github.com/arthur-debert/hyprlayer/pkg/config"
	"github.com/arthur-debert/hyprlayer/pkg/errors"
	"github.com/arthur-debert/hyprlayer/pkg/filesystem"
	"github.com/arthur-debert/hyprlayer/pkg/logging"
	"github.com/arthur-debert/hyprlayer/pkg/paths"
)

const forceHint = "use --force to remove the thoughts directory anyway"

// UninitOptions configures Uninit
type UninitOptions struct {
	Common
	// Force removes thoughts/ even when the repository is not mapped or no
	// configuration exists
	Force bool
}

// UninitResult describes what Uninit did
type UninitResult struct {
	RepoPath          string
	ConfigPath        string
	SearchableRemoved bool

	// MappedName is empty when the repository was not mapped
	MappedName     string
	Profile        string
	MappingRemoved bool
	// ContentDir is where the repository's notes remain in the thoughts
	// repository
	ContentDir string

	OrphansFound   []string
	OrphansRemoved bool
}

// Uninit removes thoughts/ from the code repository and drops its mapping.
// The notes in the thoughts repository are never touched.
func (s *Service) Uninit(_ context.Context, opts UninitOptions) (*UninitResult, error) {
	done := logging.LogOperationStart(s.logger, "uninit")
	defer done()

	repoPath, err := opts.repoPath()
	if err != nil {
		return nil, err
	}
	configPath, err := opts.configPath()
	if err != nil {
		return nil, err
	}
	result := &UninitResult{RepoPath: repoPath, ConfigPath: configPath}

	thoughtsDir := paths.ThoughtsDir(repoPath)
	if !filesystem.Exists(s.FS, thoughtsDir) {
		return nil, errors.New(errors.ErrNotInitialized, "thoughts not initialized for this repository").
			WithDetail("repo", repoPath)
	}

	cfg, err := config.LoadIfExists(configPath)
	if err != nil {
		return nil, err
	}
	if cfg == nil && !opts.Force {
		return nil, errors.Newf(errors.ErrConfigNotFound, "no thoughts configuration found; %s", forceHint).
			WithDetail("path", configPath)
	}

	if cfg != nil {
		mapping, mapped := cfg.RepoMappings[repoPath]
		if !mapped && !opts.Force {
			return nil, errors.Newf(errors.ErrRepoNotMapped,
				"this repository is not in the thoughts configuration; %s", forceHint).
				WithDetail("repo", repoPath)
		}
		if mapped {
			result.MappedName = mapping.RepoName()
			result.Profile = mapping.ProfileName()
			if layout, err := config.Resolve(cfg, repoPath).Layout(cfg.User); err == nil {
				result.ContentDir = layout.RepoDir
			}
		}
	}

	result.SearchableRemoved = filesystem.Exists(s.FS, paths.SearchableDir(thoughtsDir))
	if err := s.Provisioner.Teardown(repoPath); err != nil {
		return nil, err
	}

	if cfg == nil {
		return result, nil
	}

	dirty := false
	if result.MappedName != "" {
		delete(cfg.RepoMappings, repoPath)
		result.MappingRemoved = true
		dirty = true
	}

	orphans, removed, err := s.pruneOrphans(cfg)
	if err != nil && !errors.IsErrorCode(err, errors.ErrCancelled) {
		return nil, err
	}
	result.OrphansFound, result.OrphansRemoved = orphans, removed
	dirty = dirty || removed

	if dirty {
		if err := config.Save(cfg, configPath); err != nil {
			return nil, err
		}
	}

	s.logger.Info().Str("repo", repoPath).Bool("mapping_removed", result.MappingRemoved).Msg("Thoughts removed")
	return result, nil
}
