package thoughts

import (
	"context"

	"github.com/arthur-debert/hyprlayer/pkg/config"
	"github.com/arthur-debert/hyprlayer/pkg/filesystem"
	"github.com/arthur-debert/hyprlayer/pkg/gitrepo"
	"github.com/arthur-debert/hyprlayer/pkg/paths"
	"github.com/arthur-debert/hyprlayer/pkg/symlink"
)

// StatusOptions configures Status
type StatusOptions struct {
	Common
}

// StatusReport is a read-only view of the configuration, the current
// repository and the thoughts repository it resolves to
type StatusReport struct {
	ConfigPath string
	Config     *config.GlobalConfig

	RepoPath    string
	Effective   config.EffectiveConfig
	Initialized bool
	Links       []symlink.Link

	ThoughtsRepo string
	RepoFound    bool
	// GitErr is set when the thoughts repository could not be inspected
	GitErr     error
	LastCommit *gitrepo.CommitSummary
	RemoteURL  string
	HasChanges bool
	Changes    string
}

// Mapped reports whether the current repository has a mapping
func (r *StatusReport) Mapped() bool { return r.Effective.IsMapped() }

// Status gathers the report. Only a missing or unreadable configuration is
// an error; problems with the thoughts repository are recorded in GitErr.
func (s *Service) Status(_ context.Context, opts StatusOptions) (*StatusReport, error) {
	configPath, err := opts.configPath()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	repoPath, err := opts.repoPath()
	if err != nil {
		return nil, err
	}

	report := &StatusReport{
		ConfigPath: configPath,
		Config:     cfg,
		RepoPath:   repoPath,
		Effective:  config.Resolve(cfg, repoPath),
	}

	layout, err := report.Effective.Layout(cfg.User)
	if err != nil {
		return nil, err
	}
	report.ThoughtsRepo = layout.ThoughtsRepo

	if report.Mapped() {
		report.Initialized = filesystem.IsDir(s.FS, paths.ThoughtsDir(repoPath))
		if report.Initialized {
			report.Links = s.Provisioner.Inspect(repoPath, layout, cfg.User)
		}
	}

	report.RepoFound = filesystem.IsDir(s.FS, layout.ThoughtsRepo)
	if !report.RepoFound {
		return report, nil
	}
	report.GitErr = s.inspectRepo(report, layout.ThoughtsRepo)
	return report, nil
}

func (s *Service) inspectRepo(report *StatusReport, dir string) error {
	repo, err := s.OpenRepo(dir)
	if err != nil {
		return err
	}
	if report.LastCommit, err = repo.LastCommit(); err != nil {
		return err
	}
	if report.RemoteURL, err = repo.RemoteURL(); err != nil {
		return err
	}
	if report.HasChanges, err = repo.HasChanges(); err != nil {
		return err
	}
	if report.HasChanges {
		if report.Changes, err = repo.Status(); err != nil {
			return err
		}
	}
	return nil
}
