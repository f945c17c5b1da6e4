package thoughts

import (
	"context"

	"github.com/arthur-debert/hyprlayer/pkg/config"
	"github.com/arthur-debert/hyprlayer/pkg/errors"
	"github.com/arthur-debert/hyprlayer/pkg/filesystem"
	"github.com/arthur-debert/hyprlayer/pkg/logging"
	"github.com/arthur-debert/hyprlayer/pkg/paths"
)

// SyncOptions configures Sync
type SyncOptions struct {
	Common
	// Message is the commit message; empty generates a timestamped one
	Message string
}

// SyncResult records the outcome of every sync step. Remote failures are
// reported here rather than returned as errors.
type SyncResult struct {
	RepoPath     string
	ThoughtsRepo string
	LinkedCount  int

	Committed     bool
	CommitHash    string
	CommitMessage string

	RemoteURL string
	Pulled    bool
	PullErr   error
	// Conflict is set when the rebase stopped on a conflict; the repository
	// needs manual resolution and push was skipped
	Conflict bool
	Pushed   bool
	PushErr  error
}

// RemoteConfigured reports whether the thoughts repository has an origin
func (r *SyncResult) RemoteConfigured() bool { return r.RemoteURL != "" }

// Warnings lists the non-fatal failures of the run
func (r *SyncResult) Warnings() []error {
	var warnings []error
	if r.PullErr != nil {
		warnings = append(warnings, r.PullErr)
	}
	if r.PushErr != nil {
		warnings = append(warnings, r.PushErr)
	}
	return warnings
}

// Sync rebuilds the searchable index, commits pending changes in the
// thoughts repository and exchanges them with its remote:
//
//  1. rebuild thoughts/searchable
//  2. stage everything
//  3. commit when there are changes
//  4. stop when there is no origin remote
//  5. pull with rebase; failures are warnings, a conflict skips the push
//  6. push when step 3 committed; failures are warnings
func (s *Service) Sync(ctx context.Context, opts SyncOptions) (*SyncResult, error) {
	done := logging.LogOperationStart(s.logger, "sync")
	defer done()

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

	thoughtsDir := paths.ThoughtsDir(repoPath)
	if !filesystem.IsDir(s.FS, thoughtsDir) {
		return nil, errors.New(errors.ErrNotInitialized,
			"thoughts not initialized for this repository; run 'hyprlayer thoughts init' first").
			WithDetail("repo", repoPath)
	}

	result := &SyncResult{RepoPath: repoPath}
	if result.LinkedCount, err = s.Builder.Build(thoughtsDir); err != nil {
		return nil, err
	}

	layout, err := config.Resolve(cfg, repoPath).Layout(cfg.User)
	if err != nil {
		return nil, err
	}
	result.ThoughtsRepo = layout.ThoughtsRepo
	if !filesystem.IsDir(s.FS, layout.ThoughtsRepo) {
		return nil, errors.Newf(errors.ErrFileNotFound, "thoughts repository not found at %s", layout.ThoughtsRepo).
			WithDetail("path", layout.ThoughtsRepo)
	}

	repo, err := s.OpenRepo(layout.ThoughtsRepo)
	if err != nil {
		return nil, err
	}
	logger := s.logger.With().Str("thoughts_repo", layout.ThoughtsRepo).Logger()

	if err := repo.AddAll(); err != nil {
		return nil, err
	}
	changed, err := repo.HasChanges()
	if err != nil {
		return nil, err
	}
	if changed {
		message := opts.Message
		if message == "" {
			message = "Sync thoughts - " + s.Now().Format(SyncTimeFormat)
		}
		hash, err := repo.Commit(message)
		if err != nil {
			return nil, err
		}
		result.Committed, result.CommitHash, result.CommitMessage = true, hash, message
	} else {
		logger.Debug().Msg("No changes to commit")
	}

	if result.RemoteURL, err = repo.RemoteURL(); err != nil {
		return nil, err
	}
	if !result.RemoteConfigured() {
		logger.Info().Msg("No remote configured, local sync only")
		return result, nil
	}

	if err := repo.PullRebase(ctx); err != nil {
		result.PullErr = err
		if errors.IsErrorCode(err, errors.ErrGitConflict) {
			result.Conflict = true
			logger.Warn().Err(err).Msg("Rebase stopped on a conflict, skipping push")
			return result, nil
		}
		logger.Warn().Err(err).Msg("Could not pull latest changes")
	} else {
		result.Pulled = true
	}

	if !result.Committed {
		return result, nil
	}
	if err := repo.Push(ctx); err != nil {
		result.PushErr = err
		logger.Warn().Err(err).Msg("Could not push to remote")
		return result, nil
	}
	result.Pushed = true
	return result, nil
}
