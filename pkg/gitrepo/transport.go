package gitrepo

import (
	"context"
	"strings"

	"github.com/arthur-debert/hyprlayer/pkg/errors"
	"github.com/arthur-debert/hyprlayer/pkg/logging"
	"github.com/rs/zerolog"
)

// conflictMarkers appear in git pull --rebase output when the rebase stopped
// on a conflict
var conflictMarkers = []string{
	"CONFLICT",
	"Automatic merge failed",
	"Patch failed",
	"could not apply",
}

// missingRemoteRefMarker is printed when the remote has no copy of the branch
// yet, e.g. on the first sync against an empty remote
const missingRemoteRefMarker = "couldn't find remote ref"

// CLITransport implements Transport by running the git binary
type CLITransport struct {
	dir    string
	runner CommandRunner
	logger zerolog.Logger
}

// NewCLITransport creates a transport operating on the repository at dir
func NewCLITransport(dir string, runner CommandRunner) *CLITransport {
	return &CLITransport{
		dir:    dir,
		runner: runner,
		logger: logging.GetLogger("gitrepo.transport").With().Str("repo", dir).Logger(),
	}
}

// PullRebase fetches and rebases local commits onto the remote branch. A
// branch without an upstream pulls from origin/<branch>; a remote that does
// not have the branch yet is not an error.
func (t *CLITransport) PullRebase(ctx context.Context) error {
	args := []string{"pull", "--rebase"}
	if !t.hasUpstream(ctx) {
		if branch := t.currentBranch(ctx); branch != "" {
			args = append(args, "origin", branch)
		}
	}

	out, err := t.runner.Run(ctx, t.dir, "git", args...)
	if err == nil {
		t.logger.Debug().Msg("Pulled with rebase")
		return nil
	}

	output := strings.TrimSpace(string(out))
	if strings.Contains(output, missingRemoteRefMarker) {
		t.logger.Debug().Str("output", output).Msg("Remote branch does not exist yet, nothing to pull")
		return nil
	}
	if IsConflictOutput(output) {
		return errors.Wrapf(err, errors.ErrGitConflict,
			"merge conflict detected; resolve it manually in %s", t.dir).
			WithDetail("path", t.dir).
			WithDetail("output", output)
	}
	return errors.Wrapf(err, errors.ErrGitTransport, "git pull --rebase failed: %s", output).
		WithDetail("path", t.dir).
		WithDetail("output", output)
}

// Push pushes the current branch, setting origin as upstream when the
// branch has none.
func (t *CLITransport) Push(ctx context.Context) error {
	args := []string{"push"}
	if !t.hasUpstream(ctx) {
		args = append(args, "--set-upstream", "origin", "HEAD")
	}

	out, err := t.runner.Run(ctx, t.dir, "git", args...)
	if err != nil {
		output := strings.TrimSpace(string(out))
		return errors.Wrapf(err, errors.ErrGitTransport, "git push failed: %s", output).
			WithDetail("path", t.dir).
			WithDetail("output", output)
	}
	t.logger.Debug().Msg("Pushed")
	return nil
}

func (t *CLITransport) hasUpstream(ctx context.Context) bool {
	_, err := t.runner.Run(ctx, t.dir, "git", "rev-parse", "--abbrev-ref", "--symbolic-full-name", "@{u}")
	return err == nil
}

func (t *CLITransport) currentBranch(ctx context.Context) string {
	out, err := t.runner.Run(ctx, t.dir, "git", "symbolic-ref", "--short", "HEAD")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}

// IsConflictOutput reports whether git output describes a merge or rebase
// conflict
func IsConflictOutput(output string) bool {
	for _, marker := range conflictMarkers {
		if strings.Contains(output, marker) {
			return true
		}
	}
	return false
}
