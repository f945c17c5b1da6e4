package gitrepo

import (
	"context"
	"os"
	"os/exec"

	"github.com/arthur-debert/hyprlayer/pkg/logging"
)

// CommandRunner executes external commands. It allows tests to substitute
// scripted output for the git binary.
type CommandRunner interface {
	// Run executes name with args in dir and returns the combined output
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// ExecRunner is the production CommandRunner using os/exec
type ExecRunner struct {
	// ExtraEnv is appended to the inherited environment
	ExtraEnv []string
}

// NewExecRunner returns a runner that never lets git block on a terminal
// credential prompt.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{ExtraEnv: []string{"GIT_TERMINAL_PROMPT=0"}}
}

// Run implements CommandRunner
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	logging.LogCommand(name, args)

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	if len(r.ExtraEnv) > 0 {
		cmd.Env = append(os.Environ(), r.ExtraEnv...)
	}
	return cmd.CombinedOutput()
}
