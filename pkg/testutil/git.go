package testutil

import (
	"os/exec"
	"strings"
	"testing"
)

// RequireGit skips the test when the git binary is unavailable
func RequireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git binary not available")
	}
}

// RunGit runs git in dir and returns trimmed combined output
func RunGit(t *testing.T, dir string, args ...string) string {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %s failed in %s: %v\n%s", strings.Join(args, " "), dir, err, out)
	}
	return strings.TrimSpace(string(out))
}

// InitRepo creates a git repository with a main branch at dir
func InitRepo(t *testing.T, dir string) string {
	t.Helper()
	RequireGit(t)

	RunGit(t, dir, "init", "--initial-branch=main", ".")
	return dir
}

// InitBareRemote creates a bare repository to act as origin
func InitBareRemote(t *testing.T, dir string) string {
	t.Helper()
	RequireGit(t)

	RunGit(t, dir, "init", "--bare", "--initial-branch=main", ".")
	return dir
}
