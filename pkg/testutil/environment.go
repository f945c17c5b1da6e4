// pkg/testutil/environment.go
// DEPENDENCIES: None (base test utilities)
// PURPOSE: Give each test its own HOME, XDG dirs, config file and git identity

package testutil

import (
	"path/filepath"
	"testing"
)

// Test identity used for every commit made in tests
const (
	GitUserName  = "Hyprlayer Test"
	GitUserEmail = "test@hyprlayer.invalid"
)

// Environment is an isolated home for one test
type Environment struct {
	Root       string
	HomeDir    string
	ConfigDir  string
	ConfigFile string
	StateDir   string
}

// NewEnvironment points HOME and the XDG variables at fresh temp
// directories and sets a git identity through the environment. Nothing from
// the developer's real config leaks into the test.
func NewEnvironment(t *testing.T) *Environment {
	t.Helper()

	root := RealPath(t, t.TempDir())
	env := &Environment{
		Root:      root,
		HomeDir:   filepath.Join(root, "home"),
		ConfigDir: filepath.Join(root, "config"),
		StateDir:  filepath.Join(root, "state"),
	}
	env.ConfigFile = filepath.Join(env.ConfigDir, "hyprlayer", "config.json")

	CreateDir(t, root, "home")

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("USERPROFILE", env.HomeDir)
	t.Setenv("XDG_CONFIG_HOME", env.ConfigDir)
	t.Setenv("XDG_STATE_HOME", env.StateDir)
	t.Setenv("HYPRLAYER_CONFIG", "")
	t.Setenv("HYPRLAYER_CONFIG_DIR", "")
	t.Setenv("USER", "alice")

	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("GIT_CONFIG_GLOBAL", filepath.Join(root, "gitconfig"))
	t.Setenv("GIT_AUTHOR_NAME", GitUserName)
	t.Setenv("GIT_AUTHOR_EMAIL", GitUserEmail)
	t.Setenv("GIT_COMMITTER_NAME", GitUserName)
	t.Setenv("GIT_COMMITTER_EMAIL", GitUserEmail)

	return env
}

// Path joins elements onto the environment root
func (e *Environment) Path(elem ...string) string {
	return filepath.Join(append([]string{e.Root}, elem...)...)
}

// Home joins elements onto the test home directory
func (e *Environment) Home(elem ...string) string {
	return filepath.Join(append([]string{e.HomeDir}, elem...)...)
}
