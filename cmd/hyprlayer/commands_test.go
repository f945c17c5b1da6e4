// cmd/hyprlayer/commands_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: real filesystem, go-git, prompt.Scripted
// PURPOSE: Run the cobra command tree end to end against an isolated home

package hyprlayer

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/hyprlayer/pkg/config"
	"github.com/arthur-debert/hyprlayer/pkg/errors"
	"github.com/arthur-debert/hyprlayer/pkg/filesystem"
	"github.com/arthur-debert/hyprlayer/pkg/gitrepo"
	"github.com/arthur-debert/hyprlayer/pkg/testutil"
	"github.com/arthur-debert/hyprlayer/pkg/thoughts"
	"github.com/arthur-debert/hyprlayer/pkg/ui/prompt"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cliResult struct {
	stdout string
	stderr string
	err    error
}

// execute runs the root command with args. Every run gets a fresh service
// answering prompts from answers.
func execute(t *testing.T, answers []prompt.Answer, args ...string) cliResult {
	t.Helper()

	cmd := newRootCmd(func() *thoughts.Service {
		return thoughts.New(filesystem.NewOS(), prompt.NewScripted(answers...), nil)
	})
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

// newCodeRepo creates a git repository and makes it the working directory
func newCodeRepo(t *testing.T, env *testutil.Environment) string {
	t.Helper()
	code := testutil.CreateDir(t, env.Root, "code")
	_, err := gitrepo.Init(code)
	require.NoError(t, err)
	chdir(t, code)
	return code
}

func writeConfig(t *testing.T, env *testutil.Environment) {
	t.Helper()
	cfg := &config.GlobalConfig{
		ThoughtsRepo: "~/thoughts",
		ReposDir:     "repos",
		GlobalDir:    "global",
		User:         "alice",
		RepoMappings: map[string]config.RepoMapping{},
	}
	require.NoError(t, config.Save(cfg, env.ConfigFile))
}

func findCommand(t *testing.T, root *cobra.Command, path ...string) *cobra.Command {
	t.Helper()
	cmd, _, err := root.Find(path)
	require.NoError(t, err)
	require.Equal(t, path[len(path)-1], cmd.Name())
	return cmd
}

func TestRootCommand_Structure(t *testing.T) {
	root := NewRootCmd()

	tests := []struct {
		path    []string
		groupID string
	}{
		{[]string{"thoughts"}, "core"},
		{[]string{"version"}, "misc"},
		{[]string{"topics"}, "misc"},
		{[]string{"completion"}, "misc"},
	}
	for _, tt := range tests {
		t.Run(tt.path[0], func(t *testing.T) {
			cmd := findCommand(t, root, tt.path...)
			assert.Equal(t, tt.groupID, cmd.GroupID)
		})
	}

	for _, name := range []string{"init", "uninit", "sync", "status", "profile", "config"} {
		findCommand(t, root, "thoughts", name)
	}
	for _, name := range []string{"create", "list", "show", "delete"} {
		findCommand(t, root, "thoughts", "profile", name)
	}

	assert.NotNil(t, root.PersistentFlags().Lookup("verbose"))
	assert.NotNil(t, root.PersistentFlags().Lookup("config-file"))
}

func TestCommandFlags(t *testing.T) {
	root := NewRootCmd()

	tests := []struct {
		path  []string
		flags []string
	}{
		{[]string{"thoughts", "init"}, []string{"force", "directory", "profile"}},
		{[]string{"thoughts", "uninit"}, []string{"force"}},
		{[]string{"thoughts", "sync"}, []string{"message"}},
		{[]string{"thoughts", "profile", "create"}, []string{"repo", "repos-dir", "global-dir"}},
		{[]string{"thoughts", "profile", "list"}, []string{"json"}},
		{[]string{"thoughts", "profile", "show"}, []string{"json"}},
		{[]string{"thoughts", "profile", "delete"}, []string{"force"}},
		{[]string{"thoughts", "config"}, []string{"json", "format", "edit"}},
	}
	for _, tt := range tests {
		cmd := findCommand(t, root, tt.path...)
		for _, flag := range tt.flags {
			assert.NotNil(t, cmd.Flags().Lookup(flag), "%v should have --%s", tt.path, flag)
		}
	}

	sync := findCommand(t, root, "thoughts", "sync")
	assert.Equal(t, "m", sync.Flags().Lookup("message").Shorthand)
}

func TestVersionCommand(t *testing.T) {
	testutil.NewEnvironment(t)

	res := execute(t, nil, "version")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "hyprlayer version dev")
}

func TestTopicsCommand(t *testing.T) {
	testutil.NewEnvironment(t)

	res := execute(t, nil, "topics")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Available help topics:")
	for _, topic := range []string{"configuration", "hooks", "layout", "profiles"} {
		assert.Contains(t, res.stdout, topic)
	}
}

func TestCompletionCommand(t *testing.T) {
	testutil.NewEnvironment(t)

	res := execute(t, nil, "completion", "bash")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "hyprlayer")

	res = execute(t, nil, "completion", "tcsh")
	assert.Error(t, res.err)
}

func TestNoCommand(t *testing.T) {
	testutil.NewEnvironment(t)

	res := execute(t, nil)
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "no command specified")
}

func TestThoughtsLifecycle(t *testing.T) {
	env := testutil.NewEnvironment(t)
	code := newCodeRepo(t, env)

	// First init bootstraps the configuration from defaults
	defaults := []prompt.Answer{prompt.Text(""), prompt.Text(""), prompt.Text(""), prompt.Text("")}
	res := execute(t, defaults, "thoughts", "init", "--directory", "project")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, MsgInitDone)
	assert.Contains(t, res.stdout, "project")

	userLink := filepath.Join(code, "thoughts", "alice")
	target, err := os.Readlink(userLink)
	require.NoError(t, err)
	assert.Equal(t, env.Home("thoughts", "repos", "project", "alice"), target)

	res = execute(t, nil, "thoughts", "status")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, MsgStatusTitle)
	assert.Contains(t, res.stdout, "Thoughts directory: project")

	testutil.CreateFile(t, userLink, "notes.md", "# Notes\n")
	res = execute(t, nil, "thoughts", "sync", "-m", "Add notes")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Add notes")
	assert.Contains(t, res.stdout, MsgSyncNoRemote)

	res = execute(t, nil, "thoughts", "sync")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, MsgSyncNoChanges)

	res = execute(t, nil, "thoughts", "uninit")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Removed thoughts from "+code)
	assert.NoDirExists(t, filepath.Join(code, "thoughts"))
	assert.FileExists(t, env.Home("thoughts", "repos", "project", "alice", "notes.md"))
}

func TestThoughtsCommands_Errors(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		withCfg  bool
		wantCode errors.ErrorCode
	}{
		{"status without config", []string{"thoughts", "status"}, false, errors.ErrConfigNotFound},
		{"sync without config", []string{"thoughts", "sync"}, false, errors.ErrConfigNotFound},
		{"uninit not initialized", []string{"thoughts", "uninit"}, true, errors.ErrNotInitialized},
		{"sync unmapped", []string{"thoughts", "sync"}, true, errors.ErrNotInitialized},
		{"init unknown profile", []string{"thoughts", "init", "--profile", "nope"}, true, errors.ErrProfileNotFound},
		{"show unknown profile", []string{"thoughts", "profile", "show", "nope"}, true, errors.ErrProfileNotFound},
		{"delete unknown profile", []string{"thoughts", "profile", "delete", "nope"}, true, errors.ErrProfileNotFound},
		{"conflicting output flags", []string{"thoughts", "config", "--json", "--format", "yaml"}, true, errors.ErrInvalidInput},
		{"unknown export format", []string{"thoughts", "config", "--format", "xml"}, true, errors.ErrInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testutil.NewEnvironment(t)
			newCodeRepo(t, env)
			if tt.withCfg {
				writeConfig(t, env)
			}

			res := execute(t, nil, tt.args...)
			require.Error(t, res.err)
			assert.Equal(t, tt.wantCode, errors.GetErrorCode(res.err), res.err.Error())
		})
	}
}

func TestErrorLine(t *testing.T) {
	env := testutil.NewEnvironment(t)
	newCodeRepo(t, env)

	res := execute(t, nil, "thoughts", "status")
	require.Error(t, res.err)

	line := ErrorLine(res.err)
	assert.Contains(t, line, "Error: ")
	assert.Contains(t, line, "hyprlayer thoughts init")
	assert.NotContains(t, line, "["+string(errors.ErrConfigNotFound)+"]")

	plain := ErrorLine(execute(t, nil, "thoughts", "profile", "show").err)
	assert.Contains(t, plain, "Error: accepts 1 arg(s), received 0")
}

func TestUninit_RequiresForceWhenUnmapped(t *testing.T) {
	tests := []struct {
		name     string
		withCfg  bool
		wantCode errors.ErrorCode
	}{
		{"unmapped", true, errors.ErrRepoNotMapped},
		{"no config", false, errors.ErrConfigNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testutil.NewEnvironment(t)
			code := newCodeRepo(t, env)
			if tt.withCfg {
				writeConfig(t, env)
			}
			testutil.CreateDir(t, code, "thoughts")

			res := execute(t, nil, "thoughts", "uninit")
			require.Error(t, res.err)
			assert.Equal(t, tt.wantCode, errors.GetErrorCode(res.err))
			assert.Contains(t, res.err.Error(), "--force")
			assert.DirExists(t, filepath.Join(code, "thoughts"))

			res = execute(t, nil, "thoughts", "uninit", "--force")
			require.NoError(t, res.err)
			assert.NoDirExists(t, filepath.Join(code, "thoughts"))
		})
	}
}

func TestInit_NotAGitRepository(t *testing.T) {
	env := testutil.NewEnvironment(t)
	writeConfig(t, env)
	chdir(t, testutil.CreateDir(t, env.Root, "plain"))

	res := execute(t, nil, "thoughts", "init", "--directory", "plain")
	require.Error(t, res.err)
	assert.Equal(t, errors.ErrGitNotRepository, errors.GetErrorCode(res.err))
}

func TestProfileCommands(t *testing.T) {
	env := testutil.NewEnvironment(t)
	newCodeRepo(t, env)
	writeConfig(t, env)
	workRepo := env.Home("work-thoughts")

	res := execute(t, nil, "thoughts", "profile", "create", "work",
		"--repo", workRepo, "--repos-dir", "repos", "--global-dir", "global")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `Created profile "work"`)
	assert.DirExists(t, filepath.Join(workRepo, ".git"))

	res = execute(t, nil, "thoughts", "profile", "list", "--json")
	require.NoError(t, res.err)
	var list thoughts.ProfileList
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &list))
	require.Len(t, list.Profiles, 1)
	assert.Equal(t, "work", list.Profiles[0].Name)
	assert.Equal(t, workRepo, list.Profiles[0].Storage.ThoughtsRepo)
	assert.Equal(t, "~/thoughts", list.Default.ThoughtsRepo)

	res = execute(t, nil, "thoughts", "profile", "list")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "work:")

	res = execute(t, nil, "thoughts", "profile", "show", "work")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Profile: work")
	assert.Contains(t, res.stdout, workRepo)

	res = execute(t, nil, "thoughts", "init", "--profile", "work", "--directory", "api")
	require.NoError(t, res.err)
	assert.DirExists(t, filepath.Join(workRepo, "repos", "api", "alice"))

	res = execute(t, nil, "thoughts", "profile", "delete", "work")
	require.Error(t, res.err)
	assert.Equal(t, errors.ErrProfileInUse, errors.GetErrorCode(res.err))

	res = execute(t, nil, "thoughts", "profile", "delete", "work", "--force")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `Deleted profile "work"`)
	assert.Contains(t, res.stdout, "default layout")
}

func TestProfileCreate_SanitizedName(t *testing.T) {
	env := testutil.NewEnvironment(t)
	newCodeRepo(t, env)
	writeConfig(t, env)

	res := execute(t, nil, "thoughts", "profile", "create", "my work",
		"--repo", env.Home("mine"), "--repos-dir", "repos", "--global-dir", "global")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `Profile name "my work" was sanitized to "my_work"`)
}

func TestConfigCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"text", nil, "Thoughts Configuration"},
		{"json flag", []string{"--json"}, `"thoughts": {`},
		{"json format", []string{"--format", "json"}, `"thoughtsRepo": "~/thoughts"`},
		{"yaml", []string{"--format", "yaml"}, "thoughts:"},
		{"toml", []string{"--format", "toml"}, "thoughtsRepo"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testutil.NewEnvironment(t)
			newCodeRepo(t, env)
			writeConfig(t, env)

			res := execute(t, nil, append([]string{"thoughts", "config"}, tt.args...)...)
			require.NoError(t, res.err)
			assert.Contains(t, res.stdout, tt.want)
		})
	}
}

func TestConfigCommand_ConfigFileFlag(t *testing.T) {
	env := testutil.NewEnvironment(t)
	newCodeRepo(t, env)
	writeConfig(t, env)

	res := execute(t, nil, "--config-file", env.Path("elsewhere.json"), "thoughts", "config")
	require.Error(t, res.err)
	assert.Equal(t, errors.ErrConfigNotFound, errors.GetErrorCode(res.err))

	res = execute(t, nil, "--config-file", env.ConfigFile, "thoughts", "config", "--json")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, `"user": "alice"`)
}

func TestConfigCommand_Edit(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true not available")
	}
	env := testutil.NewEnvironment(t)
	newCodeRepo(t, env)
	writeConfig(t, env)

	t.Setenv("EDITOR", "true")
	res := execute(t, nil, "thoughts", "config", "--edit")
	require.NoError(t, res.err)

	t.Setenv("EDITOR", "false")
	res = execute(t, nil, "thoughts", "config", "--edit")
	require.Error(t, res.err)
	assert.Contains(t, res.err.Error(), "failed to run editor false")
}
