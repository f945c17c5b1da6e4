// pkg/thoughts/service_test.go
// TEST TYPE: Test helpers
// DEPENDENCIES: testutil.Environment, prompt.Scripted
// PURPOSE: Shared fixture for the thoughts flow tests

package thoughts_test

import (
	"context"
	"testing"
	"time"

	"github.com/arthur-debert/hyprlayer/pkg/config"
	"github.com/arthur-debert/hyprlayer/pkg/filesystem"
	"github.com/arthur-debert/hyprlayer/pkg/gitrepo"
	"github.com/arthur-debert/hyprlayer/pkg/testutil"
	"github.com/arthur-debert/hyprlayer/pkg/thoughts"
	"github.com/arthur-debert/hyprlayer/pkg/ui/prompt"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.Local)

type fixture struct {
	env      *testutil.Environment
	svc      *thoughts.Service
	prompts  *prompt.Scripted
	codeRepo string
}

// newFixture creates an isolated home and an empty code repository. The
// answers are consumed by the flows' questions in order.
func newFixture(t *testing.T, answers ...prompt.Answer) *fixture {
	t.Helper()

	env := testutil.NewEnvironment(t)
	code := testutil.CreateDir(t, env.Root, "code")
	_, err := gitrepo.Init(code)
	require.NoError(t, err)

	prompts := prompt.NewScripted(answers...)
	svc := thoughts.New(filesystem.NewOS(), prompts, nil)
	svc.Now = func() time.Time { return fixedNow }

	return &fixture{env: env, svc: svc, prompts: prompts, codeRepo: code}
}

// script replaces the queued answers
func (f *fixture) script(answers ...prompt.Answer) {
	f.prompts = prompt.NewScripted(answers...)
	f.svc.Prompter = f.prompts
}

func (f *fixture) common() thoughts.Common {
	return thoughts.Common{ConfigPath: f.env.ConfigFile, RepoPath: f.codeRepo}
}

// newCodeRepo creates another code repository next to the first one
func (f *fixture) newCodeRepo(t *testing.T, name string) string {
	t.Helper()
	dir := testutil.CreateDir(t, f.env.Root, name)
	_, err := gitrepo.Init(dir)
	require.NoError(t, err)
	return dir
}

// writeConfig saves a default configuration with the given mappings
func (f *fixture) writeConfig(t *testing.T, mappings map[string]config.RepoMapping) *config.GlobalConfig {
	t.Helper()
	if mappings == nil {
		mappings = map[string]config.RepoMapping{}
	}
	cfg := &config.GlobalConfig{
		ThoughtsRepo: "~/thoughts",
		ReposDir:     "repos",
		GlobalDir:    "global",
		User:         "alice",
		RepoMappings: mappings,
	}
	require.NoError(t, config.Save(cfg, f.env.ConfigFile))
	return cfg
}

func (f *fixture) loadConfig(t *testing.T) *config.GlobalConfig {
	t.Helper()
	cfg, err := config.Load(f.env.ConfigFile)
	require.NoError(t, err)
	return cfg
}

// initialize runs a non-interactive init mapping the code repository to
// directory, creating the configuration from defaults when needed.
func (f *fixture) initialize(t *testing.T, directory string) *thoughts.InitResult {
	t.Helper()

	if !fileExists(f.env.ConfigFile) {
		f.script(prompt.Text(""), prompt.Text(""), prompt.Text(""), prompt.Text(""))
	}
	result, err := f.svc.Init(context.Background(), thoughts.InitOptions{
		Common:    f.common(),
		Directory: directory,
	})
	require.NoError(t, err)
	return result
}

func fileExists(path string) bool {
	return filesystem.Exists(filesystem.NewOS(), path)
}
