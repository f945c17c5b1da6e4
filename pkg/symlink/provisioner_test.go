// pkg/symlink/provisioner_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem (t.TempDir), testutil.FaultyFS
// PURPOSE: Verify thoughts/ provisioning, idempotence and teardown

package symlink_test

import (
	"os"
	"path/filepath"
	"runtime"
	"syscall"
	"testing"

	"github.com/arthur-debert/hyprlayer/pkg/config"
	"github.com/arthur-debert/hyprlayer/pkg/errors"
	"github.com/arthur-debert/hyprlayer/pkg/filesystem"
	"github.com/arthur-debert/hyprlayer/pkg/symlink"
	"github.com/arthur-debert/hyprlayer/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	codeRepo string
	layout   config.Layout
}

func newFixture(t *testing.T, createTargets bool) fixture {
	t.Helper()
	root := testutil.RealPath(t, t.TempDir())

	eff := config.EffectiveConfig{
		ThoughtsRepo: filepath.Join(root, "thoughts-repo"),
		ReposDir:     "repos",
		GlobalDir:    "global",
		MappedName:   "myproj",
	}
	layout, err := eff.Layout("alice")
	require.NoError(t, err)

	if createTargets {
		for _, dir := range layout.Directories() {
			require.NoError(t, os.MkdirAll(dir, 0755))
		}
	}

	return fixture{codeRepo: testutil.CreateDir(t, root, "code"), layout: layout}
}

func assertLinks(t *testing.T, f fixture) {
	t.Helper()
	thoughts := filepath.Join(f.codeRepo, "thoughts")

	entries, err := os.ReadDir(thoughts)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"alice", "shared", "global"}, names)

	for name, want := range map[string]string{
		"alice":  f.layout.UserDir,
		"shared": f.layout.SharedDir,
		"global": f.layout.GlobalDir,
	} {
		got, err := os.Readlink(filepath.Join(thoughts, name))
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
}

func TestProvision(t *testing.T) {
	f := newFixture(t, true)
	p := symlink.NewProvisioner(filesystem.NewOS())

	require.NoError(t, p.Provision(f.codeRepo, f.layout, "alice"))
	assertLinks(t, f)

	testutil.CreateFile(t, f.layout.SharedDir, "plan.md", "plan")
	assert.Equal(t, "plan", testutil.ReadFile(t, filepath.Join(f.codeRepo, "thoughts", "shared", "plan.md")))
}

func TestProvision_Idempotent(t *testing.T) {
	f := newFixture(t, true)
	p := symlink.NewProvisioner(filesystem.NewOS())

	require.NoError(t, p.Provision(f.codeRepo, f.layout, "alice"))
	testutil.CreateFile(t, filepath.Join(f.codeRepo, "thoughts"), "stray.txt", "left over")
	require.NoError(t, p.Provision(f.codeRepo, f.layout, "alice"))

	assertLinks(t, f)
}

func TestProvision_ReplacesExistingSearchable(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	f := newFixture(t, true)
	p := symlink.NewProvisioner(filesystem.NewOS())

	locked := testutil.CreateDir(t, f.codeRepo, filepath.Join("thoughts", "searchable", "alice"))
	require.NoError(t, os.Chmod(locked, 0555))

	require.NoError(t, p.Provision(f.codeRepo, f.layout, "alice"))
	assertLinks(t, f)
}

func TestProvision_MissingTarget(t *testing.T) {
	f := newFixture(t, false)
	p := symlink.NewProvisioner(filesystem.NewOS())

	err := p.Provision(f.codeRepo, f.layout, "alice")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSymlinkTargetMissing))

	_, statErr := os.Lstat(filepath.Join(f.codeRepo, "thoughts"))
	assert.True(t, os.IsNotExist(statErr), "nothing is created when targets are missing")
}

func TestProvision_UnmappedLayout(t *testing.T) {
	p := symlink.NewProvisioner(filesystem.NewOS())
	err := p.Provision(t.TempDir(), config.Layout{ThoughtsRepo: "/t"}, "alice")
	assert.True(t, errors.IsErrorCode(err, errors.ErrRepoNotMapped))
}

func TestProvision_PermissionDenied(t *testing.T) {
	f := newFixture(t, true)
	fsys := testutil.NewFaultyFS(filesystem.NewOS()).
		FailOn("Symlink", filepath.Join(f.codeRepo, "thoughts", "shared"), syscall.EPERM)
	p := symlink.NewProvisioner(fsys)

	err := p.Provision(f.codeRepo, f.layout, "alice")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrSymlinkPermission))
	assert.Contains(t, err.Error(), "Administrator")
	assert.Contains(t, err.Error(), "Developer Mode")

	// The first link stays; a retry re-provisions cleanly.
	_, err = os.Readlink(filepath.Join(f.codeRepo, "thoughts", "alice"))
	assert.NoError(t, err)

	require.NoError(t, symlink.NewProvisioner(filesystem.NewOS()).Provision(f.codeRepo, f.layout, "alice"))
	assertLinks(t, f)
}

func TestProvision_OtherSymlinkFailure(t *testing.T) {
	f := newFixture(t, true)
	fsys := testutil.NewFaultyFS(filesystem.NewOS()).
		FailOn("Symlink", filepath.Join(f.codeRepo, "thoughts", "global"), syscall.EEXIST)

	err := symlink.NewProvisioner(fsys).Provision(f.codeRepo, f.layout, "alice")
	assert.True(t, errors.IsErrorCode(err, errors.ErrSymlinkCreate))
}

func TestTeardown(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("unix permissions")
	}
	f := newFixture(t, true)
	p := symlink.NewProvisioner(filesystem.NewOS())
	require.NoError(t, p.Provision(f.codeRepo, f.layout, "alice"))

	note := testutil.CreateFile(t, f.layout.UserDir, "idea.md", "idea")
	searchable := testutil.CreateDir(t, f.codeRepo, filepath.Join("thoughts", "searchable", "alice"))
	require.NoError(t, os.Link(note, filepath.Join(searchable, "idea.md")))
	require.NoError(t, os.Chmod(searchable, 0555))

	require.NoError(t, p.Teardown(f.codeRepo))

	_, err := os.Lstat(filepath.Join(f.codeRepo, "thoughts"))
	assert.True(t, os.IsNotExist(err), "thoughts/ itself is removed")
	assert.Equal(t, "idea", testutil.ReadFile(t, note), "physical notes are untouched")

	assert.NoError(t, p.Teardown(f.codeRepo), "teardown of a missing tree is a no-op")
}

func TestInspect(t *testing.T) {
	f := newFixture(t, true)
	p := symlink.NewProvisioner(filesystem.NewOS())

	before := p.Inspect(f.codeRepo, f.layout, "alice")
	for _, link := range before {
		assert.Empty(t, link.Target)
	}

	require.NoError(t, p.Provision(f.codeRepo, f.layout, "alice"))
	assert.Equal(t, symlink.Links(f.layout, "alice"), p.Inspect(f.codeRepo, f.layout, "alice"))
}
