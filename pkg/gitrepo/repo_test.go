// pkg/gitrepo/repo_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: Real filesystem, go-git (no git binary)
// PURPOSE: Verify structured repository operations

package gitrepo_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/arthur-debert/hyprlayer/pkg/errors"
	"github.com/arthur-debert/hyprlayer/pkg/gitrepo"
	"github.com/arthur-debert/hyprlayer/pkg/testutil"
	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_NotARepository(t *testing.T) {
	dir := t.TempDir()

	assert.False(t, gitrepo.IsRepo(dir))

	_, err := gitrepo.Open(dir)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrGitNotRepository))
	assert.Equal(t, dir, errors.GetErrorDetails(err)["path"])
}

func TestInit(t *testing.T) {
	dir := t.TempDir()

	repo, err := gitrepo.Init(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, repo.Path())
	assert.True(t, gitrepo.IsRepo(dir))

	opened, err := gitrepo.Open(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, opened.Path())
}

func TestEmptyRepository(t *testing.T) {
	testutil.NewEnvironment(t)
	repo, err := gitrepo.Init(t.TempDir())
	require.NoError(t, err)

	changed, err := repo.HasChanges()
	require.NoError(t, err)
	assert.False(t, changed)

	status, err := repo.Status()
	require.NoError(t, err)
	assert.Equal(t, gitrepo.NoChangesMessage, status)

	last, err := repo.LastCommit()
	require.NoError(t, err)
	assert.Nil(t, last)

	url, err := repo.RemoteURL()
	require.NoError(t, err)
	assert.Empty(t, url)
}

func TestCommitLifecycle(t *testing.T) {
	testutil.NewEnvironment(t)
	dir := t.TempDir()
	repo, err := gitrepo.Init(dir)
	require.NoError(t, err)

	testutil.CreateFile(t, dir, "note.md", "first")

	changed, err := repo.HasChanges()
	require.NoError(t, err)
	assert.True(t, changed, "untracked files count as changes")

	status, err := repo.Status()
	require.NoError(t, err)
	assert.Equal(t, "  untracked  note.md\n", status)

	require.NoError(t, repo.AddAll())
	status, err = repo.Status()
	require.NoError(t, err)
	assert.Equal(t, "  added      note.md\n", status)

	hash, err := repo.Commit("First note\n\nwith a body")
	require.NoError(t, err)
	assert.Len(t, hash, 40)

	last, err := repo.LastCommit()
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, hash, last.Hash)
	assert.Equal(t, "First note", last.Summary)
	assert.WithinDuration(t, time.Now(), last.When, time.Minute)

	changed, err = repo.HasChanges()
	require.NoError(t, err)
	assert.False(t, changed)

	// Deletions are staged too
	require.NoError(t, os.Remove(filepath.Join(dir, "note.md")))
	status, err = repo.Status()
	require.NoError(t, err)
	assert.Equal(t, "  deleted    note.md\n", status)

	require.NoError(t, repo.AddAll())
	second, err := repo.Commit("Remove note")
	require.NoError(t, err)
	assert.NotEqual(t, hash, second)

	changed, err = repo.HasChanges()
	require.NoError(t, err)
	assert.False(t, changed)

	raw, err := git.PlainOpen(dir)
	require.NoError(t, err)
	commit, err := raw.CommitObject(mustHead(t, raw))
	require.NoError(t, err)
	assert.Equal(t, 1, commit.NumParents(), "second commit has HEAD as parent")
	assert.Equal(t, testutil.GitUserName, commit.Author.Name)
	assert.Equal(t, testutil.GitUserEmail, commit.Author.Email)
}

func TestCommit_NoIdentity(t *testing.T) {
	testutil.NewEnvironment(t)
	t.Setenv(gitrepo.EnvAuthorName, "")
	t.Setenv(gitrepo.EnvAuthorEmail, "")

	dir := t.TempDir()
	repo, err := gitrepo.Init(dir)
	require.NoError(t, err)
	testutil.CreateFile(t, dir, "note.md", "x")
	require.NoError(t, repo.AddAll())

	_, err = repo.Commit("no identity")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrGitNoIdentity))
}

func TestCommit_IdentityFromRepositoryConfig(t *testing.T) {
	testutil.NewEnvironment(t)
	t.Setenv(gitrepo.EnvAuthorName, "")
	t.Setenv(gitrepo.EnvAuthorEmail, "")

	dir := t.TempDir()
	repo, err := gitrepo.Init(dir)
	require.NoError(t, err)

	raw, err := git.PlainOpen(dir)
	require.NoError(t, err)
	cfg, err := raw.Config()
	require.NoError(t, err)
	cfg.User.Name = "Repo Local"
	cfg.User.Email = "local@example.invalid"
	require.NoError(t, raw.SetConfig(cfg))

	testutil.CreateFile(t, dir, "note.md", "x")
	require.NoError(t, repo.AddAll())
	_, err = repo.Commit("local identity")
	require.NoError(t, err)

	raw, err = git.PlainOpen(dir)
	require.NoError(t, err)
	commit, err := raw.CommitObject(mustHead(t, raw))
	require.NoError(t, err)
	assert.Equal(t, "Repo Local", commit.Author.Name)
	assert.Equal(t, "local@example.invalid", commit.Author.Email)
	assert.Equal(t, 0, commit.NumParents(), "first commit is a root commit")
}

func TestRemoteURL(t *testing.T) {
	dir := t.TempDir()
	repo, err := gitrepo.Init(dir)
	require.NoError(t, err)

	raw, err := git.PlainOpen(dir)
	require.NoError(t, err)
	_, err = raw.CreateRemote(&gitconfig.RemoteConfig{
		Name: "origin",
		URLs: []string{"git@example.invalid:me/thoughts.git"},
	})
	require.NoError(t, err)

	url, err := repo.RemoteURL()
	require.NoError(t, err)
	assert.Equal(t, "git@example.invalid:me/thoughts.git", url)
}

func TestCommitSummary(t *testing.T) {
	c := gitrepo.CommitSummary{
		Hash:    "0123456789abcdef0123456789abcdef01234567",
		Summary: "Sync thoughts",
		When:    time.Now().Add(-3 * time.Hour),
	}

	assert.Equal(t, "0123456", c.ShortHash())
	assert.Equal(t, "3 hours ago", c.Age())
	assert.True(t, strings.HasPrefix(c.String(), "0123456 Sync thoughts ("))

	assert.Equal(t, "abc", gitrepo.CommitSummary{Hash: "abc"}.ShortHash())
}

func TestWithTransport(t *testing.T) {
	repo, err := gitrepo.Init(t.TempDir())
	require.NoError(t, err)

	fake := &fakeTransport{}
	swapped := repo.WithTransport(fake)
	assert.Same(t, fake, swapped.Transport)
	assert.IsType(t, &gitrepo.CLITransport{}, repo.Transport, "original handle keeps its transport")
	assert.Equal(t, repo.Path(), swapped.Path())
}

func mustHead(t *testing.T, repo *git.Repository) plumbing.Hash {
	t.Helper()
	ref, err := repo.Head()
	require.NoError(t, err)
	return ref.Hash()
}
