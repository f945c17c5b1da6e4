// pkg/thoughts/status_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: real filesystem, go-git
// PURPOSE: Verify the status report

package thoughts_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/hyprlayer/pkg/errors"
	"github.com/arthur-debert/hyprlayer/pkg/testutil"
	"github.com/arthur-debert/hyprlayer/pkg/thoughts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_InitializedRepository(t *testing.T) {
	f := newFixture(t)
	f.initialize(t, "myproj")
	testutil.CreateFile(t, filepath.Join(f.codeRepo, "thoughts", "alice"), "note.md", "draft\n")

	report, err := f.svc.Status(context.Background(), thoughts.StatusOptions{Common: f.common()})
	require.NoError(t, err)

	assert.Equal(t, f.env.ConfigFile, report.ConfigPath)
	assert.True(t, report.Mapped())
	assert.Equal(t, "myproj", report.Effective.MappedName)
	assert.True(t, report.Initialized)
	require.Len(t, report.Links, 3)
	assert.Equal(t, f.env.Home("thoughts", "repos", "myproj", "alice"), report.Links[0].Target)

	assert.True(t, report.RepoFound)
	require.NoError(t, report.GitErr)
	require.NotNil(t, report.LastCommit)
	assert.Equal(t, thoughts.InitialCommitMessage, report.LastCommit.Summary)
	assert.Empty(t, report.RemoteURL)
	assert.True(t, report.HasChanges)
	assert.Contains(t, report.Changes, "repos/myproj/alice/note.md")
}

func TestStatus_UnmappedRepository(t *testing.T) {
	f := newFixture(t)
	f.writeConfig(t, nil)

	report, err := f.svc.Status(context.Background(), thoughts.StatusOptions{Common: f.common()})
	require.NoError(t, err)
	assert.False(t, report.Mapped())
	assert.False(t, report.Initialized)
	assert.Empty(t, report.Links)
	assert.Equal(t, f.env.Home("thoughts"), report.ThoughtsRepo)
	assert.False(t, report.RepoFound)
	assert.Nil(t, report.LastCommit)
}

func TestStatus_ThoughtsRepoNotAGitRepository(t *testing.T) {
	f := newFixture(t)
	f.writeConfig(t, nil)
	testutil.CreateDir(t, f.env.HomeDir, "thoughts")

	report, err := f.svc.Status(context.Background(), thoughts.StatusOptions{Common: f.common()})
	require.NoError(t, err)
	assert.True(t, report.RepoFound)
	assert.True(t, errors.IsErrorCode(report.GitErr, errors.ErrGitNotRepository))
}

func TestStatus_NoConfiguration(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Status(context.Background(), thoughts.StatusOptions{Common: f.common()})
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigNotFound))
}
