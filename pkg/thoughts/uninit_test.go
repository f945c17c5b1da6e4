// pkg/thoughts/uninit_test.go
// TEST TYPE: Integration Test
// DEPENDENCIES: real filesystem, go-git
// PURPOSE: Verify uninit removes thoughts/ and the mapping and nothing else

package thoughts_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/hyprlayer/pkg/config"
	"github.com/arthur-debert/hyprlayer/pkg/errors"
	"github.com/arthur-debert/hyprlayer/pkg/testutil"
	"github.com/arthur-debert/hyprlayer/pkg/thoughts"
	"github.com/arthur-debert/hyprlayer/pkg/ui/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUninit_MappedRepository(t *testing.T) {
	f := newFixture(t)
	f.initialize(t, "myproj")
	note := testutil.CreateFile(t, filepath.Join(f.codeRepo, "thoughts", "alice"), "note.md", "keep me\n")
	note = testutil.RealPath(t, note)
	f.sync(t, "")

	// a hardened mirror must not block removal
	require.NoError(t, os.Chmod(filepath.Join(f.codeRepo, "thoughts", "searchable", "alice"), 0555))

	result, err := f.svc.Uninit(context.Background(), thoughts.UninitOptions{Common: f.common()})
	require.NoError(t, err)

	assert.True(t, result.SearchableRemoved)
	assert.True(t, result.MappingRemoved)
	assert.Equal(t, "myproj", result.MappedName)
	assert.Equal(t, f.env.Home("thoughts", "repos", "myproj"), result.ContentDir)

	assert.NoDirExists(t, filepath.Join(f.codeRepo, "thoughts"))
	assert.Equal(t, "keep me\n", testutil.ReadFile(t, note))
	assert.Empty(t, f.loadConfig(t).RepoMappings)
}

func TestUninit_Refusals(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T, f *fixture)
		wantCode errors.ErrorCode
	}{
		{
			name:     "not initialized",
			setup:    func(t *testing.T, f *fixture) { f.writeConfig(t, nil) },
			wantCode: errors.ErrNotInitialized,
		},
		{
			name: "unmapped repository",
			setup: func(t *testing.T, f *fixture) {
				f.writeConfig(t, nil)
				testutil.CreateDir(t, f.codeRepo, "thoughts")
			},
			wantCode: errors.ErrRepoNotMapped,
		},
		{
			name: "no configuration",
			setup: func(t *testing.T, f *fixture) {
				testutil.CreateDir(t, f.codeRepo, "thoughts")
			},
			wantCode: errors.ErrConfigNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(t, f)

			_, err := f.svc.Uninit(context.Background(), thoughts.UninitOptions{Common: f.common()})
			require.Error(t, err)
			assert.True(t, errors.IsErrorCode(err, tt.wantCode), "got %v", err)
			if tt.wantCode != errors.ErrNotInitialized {
				assert.Contains(t, err.Error(), "--force")
				assert.DirExists(t, filepath.Join(f.codeRepo, "thoughts"))
			}
		})
	}
}

func TestUninit_Force(t *testing.T) {
	tests := []struct {
		name       string
		withConfig bool
	}{
		{name: "unmapped repository", withConfig: true},
		{name: "no configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			if tt.withConfig {
				f.writeConfig(t, nil)
			}
			testutil.CreateFile(t, filepath.Join(f.codeRepo, "thoughts"), "stray.md", "x")

			result, err := f.svc.Uninit(context.Background(), thoughts.UninitOptions{Common: f.common(), Force: true})
			require.NoError(t, err)
			assert.False(t, result.MappingRemoved)
			assert.Empty(t, result.MappedName)
			assert.NoDirExists(t, filepath.Join(f.codeRepo, "thoughts"))
			assert.Equal(t, tt.withConfig, fileExists(f.env.ConfigFile))
		})
	}
}

func TestUninit_OffersOrphanCleanup(t *testing.T) {
	f := newFixture(t)
	f.initialize(t, "myproj")

	cfg := f.loadConfig(t)
	gone := f.env.Path("gone")
	cfg.RepoMappings[gone] = config.NewRepoMapping("old", "")
	require.NoError(t, config.Save(cfg, f.env.ConfigFile))

	f.script(prompt.Yes())
	result, err := f.svc.Uninit(context.Background(), thoughts.UninitOptions{Common: f.common()})
	require.NoError(t, err)
	assert.Equal(t, []string{gone}, result.OrphansFound)
	assert.True(t, result.OrphansRemoved)
	assert.Empty(t, f.loadConfig(t).RepoMappings)
}
