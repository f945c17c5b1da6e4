// Package testutil provides utilities for testing hyprlayer components.
//
// Key components:
//   - Environment: isolated HOME, XDG directories, config path and git
//     identity for a single test
//   - File helpers: CreateFile, CreateDir, CreateSymlink
//   - Git helpers: RequireGit, InitRepo, InitBareRemote, RunGit
//   - FaultyFS: types.FS wrapper that fails chosen operations on chosen paths
//   - RecordingRunner: scripted command runner that records every call
//
// Usage guidelines:
//   - Tests touching the real filesystem use t.TempDir through Environment
//   - Tests needing the git binary call RequireGit first
//   - All test data should be defined inline, not in external files
package testutil
