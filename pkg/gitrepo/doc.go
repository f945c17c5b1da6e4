// Package gitrepo wraps the physical thoughts repository.
//
// A Repository offers two capabilities on one handle:
//
//   - Structured: staging, change detection, commits and read-only
//     introspection, implemented in-process with go-git
//   - Transport: pull --rebase and push, delegated to the git binary through
//     a CommandRunner so remote helpers, credentials and rebase all behave
//     exactly as they do for the user's own git
//
// The transport half can be replaced (see Repo.WithTransport) without
// touching the structured half.
package gitrepo
