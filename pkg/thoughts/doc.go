// Package thoughts implements the hyprlayer thoughts commands on top of the
// lower level packages: config resolution, the symlink provisioner, the
// searchable index builder, the git sync client and the hook installer.
//
// Every operation takes an Options struct and returns a Result struct that
// describes what happened. Rendering results is left to the caller, so the
// same flows back the CLI and the tests.
//
// Operations load the configuration document fresh on each call and write
// it back whole; there is no shared in-memory configuration.
package thoughts
