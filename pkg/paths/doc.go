// Package paths provides centralized path handling for hyprlayer.
//
// It handles:
//
//   - Locating the global configuration document
//   - Home directory expansion for user-supplied paths
//   - The fixed names of the thoughts layout inside a code repository
//
// # Environment Variables
//
//   - HYPRLAYER_CONFIG: explicit path to config.json (same as --config-file)
//   - HYPRLAYER_CONFIG_DIR: override the directory holding config.json
//     (default: $XDG_CONFIG_HOME/hyprlayer)
//
// # Code Repository Layout
//
//	<codeRepo>/thoughts/
//	  <user>      -> <thoughtsRepo>/<reposDir>/<mapped>/<user>
//	  shared      -> <thoughtsRepo>/<reposDir>/<mapped>/shared
//	  global      -> <thoughtsRepo>/<globalDir>
//	  searchable/    hard-link mirror, rebuilt on every sync
package paths
