// Package config owns the global thoughts configuration: the data model,
// the JSON document store, and resolution of the effective configuration
// for a code repository.
//
// The document lives at $XDG_CONFIG_HOME/hyprlayer/config.json and looks like
//
//	{
//	  "thoughts": {
//	    "thoughtsRepo": "~/thoughts",
//	    "reposDir": "repos",
//	    "globalDir": "global",
//	    "user": "alice",
//	    "repoMappings": {
//	      "/home/alice/src/api": "api",
//	      "/home/alice/src/site": {"repo": "site", "profile": "work"}
//	    },
//	    "profiles": {
//	      "work": {"thoughtsRepo": "~/work-thoughts", "reposDir": "repos", "globalDir": "global"}
//	    }
//	  }
//	}
//
// Only the "thoughts" section belongs to this package. Save re-reads the
// document and replaces that section alone, and unknown keys inside it are
// carried through GlobalConfig.Extra.
//
// Resolve never fails. Missing mappings and dangling profile references are
// normal states that fall back to the default layout.
//
// Prompt defaults for new configurations come from LoadDefaults, which
// layers an embedded TOML file, an optional user TOML file and HYPRLAYER_*
// environment variables with koanf.
package config
