package hyprlayer

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort          = "Developer notes linked into every repository"
	MsgThoughtsShort      = "Manage thoughts for the current repository"
	MsgInitShort          = "Link the current repository to your thoughts"
	MsgUninitShort        = "Remove thoughts from the current repository"
	MsgSyncShort          = "Commit and sync the thoughts repository"
	MsgStatusShort        = "Show thoughts status for the current repository"
	MsgProfileShort       = "Manage thoughts profiles"
	MsgProfileCreateShort = "Create a thoughts profile"
	MsgProfileListShort   = "List thoughts profiles"
	MsgProfileShowShort   = "Show a thoughts profile"
	MsgProfileDeleteShort = "Delete a thoughts profile"
	MsgConfigShort        = "Show or edit the thoughts configuration"
	MsgVersionShort       = "Print version information"
	MsgTopicsShort        = "Display available documentation topics"
	MsgTopicsLong         = "Display a list of all available help topics that provide additional documentation beyond command help."
	MsgCompletionShort    = "Generate shell completion script"

	// Init output
	MsgInitCancelled    = "Setup cancelled."
	MsgInitConfigSaved  = "Configuration saved to %s"
	MsgInitOrphans      = "Removed %d stale repository mapping(s)"
	MsgInitDone         = "Thoughts setup complete!"
	MsgInitRepoCreated  = "Created thoughts repository at %s"
	MsgInitExistingDir  = "Using existing directory %s"
	MsgInitCreatedDir   = "Created directory %s"
	MsgInitHooksUpdated = "Installed git hooks: %s"
	MsgInitNextSteps    = "Run 'hyprlayer thoughts sync' after writing notes, or just commit: the post-commit hook syncs for you."

	// Uninit output
	MsgUninitDone        = "Removed thoughts from %s"
	MsgUninitMapping     = "Removed mapping %s from configuration"
	MsgUninitNoMapping   = "No mapping found in configuration"
	MsgUninitContentKept = "Your notes are still in %s"
	MsgUninitOrphans     = "Removed %d stale repository mapping(s)"

	// Sync output
	MsgSyncIndexed       = "Indexed %d file(s) in thoughts/searchable"
	MsgSyncCommitted     = "Committed %s: %s"
	MsgSyncNoChanges     = "No changes to commit"
	MsgSyncNoRemote      = "No remote configured for the thoughts repository; changes are only committed locally"
	MsgSyncPulled        = "Pulled latest changes from %s"
	MsgSyncPushed        = "Pushed to %s"
	MsgSyncConflict      = "Merge conflict while pulling from %s. Resolve it manually in %s, then run sync again."
	MsgSyncWarning       = "Warning: %v"
	MsgSyncDone          = "Thoughts synchronized"
	MsgSyncDoneLocalOnly = "Thoughts committed locally"

	// Status output
	MsgStatusTitle         = "Thoughts Repository Status"
	MsgStatusNotConfigured = "Thoughts are not configured. Run 'hyprlayer thoughts init' to set up."
	MsgStatusUnmapped      = "This repository is not mapped to a thoughts directory."
	MsgStatusNotInit       = "thoughts/ is missing. Run 'hyprlayer thoughts init' to create it."
	MsgStatusNoRepo        = "Thoughts repository not found at %s"
	MsgStatusClean         = "No uncommitted changes"
	MsgStatusNoRemote      = "none (local only)"
	MsgStatusNoCommits     = "no commits yet"

	// Profile output
	MsgProfileCreated     = "Created profile %q"
	MsgProfileSanitized   = "Profile name %q was sanitized to %q"
	MsgProfileRepoCreated = "Created thoughts repository at %s"
	MsgProfileNone        = "No profiles configured."
	MsgProfileDeleted     = "Deleted profile %q"
	MsgProfileOrphaned    = "These repositories now use the default layout: %s"
	MsgProfileUse         = "Use it with: hyprlayer thoughts init --profile %s"

	// Error messages
	MsgErrConflictFlags = "--json and --format cannot be used together"
	MsgErrEditor        = "failed to run editor %s: %w"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfigFile  = "Path to the configuration file (default $XDG_CONFIG_HOME/hyprlayer/config.json)"
	MsgFlagInitForce   = "Reconfigure even if thoughts/ already exists"
	MsgFlagDirectory   = "Directory name in the thoughts repository, skipping the prompt"
	MsgFlagProfile     = "Profile to store this repository's thoughts in"
	MsgFlagUninitForce = "Remove thoughts/ even when the repository is not mapped"
	MsgFlagMessage     = "Commit message for the thoughts repository"
	MsgFlagRepo        = "Thoughts repository of the profile"
	MsgFlagReposDir    = "Directory name for repository-specific thoughts"
	MsgFlagGlobalDir   = "Directory name for global thoughts"
	MsgFlagJSON        = "Output as JSON"
	MsgFlagFormat      = "Output format: json, yaml or toml"
	MsgFlagEdit        = "Open the configuration file in $EDITOR"
	MsgFlagDeleteForce = "Delete even if repositories use the profile"

	// Version output
	MsgVersionFormat = "hyprlayer version %s\n"
	MsgCommitFormat  = "Commit: %s\n"
	MsgBuiltFormat   = "Built:  %s\n"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/thoughts-long.txt
	msgThoughtsLongRaw string
	MsgThoughtsLong    = strings.TrimSpace(msgThoughtsLongRaw)

	//go:embed msgs/init-long.txt
	msgInitLongRaw string
	MsgInitLong    = strings.TrimSpace(msgInitLongRaw)

	//go:embed msgs/init-example.txt
	msgInitExampleRaw string
	MsgInitExample    = strings.TrimRight(msgInitExampleRaw, "\n")

	//go:embed msgs/uninit-long.txt
	msgUninitLongRaw string
	MsgUninitLong    = strings.TrimSpace(msgUninitLongRaw)

	//go:embed msgs/sync-long.txt
	msgSyncLongRaw string
	MsgSyncLong    = strings.TrimSpace(msgSyncLongRaw)

	//go:embed msgs/sync-example.txt
	msgSyncExampleRaw string
	MsgSyncExample    = strings.TrimRight(msgSyncExampleRaw, "\n")

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/profile-long.txt
	msgProfileLongRaw string
	MsgProfileLong    = strings.TrimSpace(msgProfileLongRaw)

	//go:embed msgs/profile-example.txt
	msgProfileExampleRaw string
	MsgProfileExample    = strings.TrimRight(msgProfileExampleRaw, "\n")

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
