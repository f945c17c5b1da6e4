// Package paths provides centralized path handling for hyprlayer.
// It implements XDG Base Directory specification compliance and
// names every fixed location in the thoughts layout.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/hyprlayer/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigFile points at an explicit config.json, like --config-file
	EnvConfigFile = "HYPRLAYER_CONFIG"

	// EnvConfigDir overrides the XDG config directory for hyprlayer
	EnvConfigDir = "HYPRLAYER_CONFIG_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Fixed names. These are part of the on-disk contract shared with hooks and
// other machines syncing the same thoughts repository; they are not
// configurable.
const (
	// AppDirName is the directory name for hyprlayer-specific files
	AppDirName = "hyprlayer"

	// ConfigFileName is the name of the global configuration document
	ConfigFileName = "config.json"

	// DefaultsFileName is an optional TOML file overriding prompt defaults
	DefaultsFileName = "defaults.toml"

	// ThoughtsDirName is the directory created inside each code repository
	ThoughtsDirName = "thoughts"

	// SearchableDirName is the hard-link mirror inside ThoughtsDirName
	SearchableDirName = "searchable"

	// SharedDirName holds notes shared by every user
	SharedDirName = "shared"

	// GlobalLinkName is the symlink to the cross-repository notes
	GlobalLinkName = "global"

	// GeneratedIndexFile is written by agent tooling and never indexed
	GeneratedIndexFile = "CLAUDE.md"

	// DefaultThoughtsDirName is the thoughts repository under $HOME
	DefaultThoughtsDirName = "thoughts"

	// UnnamedRepo is used when a repository path has no usable base name
	UnnamedRepo = "unnamed_repo"
)

// Paths resolves the locations hyprlayer reads its own state from
type Paths interface {
	ConfigFile() string
	ConfigDir() string
	DefaultsFile() string
	UsedOverride() bool
}

type paths struct {
	configFile   string
	configDir    string
	usedOverride bool
}

// New creates a Paths instance. An explicit configFile (from --config-file)
// wins over HYPRLAYER_CONFIG, which wins over the XDG default.
func New(configFile string) (Paths, error) {
	p := &paths{}

	if configFile == "" {
		configFile = os.Getenv(EnvConfigFile)
	}

	if configFile != "" {
		expanded, err := ExpandHome(configFile)
		if err != nil {
			return nil, err
		}
		abs, err := filepath.Abs(expanded)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrInvalidInput, "invalid config path %q", configFile)
		}
		p.configFile = abs
		p.configDir = filepath.Dir(abs)
		p.usedOverride = true
		return p, nil
	}

	if dir := os.Getenv(EnvConfigDir); dir != "" {
		expanded, err := ExpandHome(dir)
		if err != nil {
			return nil, err
		}
		p.configDir = expanded
	} else {
		xdg.Reload()
		p.configDir = filepath.Join(xdg.ConfigHome, AppDirName)
	}
	p.configFile = filepath.Join(p.configDir, ConfigFileName)

	return p, nil
}

func (p *paths) ConfigFile() string { return p.configFile }

func (p *paths) ConfigDir() string { return p.configDir }

// DefaultsFile is the optional user override for prompt defaults, kept next
// to the config document.
func (p *paths) DefaultsFile() string {
	return filepath.Join(p.configDir, DefaultsFileName)
}

// UsedOverride reports whether the config location came from a flag or
// environment variable rather than the XDG default.
func (p *paths) UsedOverride() bool { return p.usedOverride }

// GetHomeDirectory returns the user's home directory with proper error handling
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		if home := os.Getenv(EnvHome); home != "" {
			return home, nil
		}
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get home directory")
	}
	return homeDir, nil
}

// ExpandHome expands a leading ~ to the home directory. Paths of the form
// ~user are returned unchanged.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}

	if len(path) > 1 && path[1] != '/' && path[1] != filepath.Separator {
		return path, nil
	}

	homeDir, err := GetHomeDirectory()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}
	return filepath.Join(homeDir, path[2:]), nil
}

// ContractHome is the inverse of ExpandHome, used when storing paths the
// user typed so the config stays portable between machines.
func ContractHome(path string) string {
	homeDir, err := GetHomeDirectory()
	if err != nil || homeDir == "" {
		return path
	}
	if path == homeDir {
		return "~"
	}
	if strings.HasPrefix(path, homeDir+string(filepath.Separator)) {
		return "~/" + filepath.ToSlash(strings.TrimPrefix(path, homeDir+string(filepath.Separator)))
	}
	return path
}

// DefaultThoughtsRepo is the suggested thoughts repository location
func DefaultThoughtsRepo() string {
	return "~/" + DefaultThoughtsDirName
}

// ThoughtsDir is the thoughts/ directory inside a code repository
func ThoughtsDir(codeRepo string) string {
	return filepath.Join(codeRepo, ThoughtsDirName)
}

// SearchableDir is the hard-link mirror inside a thoughts/ directory
func SearchableDir(thoughtsDir string) string {
	return filepath.Join(thoughtsDir, SearchableDirName)
}

// CurrentRepoPath returns the absolute, cleaned working directory. Repository
// mappings are keyed by this value.
func CurrentRepoPath() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, errors.ErrFileAccess, "failed to get current directory")
	}
	abs, err := filepath.Abs(cwd)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrFileAccess, "failed to resolve current directory")
	}
	return filepath.Clean(abs), nil
}

// RepoNameFromPath returns the last path element, used as the suggested
// directory name for a new mapping.
func RepoNameFromPath(repoPath string) string {
	base := filepath.Base(filepath.Clean(repoPath))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return UnnamedRepo
	}
	return base
}
