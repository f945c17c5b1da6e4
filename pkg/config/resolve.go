package config

import (
	"sort"
	"strings"

	"github.com/arthur-debert/hyprlayer/pkg/errors"
)

// Resolve computes the effective configuration for repoPath. It never fails:
// an unmapped repository gets the default layout with no mapped name, and a
// mapping whose profile has disappeared falls back to the default layout
// while keeping its mapped name.
func Resolve(cfg *GlobalConfig, repoPath string) EffectiveConfig {
	eff := EffectiveConfig{
		ThoughtsRepo: cfg.ThoughtsRepo,
		ReposDir:     cfg.ReposDir,
		GlobalDir:    cfg.GlobalDir,
	}

	mapping, ok := cfg.RepoMappings[repoPath]
	if !ok {
		return eff
	}
	eff.MappedName = mapping.RepoName()

	if !mapping.HasProfile() {
		return eff
	}
	profile, ok := cfg.Profiles[mapping.ProfileName()]
	if !ok {
		return eff
	}

	eff.ThoughtsRepo = profile.ThoughtsRepo
	eff.ReposDir = profile.ReposDir
	eff.GlobalDir = profile.GlobalDir
	eff.ProfileName = mapping.ProfileName()
	return eff
}

// ResolveDirs returns the layout for an explicit profile name. Empty or
// unknown names give the default layout.
func (c *GlobalConfig) ResolveDirs(profile string) ProfileStorage {
	if profile != "" {
		if p, ok := c.Profiles[profile]; ok {
			return p
		}
	}
	return c.DefaultStorage()
}

// ValidateProfile fails with PROFILE_NOT_FOUND for a non-empty name that is
// not configured. The error lists the available profiles.
func (c *GlobalConfig) ValidateProfile(name string) error {
	if name == "" {
		return nil
	}
	if _, ok := c.Profiles[name]; ok {
		return nil
	}

	available := c.ProfileNames()
	msg := "none configured"
	if len(available) > 0 {
		msg = strings.Join(available, ", ")
	}
	return errors.Newf(errors.ErrProfileNotFound, "profile %q does not exist (available: %s)", name, msg).
		WithDetail("profile", name)
}

// ProfileNames returns the configured profile names, sorted
func (c *GlobalConfig) ProfileNames() []string {
	names := make([]string, 0, len(c.Profiles))
	for name := range c.Profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ReposUsingProfile returns the repository paths whose mapping references
// profile, sorted
func (c *GlobalConfig) ReposUsingProfile(profile string) []string {
	var repos []string
	for path, mapping := range c.RepoMappings {
		if mapping.ProfileName() == profile {
			repos = append(repos, path)
		}
	}
	sort.Strings(repos)
	return repos
}
