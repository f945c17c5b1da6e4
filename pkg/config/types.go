package config

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// GlobalConfig is the "thoughts" section of the configuration document.
// One per machine and user.
type GlobalConfig struct {
	ThoughtsRepo string                    `json:"thoughtsRepo"`
	ReposDir     string                    `json:"reposDir"`
	GlobalDir    string                    `json:"globalDir"`
	User         string                    `json:"user"`
	RepoMappings map[string]RepoMapping    `json:"repoMappings"`
	Profiles     map[string]ProfileStorage `json:"profiles,omitempty"`

	// Extra holds keys of the thoughts section owned by other tooling
	// (agent selection, update checks). They are written back untouched.
	Extra map[string]json.RawMessage `json:"-"`
}

// ProfileStorage is a complete alternate storage layout
type ProfileStorage struct {
	ThoughtsRepo string `json:"thoughtsRepo"`
	ReposDir     string `json:"reposDir"`
	GlobalDir    string `json:"globalDir"`
}

// DefaultStorage returns the default layout as a ProfileStorage
func (c *GlobalConfig) DefaultStorage() ProfileStorage {
	return ProfileStorage{
		ThoughtsRepo: c.ThoughtsRepo,
		ReposDir:     c.ReposDir,
		GlobalDir:    c.GlobalDir,
	}
}

var knownKeys = []string{"thoughtsRepo", "reposDir", "globalDir", "user", "repoMappings", "profiles"}

var requiredKeys = []string{"thoughtsRepo", "reposDir", "globalDir", "user"}

// globalConfigFields avoids MarshalJSON recursion
type globalConfigFields GlobalConfig

// MarshalJSON writes the known fields and merges Extra back in
func (c GlobalConfig) MarshalJSON() ([]byte, error) {
	fields := globalConfigFields(c)
	if fields.RepoMappings == nil {
		fields.RepoMappings = map[string]RepoMapping{}
	}
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	if len(c.Extra) == 0 {
		return data, nil
	}

	var merged map[string]json.RawMessage
	if err := json.Unmarshal(data, &merged); err != nil {
		return nil, err
	}
	for k, v := range c.Extra {
		if _, ok := merged[k]; !ok {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

// UnmarshalJSON reads the known fields and keeps everything else in Extra
func (c *GlobalConfig) UnmarshalJSON(data []byte) error {
	var fields globalConfigFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for _, k := range knownKeys {
		delete(raw, k)
	}

	*c = GlobalConfig(fields)
	if c.RepoMappings == nil {
		c.RepoMappings = map[string]RepoMapping{}
	}
	if len(raw) > 0 {
		c.Extra = raw
	}
	return nil
}

// RepoMapping associates a code repository with a directory under the
// thoughts repository. It is stored either as a bare directory name or as
// an object carrying a profile; the stored shape is preserved on save.
type RepoMapping struct {
	repo    string
	profile string
	object  bool
}

// NewRepoMapping returns the bare form when profile is empty and the object
// form otherwise.
func NewRepoMapping(repo, profile string) RepoMapping {
	return RepoMapping{repo: repo, profile: profile, object: profile != ""}
}

// RepoName is the directory name under <thoughtsRepo>/<reposDir>
func (m RepoMapping) RepoName() string { return m.repo }

// ProfileName is empty for mappings without a profile
func (m RepoMapping) ProfileName() string { return m.profile }

// HasProfile reports whether the mapping names a profile
func (m RepoMapping) HasProfile() bool { return m.profile != "" }

type repoMappingObject struct {
	Repo    string  `json:"repo"`
	Profile *string `json:"profile,omitempty"`
}

// MarshalJSON implements json.Marshaler
func (m RepoMapping) MarshalJSON() ([]byte, error) {
	if !m.object {
		return json.Marshal(m.repo)
	}
	obj := repoMappingObject{Repo: m.repo}
	if m.profile != "" {
		profile := m.profile
		obj.Profile = &profile
	}
	return json.Marshal(obj)
}

// UnmarshalJSON implements json.Unmarshaler
func (m *RepoMapping) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("empty repo mapping")
	}

	switch trimmed[0] {
	case '"':
		var name string
		if err := json.Unmarshal(trimmed, &name); err != nil {
			return err
		}
		if name == "" {
			return fmt.Errorf("repo mapping must not be empty")
		}
		*m = RepoMapping{repo: name}
		return nil
	case '{':
		var obj repoMappingObject
		if err := json.Unmarshal(trimmed, &obj); err != nil {
			return err
		}
		if obj.Repo == "" {
			return fmt.Errorf("repo mapping object requires a non-empty \"repo\"")
		}
		*m = RepoMapping{repo: obj.Repo, object: true}
		if obj.Profile != nil {
			m.profile = *obj.Profile
		}
		return nil
	default:
		return fmt.Errorf("repo mapping must be a string or an object, got %s", string(trimmed))
	}
}

// EffectiveConfig is the resolved layout for one code repository. It is
// derived on every query and never persisted.
type EffectiveConfig struct {
	ThoughtsRepo string `json:"thoughtsRepo"`
	ReposDir     string `json:"reposDir"`
	GlobalDir    string `json:"globalDir"`
	// ProfileName is empty when the default layout applies
	ProfileName string `json:"profileName,omitempty"`
	// MappedName is empty when the repository is not mapped
	MappedName string `json:"mappedName,omitempty"`
}

// IsMapped reports whether the repository has a mapping
func (e EffectiveConfig) IsMapped() bool { return e.MappedName != "" }

// Storage returns the layout part of the effective configuration
func (e EffectiveConfig) Storage() ProfileStorage {
	return ProfileStorage{ThoughtsRepo: e.ThoughtsRepo, ReposDir: e.ReposDir, GlobalDir: e.GlobalDir}
}
