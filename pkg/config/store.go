package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/hyprlayer/pkg/errors"
	"github.com/arthur-debert/hyprlayer/pkg/logging"
)

// SectionKey is the top-level key of the document owned by this package.
// Other top-level sections are preserved on save.
const SectionKey = "thoughts"

// Load reads the configuration document at path
func Load(path string) (*GlobalConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Newf(errors.ErrConfigNotFound,
				"thoughts not configured (no config at %s); run 'hyprlayer thoughts init' first", path).
				WithDetail("path", path)
		}
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to read config %s", path)
	}

	cfg, err := Parse(data)
	if err != nil {
		if hErr, ok := err.(*errors.HyprlayerError); ok {
			hErr.WithDetail("path", path)
		}
		return nil, err
	}

	logger := logging.GetLogger("config.store")
	logger.Debug().
		Str("path", path).
		Int("mappings", len(cfg.RepoMappings)).
		Int("profiles", len(cfg.Profiles)).
		Msg("Loaded configuration")
	return cfg, nil
}

// LoadIfExists is Load that treats a missing file as "no configuration yet"
// and returns nil without error.
func LoadIfExists(path string) (*GlobalConfig, error) {
	cfg, err := Load(path)
	if errors.IsErrorCode(err, errors.ErrConfigNotFound) {
		return nil, nil
	}
	return cfg, err
}

// Parse decodes a full configuration document and returns its thoughts
// section.
func Parse(data []byte) (*GlobalConfig, error) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigMalformed, "config is not valid JSON")
	}

	section, ok := doc[SectionKey]
	if !ok || string(section) == "null" {
		return nil, errors.New(errors.ErrConfigMalformed, "no thoughts configuration found in config")
	}

	var present map[string]json.RawMessage
	if err := json.Unmarshal(section, &present); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigMalformed, "thoughts configuration must be an object")
	}
	for _, key := range requiredKeys {
		if _, ok := present[key]; !ok {
			return nil, errors.Newf(errors.ErrConfigMalformed, "thoughts configuration is missing required field %q", key).
				WithDetail("field", key)
		}
	}

	var cfg GlobalConfig
	if err := json.Unmarshal(section, &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigMalformed, "invalid thoughts configuration")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes cfg as the thoughts section of the document at path. The rest
// of the document is re-read and kept; the file is replaced atomically.
func Save(cfg *GlobalConfig, path string) error {
	logger := logging.GetLogger("config.store")

	if err := cfg.Validate(); err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create config directory %s", dir)
	}

	doc := map[string]json.RawMessage{}
	existing, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := json.Unmarshal(existing, &doc); err != nil {
			return errors.Wrapf(err, errors.ErrConfigMalformed, "refusing to overwrite unparseable config %s", path)
		}
		if doc == nil {
			doc = map[string]json.RawMessage{}
		}
	case !os.IsNotExist(err):
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to read config %s", path)
	}

	section, err := json.Marshal(cfg)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode thoughts configuration")
	}
	doc[SectionKey] = section

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode config document")
	}
	out = append(out, '\n')

	if err := writeAtomic(path, out); err != nil {
		return errors.Wrapf(err, errors.ErrConfigSave, "failed to write config %s", path)
	}

	logger.Debug().Str("path", path).Int("sections", len(doc)).Msg("Saved configuration")
	return nil
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".config-*.json.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}

// FindOrphanedMappings returns the mapped repository paths that no longer
// exist as directories, sorted.
func (c *GlobalConfig) FindOrphanedMappings() []string {
	var orphans []string
	for path := range c.RepoMappings {
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			orphans = append(orphans, path)
		}
	}
	sort.Strings(orphans)
	return orphans
}

// RemoveMappings deletes the given repository paths from the mappings
func (c *GlobalConfig) RemoveMappings(repoPaths []string) {
	for _, p := range repoPaths {
		delete(c.RepoMappings, p)
	}
}
