package config

import (
	_ "embed"
	stderrors "errors"
	"fmt"
	"os"
	"strings"

	"github.com/arthur-debert/hyprlayer/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

//go:embed embedded/defaults.toml
var defaultsTOML []byte

// EnvPrefix is the prefix of environment overrides for Defaults
const EnvPrefix = "HYPRLAYER_"

// Defaults are the values offered when creating a configuration
type Defaults struct {
	ThoughtsRepo string `koanf:"thoughts_repo"`
	ReposDir     string `koanf:"repos_dir"`
	GlobalDir    string `koanf:"global_dir"`
	User         string `koanf:"user"`
}

var defaultKeys = map[string]bool{
	"thoughts_repo": true,
	"repos_dir":     true,
	"global_dir":    true,
	"user":          true,
}

// rawBytesProvider implements koanf provider for raw bytes
type rawBytesProvider struct{ bytes []byte }

func (r *rawBytesProvider) ReadBytes() ([]byte, error) { return r.bytes, nil }
func (r *rawBytesProvider) Read() (map[string]interface{}, error) {
	return nil, stderrors.New("not implemented")
}

// LoadDefaults layers the embedded defaults, an optional user TOML file and
// HYPRLAYER_* environment variables. An empty userFile skips the file layer.
func LoadDefaults(userFile string) (Defaults, error) {
	logger := logging.GetLogger("config.defaults")
	k := koanf.New(".")

	if err := k.Load(&rawBytesProvider{bytes: defaultsTOML}, toml.Parser()); err != nil {
		return Defaults{}, fmt.Errorf("failed to load defaults: %w", err)
	}

	if userFile != "" {
		if _, err := os.Stat(userFile); err == nil {
			if err := k.Load(file.Provider(userFile), toml.Parser()); err != nil {
				return Defaults{}, fmt.Errorf("failed to load defaults from %s: %w", userFile, err)
			}
			logger.Debug().Str("path", userFile).Msg("Loaded user defaults")
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		if !defaultKeys[key] {
			return ""
		}
		return SectionKey + "." + key
	}), nil)
	if err != nil {
		return Defaults{}, fmt.Errorf("failed to load env vars: %w", err)
	}

	var d Defaults
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &d,
			WeaklyTypedInput: true,
		},
	}
	if err := k.UnmarshalWithConf(SectionKey, &d, unmarshalConf); err != nil {
		return Defaults{}, fmt.Errorf("failed to unmarshal defaults: %w", err)
	}

	if d.User == "" {
		d.User = systemUser()
	}
	if ValidateUserName(d.User) != nil {
		d.User = ""
	}
	return d, nil
}

func systemUser() string {
	for _, key := range []string{"USER", "USERNAME", "LOGNAME"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

// NewGlobalConfig builds an empty configuration from defaults
func NewGlobalConfig(d Defaults) *GlobalConfig {
	return &GlobalConfig{
		ThoughtsRepo: d.ThoughtsRepo,
		ReposDir:     d.ReposDir,
		GlobalDir:    d.GlobalDir,
		User:         d.User,
		RepoMappings: map[string]RepoMapping{},
	}
}
