package config

import (
	"encoding/json"
	"strings"

	"github.com/arthur-debert/hyprlayer/pkg/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Export formats
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// ExportFormats lists the formats accepted by Export
var ExportFormats = []string{FormatJSON, FormatYAML, FormatTOML}

// Export renders the configuration as a {"thoughts": ...} document in the
// requested format. Mapping shapes are kept: bare mappings stay strings.
func Export(cfg *GlobalConfig, format string) ([]byte, error) {
	doc := map[string]*GlobalConfig{SectionKey: cfg}

	switch strings.ToLower(format) {
	case FormatJSON, "":
		out, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode config as JSON")
		}
		return append(out, '\n'), nil
	case FormatYAML, "yml":
		generic, err := toGeneric(doc)
		if err != nil {
			return nil, err
		}
		out, err := yaml.Marshal(generic)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode config as YAML")
		}
		return out, nil
	case FormatTOML:
		generic, err := toGeneric(doc)
		if err != nil {
			return nil, err
		}
		out, err := toml.Marshal(generic)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode config as TOML")
		}
		return out, nil
	default:
		return nil, errors.Newf(errors.ErrInvalidInput, "unknown format %q (expected one of: %s)",
			format, strings.Join(ExportFormats, ", "))
	}
}

// toGeneric goes through JSON so the custom mapping encoding applies to the
// other formats too.
func toGeneric(v interface{}) (map[string]interface{}, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode config")
	}
	var generic map[string]interface{}
	if err := json.Unmarshal(data, &generic); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to decode config")
	}
	return generic, nil
}
