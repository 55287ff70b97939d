// Package configs provides the Configuration kind: the mapping, matcher and
// profile definitions that urllang builds a detector from.
package configs

import (
	"fmt"

	"github.com/invopop/jsonschema"

	_ "embed"

	"github.com/macropower/urllang/api"
	"github.com/macropower/urllang/api/v1beta1"
	"github.com/macropower/urllang/pkg/config"
	"github.com/macropower/urllang/pkg/mapping"
	"github.com/macropower/urllang/pkg/matcher"
	"github.com/macropower/urllang/pkg/profile"
	"github.com/macropower/urllang/pkg/yaml"
)

//go:generate go run ../../../internal/schemagen/main.go -o configs.v1beta1.json

// Kind is the kind of a [Config] document.
const Kind = "Configuration"

var (
	//go:embed config.yaml
	defaultConfigYAML []byte

	//go:embed configs.v1beta1.json
	schemaJSON []byte

	// ValidKinds contains the valid kind values for configurations.
	ValidKinds = []string{Kind}

	// DefaultValidator validates configurations against the JSON schema.
	DefaultValidator = yaml.MustNewValidator("/configs.v1beta1.json", schemaJSON)

	// Compile-time interface checks.
	_ v1beta1.Object = (*Config)(nil)
)

// Config represents a urllang configuration.
//
//nolint:recvcheck // Must satisfy the jsonschema interface.
type Config struct {
	v1beta1.TypeMeta `json:",inline"`
	// Mappings define token to language tables, in addition to the
	// built-in tables.
	Mappings []*mapping.Config `json:"mappings,omitempty" jsonschema:"title=Mappings"`
	// Matchers define patterns that extract language tokens from a URL part.
	Matchers []*matcher.Config `json:"matchers,omitempty" jsonschema:"title=Matchers"`
	// Profiles select matchers by host. The first matching profile is used.
	Profiles []*profile.Config `json:"profiles,omitempty" jsonschema:"title=Profiles"`
}

// New creates an empty [Config].
func New() *Config {
	c := &Config{
		TypeMeta: v1beta1.TypeMeta{
			APIVersion: v1beta1.APIVersion,
			Kind:       Kind,
		},
	}
	c.EnsureDefaults()

	return c
}

// Default returns the embedded default configuration.
func Default() *Config {
	cfg, err := NewLoaderFromBytes(defaultConfigYAML).ValidateAndLoad()
	if err != nil {
		panic(fmt.Errorf("load default config: %w", err))
	}

	return cfg
}

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	out := make([]byte, len(defaultConfigYAML))
	copy(out, defaultConfigYAML)

	return out
}

// Schema returns the JSON schema for [Config] documents.
func Schema() []byte {
	out := make([]byte, len(schemaJSON))
	copy(out, schemaJSON)

	return out
}

// NewLoaderFromBytes creates a [config.Loader] for a [Config] document.
func NewLoaderFromBytes(data []byte, opts ...config.LoaderOpt) *config.Loader[*Config] {
	return config.NewLoaderFromBytes(data, New, DefaultValidator, opts...)
}

// NewLoaderFromFile creates a [config.Loader] for a [Config] file.
func NewLoaderFromFile(path string, opts ...config.LoaderOpt) (*config.Loader[*Config], error) {
	l, err := config.NewLoaderFromFile(path, New, DefaultValidator, opts...)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	return l, nil
}

// EnsureDefaults replaces absent sections with empty lists.
func (c *Config) EnsureDefaults() {
	if c.Mappings == nil {
		c.Mappings = []*mapping.Config{}
	}
	if c.Matchers == nil {
		c.Matchers = []*matcher.Config{}
	}
	if c.Profiles == nil {
		c.Profiles = []*profile.Config{}
	}
}

func (c Config) JSONSchemaExtend(jss *jsonschema.Schema) {
	v1beta1.ExtendSchemaWithEnums(jss, v1beta1.ValidAPIVersions, ValidKinds)
}

// MarshalYAML serializes the config to YAML.
func (c Config) MarshalYAML() ([]byte, error) {
	type alias Config

	b, err := api.MarshalYAML(alias(c))
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}

	return b, nil
}

// Write writes the config to the specified path if it doesn't already exist.
func (c Config) Write(path string) error {
	b, err := c.MarshalYAML()
	if err != nil {
		return err
	}

	err = api.WriteIfNotExists(path, b)
	if err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	return nil
}

// WriteDefault writes the embedded default config.yaml to the specified path.
func WriteDefault(path string, force bool) error {
	err := api.WriteDefaultFile(path, defaultConfigYAML, force, "configuration")
	if err != nil {
		return fmt.Errorf("write default config: %w", err)
	}

	return nil
}

// GetPath returns the path to the user configuration file.
func GetPath() string {
	return api.GetConfigPath("config.yaml")
}
