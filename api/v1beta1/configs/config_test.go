package configs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/urllang/api/v1beta1"
	"github.com/macropower/urllang/api/v1beta1/configs"
	"github.com/macropower/urllang/pkg/mapping"
	"github.com/macropower/urllang/pkg/yaml"
)

func TestNew(t *testing.T) {
	t.Parallel()

	cfg := configs.New()

	assert.Equal(t, v1beta1.APIVersion, cfg.GetAPIVersion())
	assert.Equal(t, "Configuration", cfg.GetKind())
	assert.NotNil(t, cfg.Mappings)
	assert.NotNil(t, cfg.Matchers)
	assert.NotNil(t, cfg.Profiles)
	assert.Empty(t, cfg.Profiles)
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := configs.Default()

	require.Len(t, cfg.Mappings, 1)
	assert.Equal(t, "all", cfg.Mappings[0].Name)
	assert.Equal(t, []string{mapping.ISO6391, mapping.ISO6393, mapping.LanguageTags}, cfg.Mappings[0].Extend)

	names := make([]string, 0, len(cfg.Matchers))
	for _, m := range cfg.Matchers {
		names = append(names, m.Name)
	}

	assert.Equal(t, []string{"hostname", "path", "querystring"}, names)
	assert.Equal(t, []string{`(?<lang>[^.]+)(?:\.[^.]+){2,}`}, cfg.Matchers[0].Patterns)

	require.Len(t, cfg.Profiles, 1)

	p := cfg.Profiles[0]
	assert.Equal(t, "default", p.Name)
	assert.Equal(t, []string{".*"}, p.Domains)
	assert.Equal(t, mapping.ISO6391, p.Mapping)
	require.Len(t, p.Matchers, 3)
	assert.Equal(t, "querystring", p.Matchers[2].Matcher)
	assert.Equal(t, "all", p.Matchers[2].Mapping)
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	data := []byte(`apiVersion: urllang.macropower.dev/v1beta1
kind: Configuration
mappings:
  - name: names
    caseSensitive: true
    add:
      fr: french, francais
      de: [german, deutsch]
`)

	cfg, err := configs.NewLoaderFromBytes(data).ValidateAndLoad()
	require.NoError(t, err)

	require.Len(t, cfg.Mappings, 1)
	assert.True(t, cfg.Mappings[0].CaseSensitive)
	assert.Equal(t, mapping.TokenMap{
		{Tag: "fr", Tokens: []string{"french", "francais"}},
		{Tag: "de", Tokens: []string{"german", "deutsch"}},
	}, cfg.Mappings[0].Add)

	// Absent sections are empty.
	assert.NotNil(t, cfg.Matchers)
	assert.Empty(t, cfg.Matchers)
	assert.Empty(t, cfg.Profiles)
}

func TestLoader_UppercaseTags(t *testing.T) {
	t.Parallel()

	data := []byte(`apiVersion: urllang.macropower.dev/v1beta1
kind: Configuration
mappings:
  - name: names
    add:
      FR: french
    override:
      EN-us: american
`)

	cfg, err := configs.NewLoaderFromBytes(data).ValidateAndLoad()
	require.NoError(t, err)

	require.Len(t, cfg.Mappings, 1)
	assert.Equal(t, "FR", cfg.Mappings[0].Add[0].Tag)
	assert.Equal(t, "EN-us", cfg.Mappings[0].Override[0].Tag)
}

func TestLoader_ValidateErrors(t *testing.T) {
	t.Parallel()

	header := "apiVersion: urllang.macropower.dev/v1beta1\nkind: Configuration\n"

	tcs := map[string]struct {
		data     string
		wantPath string
	}{
		"wrong kind": {
			data:     "apiVersion: urllang.macropower.dev/v1beta1\nkind: Policy\n",
			wantPath: "$.kind",
		},
		"unknown url part": {
			data:     header + "matchers:\n  - name: m\n    urlPart: fragment\n    patterns: ['#(?<lang>.*)']\n",
			wantPath: "$.matchers[0].urlPart",
		},
		"unknown field": {
			data:     header + "profiles:\n  - name: p\n    domains: ['.*']\n    hosts: ['.*']\n",
			wantPath: "$.profiles[0]",
		},
		"empty patterns": {
			data:     header + "matchers:\n  - name: m\n    urlPart: path\n    patterns: []\n",
			wantPath: "$.matchers[0].patterns",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := configs.NewLoaderFromBytes([]byte(tc.data)).Validate()
			require.Error(t, err)

			var yamlErr *yaml.Error
			require.ErrorAs(t, err, &yamlErr)
			require.NotNil(t, yamlErr.Path)
			assert.Equal(t, tc.wantPath, yamlErr.Path.String())
			assert.Equal(t, []byte(tc.data), yamlErr.Source)
		})
	}
}

func TestLoader_SyntaxError(t *testing.T) {
	t.Parallel()

	_, err := configs.NewLoaderFromBytes([]byte("kind: [Configuration\n")).ValidateAndLoad()

	var yamlErr *yaml.Error
	require.ErrorAs(t, err, &yamlErr)
	assert.NotNil(t, yamlErr.Token)
}

func TestNewLoaderFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, configs.WriteDefault(path, false))

	l, err := configs.NewLoaderFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, l.Path())

	cfg, err := l.ValidateAndLoad()
	require.NoError(t, err)
	assert.Equal(t, configs.Default(), cfg)

	_, err = configs.NewLoaderFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestConfig_MarshalYAML_RoundTrip(t *testing.T) {
	t.Parallel()

	cfg := configs.Default()
	cfg.Mappings = append(cfg.Mappings, &mapping.Config{
		Name:     "names",
		Extend:   []string{mapping.EnglishNames},
		Override: mapping.TokenMap{{Tag: "fr", Tokens: []string{"french", "francais"}}},
	})

	data, err := cfg.MarshalYAML()
	require.NoError(t, err)
	assert.Contains(t, string(data), "apiVersion: urllang.macropower.dev/v1beta1")
	assert.Contains(t, string(data), "kind: Configuration")
	assert.Contains(t, string(data), "fr: french,francais")

	got, err := configs.NewLoaderFromBytes(data).ValidateAndLoad()
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestConfig_Write(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.yaml")

	require.NoError(t, configs.New().Write(path))

	got, err := configs.NewLoaderFromFile(path)
	require.NoError(t, err)

	cfg, err := got.ValidateAndLoad()
	require.NoError(t, err)
	assert.Equal(t, configs.New(), cfg)

	// Existing files are not replaced.
	existing := filepath.Join(dir, "existing.yaml")
	require.NoError(t, os.WriteFile(existing, []byte("existing"), 0o600))
	require.NoError(t, configs.Default().Write(existing))

	data, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "existing", string(data))
}

func TestWriteDefault(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o600))

	require.NoError(t, configs.WriteDefault(path, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))

	require.NoError(t, configs.WriteDefault(path, true))

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, configs.DefaultYAML(), data)
}

func TestEmbeddedFilesMatchSource(t *testing.T) {
	t.Parallel()

	source, err := os.ReadFile("config.yaml")
	require.NoError(t, err)
	assert.Equal(t, source, configs.DefaultYAML())

	schema, err := os.ReadFile("configs.v1beta1.json")
	require.NoError(t, err)
	assert.JSONEq(t, string(schema), string(configs.Schema()))
}

//nolint:paralleltest // Sets environment variables.
func TestGetPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")

	assert.Equal(t, "/custom/config/urllang/config.yaml", configs.GetPath())
}
