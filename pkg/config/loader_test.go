package config_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/urllang/api/v1beta1/configs"
	"github.com/macropower/urllang/pkg/config"
	"github.com/macropower/urllang/pkg/yaml"
)

const minimalConfig = `apiVersion: urllang.macropower.dev/v1beta1
kind: Configuration
`

var errRejected = errors.New("rejected")

// recordingValidator records the data it validates.
type recordingValidator struct {
	err  error
	data any
}

func (v *recordingValidator) Validate(data any) error {
	v.data = data

	return v.err
}

func createTempFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestNewLoaderFromFile(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		setupFile func(t *testing.T) string
		wantErr   error
	}{
		"valid file": {
			setupFile: func(t *testing.T) string {
				t.Helper()

				return createTempFile(t, minimalConfig)
			},
		},
		"non-existent file": {
			setupFile: func(t *testing.T) string {
				t.Helper()

				return filepath.Join(t.TempDir(), "missing.yaml")
			},
			wantErr: fs.ErrNotExist,
		},
		"directory instead of file": {
			setupFile: func(t *testing.T) string {
				t.Helper()

				return t.TempDir()
			},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			path := tc.setupFile(t)

			got, err := config.NewLoaderFromFile(path, configs.New, configs.DefaultValidator)

			switch {
			case name == "valid file":
				require.NoError(t, err)
				assert.Equal(t, path, got.Path())

			case tc.wantErr != nil:
				require.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, got)

			default:
				require.Error(t, err)
				assert.Nil(t, got)
			}
		})
	}
}

func TestLoader_ValidateAndLoad(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		data    string
		wantErr string
	}{
		"minimal": {
			data: minimalConfig,
		},
		"unknown field": {
			data:    minimalConfig + "profile: []\n",
			wantErr: "profile",
		},
		"wrong kind": {
			data: `apiVersion: urllang.macropower.dev/v1beta1
kind: Policy
`,
			wantErr: "kind",
		},
		"invalid yaml": {
			data:    minimalConfig + "matchers: [\n",
			wantErr: "matchers",
		},
		"duplicate key": {
			data:    minimalConfig + "kind: Configuration\n",
			wantErr: "already defined",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			l := config.NewLoaderFromBytes([]byte(tc.data), configs.New, configs.DefaultValidator)
			assert.Empty(t, l.Path())

			cfg, err := l.ValidateAndLoad()
			if tc.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, configs.New(), cfg)

				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
			assert.NotContains(t, err.Error(), "\x1b[", "errors are not colored by default")
			assert.Nil(t, cfg)
		})
	}
}

func TestLoader_Load_EnsureDefaults(t *testing.T) {
	t.Parallel()

	l := config.NewLoaderFromBytes([]byte(minimalConfig), configs.New, nil)

	cfg, err := l.Load()
	require.NoError(t, err)

	assert.NotNil(t, cfg.Mappings)
	assert.NotNil(t, cfg.Matchers)
	assert.NotNil(t, cfg.Profiles)
	assert.Empty(t, cfg.Profiles)
}

func TestLoader_WithValidator(t *testing.T) {
	t.Parallel()

	v := &recordingValidator{}
	l := config.NewLoaderFromBytes([]byte(minimalConfig+"extra: true\n"), configs.New, configs.DefaultValidator,
		config.WithValidator(v),
	)

	require.NoError(t, l.Validate())
	assert.Equal(t, map[string]any{
		"apiVersion": "urllang.macropower.dev/v1beta1",
		"kind":       "Configuration",
		"extra":      true,
	}, v.data)

	v.err = errRejected

	err := l.Validate()
	require.ErrorIs(t, err, errRejected)

	var yamlErr *yaml.Error
	assert.False(t, errors.As(err, &yamlErr), "errors without a path are not annotated")
}

func TestLoader_WithColor(t *testing.T) {
	t.Parallel()

	data := minimalConfig + "matchers:\n  - name: m\n    urlPart: fragment\n    patterns: ['(?<lang>.*)']\n"

	plain := config.NewLoaderFromBytes([]byte(data), configs.New, configs.DefaultValidator)
	colored := config.NewLoaderFromBytes([]byte(data), configs.New, configs.DefaultValidator,
		config.WithColor(true),
	)

	plainErr := plain.Validate()
	require.Error(t, plainErr)

	colorErr := colored.Validate()
	require.Error(t, colorErr)

	assert.Contains(t, plainErr.Error(), "urlPart")
	assert.NotEqual(t, plainErr.Error(), colorErr.Error())
}
