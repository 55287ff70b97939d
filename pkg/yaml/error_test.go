package yaml_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/urllang/pkg/yaml"
)

const testSource = `kind: Configuration
matchers:
  - name: path
    urlPart: fragment
    patterns:
      - /(?<lang>[^/]+)/.*
`

func TestError_AnnotatesSource(t *testing.T) {
	t.Parallel()

	cause := errors.New("value must be one of 'hostname', 'path', 'querystring'")

	err := yaml.NewError(cause,
		yaml.WithPath(yaml.NewPathBuilder().Root().Child("matchers").Index(0).Child("urlPart").Build()),
		yaml.WithSource([]byte(testSource)),
	)

	msg := err.Error()
	assert.True(t, strings.HasPrefix(msg, "[4:5] "+cause.Error()+":"), msg)
	assert.Contains(t, msg, "urlPart: fragment")
	require.ErrorIs(t, err, cause)
}

func TestErrorWrapper_Wrap(t *testing.T) {
	t.Parallel()

	source := []byte(testSource)
	ew := yaml.NewErrorWrapper(yaml.WithSource(source))

	assert.NoError(t, ew.Wrap(nil))

	plain := errors.New("plain")
	assert.Same(t, plain, ew.Wrap(plain))

	wrapped := ew.Wrap(&yaml.Error{Err: errors.New("bad")}, yaml.WithColor(true))

	var yamlErr *yaml.Error
	require.ErrorAs(t, wrapped, &yamlErr)
	assert.Equal(t, source, yamlErr.Source)
	assert.True(t, yamlErr.Color)
}

func TestDecoder_Errors(t *testing.T) {
	t.Parallel()

	tcs := map[string]string{
		"syntax":        "kind: [Configuration\n",
		"duplicate key": "kind: Configuration\nkind: Configuration\n",
	}

	for name, src := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var out any

			err := yaml.NewDecoder(strings.NewReader(src)).Decode(&out)

			var yamlErr *yaml.Error
			require.ErrorAs(t, err, &yamlErr)
			assert.NotNil(t, yamlErr.Token)
		})
	}
}
