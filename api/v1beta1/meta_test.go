package v1beta1_test

import (
	"testing"

	"github.com/invopop/jsonschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/urllang/api/v1beta1"
)

func TestTypeMeta(t *testing.T) {
	t.Parallel()

	tm := v1beta1.TypeMeta{
		APIVersion: v1beta1.APIVersion,
		Kind:       "Configuration",
	}

	assert.Equal(t, "urllang.macropower.dev/v1beta1", tm.GetAPIVersion())
	assert.Equal(t, "Configuration", tm.GetKind())
}

func newSchema(props ...string) *jsonschema.Schema {
	jss := &jsonschema.Schema{Properties: jsonschema.NewProperties()}
	for _, p := range props {
		jss.Properties.Set(p, &jsonschema.Schema{Type: "string"})
	}

	return jss
}

func TestExtendSchemaWithEnums(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		apiVersions []string
		kinds       []string
	}{
		"single": {
			apiVersions: []string{v1beta1.APIVersion},
			kinds:       []string{"Configuration"},
		},
		"several": {
			apiVersions: []string{"urllang.macropower.dev/v1alpha1", v1beta1.APIVersion},
			kinds:       []string{"Configuration", "Mappings", "Profiles"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			jss := newSchema("apiVersion", "kind")

			v1beta1.ExtendSchemaWithEnums(jss, tc.apiVersions, tc.kinds)

			apiVersion, ok := jss.Properties.Get("apiVersion")
			require.True(t, ok)
			require.Len(t, apiVersion.OneOf, len(tc.apiVersions))

			for i, v := range tc.apiVersions {
				assert.Equal(t, v, apiVersion.OneOf[i].Const)
			}

			kind, ok := jss.Properties.Get("kind")
			require.True(t, ok)
			require.Len(t, kind.OneOf, len(tc.kinds))

			for i, k := range tc.kinds {
				assert.Equal(t, k, kind.OneOf[i].Const)
			}
		})
	}
}

func TestExtendSchemaWithEnums_Panics(t *testing.T) {
	t.Parallel()

	tcs := map[string][]string{
		"missing apiVersion": {"kind"},
		"missing kind":       {"apiVersion"},
	}

	for name, props := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Panics(t, func() {
				v1beta1.ExtendSchemaWithEnums(newSchema(props...), []string{"v1"}, []string{"Kind1"})
			})
		})
	}
}
