package mapping_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/urllang/pkg/locale"
	"github.com/macropower/urllang/pkg/mapping"
)

func TestDefaultBuiltins(t *testing.T) {
	t.Parallel()

	reg, err := mapping.Build(nil)
	require.NoError(t, err)
	assert.Equal(t, mapping.BuiltinNames, reg.Names())

	tcs := map[string]struct {
		table string
		token string
		want  string
	}{
		"iso2":                  {table: mapping.ISO6391, token: "en", want: "en"},
		"iso2 uppercase":        {table: mapping.ISO6391, token: "FR", want: "fr"},
		"iso2 catalan":          {table: mapping.ISO6391, token: "ca", want: "ca"},
		"iso3":                  {table: mapping.ISO6393, token: "eng", want: "en"},
		"iso3 french":           {table: mapping.ISO6393, token: "fra", want: "fr"},
		"iso3 german":           {table: mapping.ISO6393, token: "deu", want: "de"},
		"tag with hyphen":       {table: mapping.LanguageTags, token: "en-US", want: "en_US"},
		"tag with underscore":   {table: mapping.LanguageTags, token: "en_US", want: "en_US"},
		"tag case-insensitive":  {table: mapping.LanguageTags, token: "EN-us", want: "en_US"},
		"tag base language":     {table: mapping.LanguageTags, token: "de", want: "de"},
		"english name":          {table: mapping.EnglishNames, token: "french", want: "fr"},
		"english name mixed":    {table: mapping.EnglishNames, token: "German", want: "de"},
		"native name":           {table: mapping.NativeNames, token: "français", want: "fr"},
		"native name uppercase": {table: mapping.NativeNames, token: "DEUTSCH", want: "de"},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			table, ok := reg.Get(tc.table)
			require.True(t, ok)
			assert.False(t, table.CaseSensitive())

			got, ok := table.Detect(tc.token)
			require.True(t, ok, "token %q not found in %s", tc.token, tc.table)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestDefaultBuiltins_Misses(t *testing.T) {
	t.Parallel()

	reg := mapping.MustBuild(nil)

	for table, token := range map[string]string{
		mapping.ISO6391:      "eng",
		mapping.ISO6393:      "en",
		mapping.LanguageTags: "english",
		mapping.EnglishNames: "en",
	} {
		tbl, ok := reg.Get(table)
		require.True(t, ok)

		_, found := tbl.Detect(token)
		assert.False(t, found, "%s should not contain %q", table, token)
	}
}

func TestBuiltins_CrossTableConsistency(t *testing.T) {
	t.Parallel()

	reg, err := mapping.Build([]*mapping.Config{{
		Name:   "all",
		Extend: []string{mapping.ISO6391, mapping.ISO6393, mapping.LanguageTags},
	}})
	require.NoError(t, err)

	all, ok := reg.Get("all")
	require.True(t, ok)

	for _, code := range []string{"en", "fr", "de", "es", "it", "pt", "nl", "ca", "pl", "sv", "ja", "zh", "ru", "ar"} {
		want := locale.MustParse(code)

		byCode, ok := all.Detect(code)
		require.True(t, ok, code)
		assert.Equal(t, want, byCode, code)

		byISO3, ok := all.Detect(want.ISO3())
		require.True(t, ok, want.ISO3())
		assert.Equal(t, want, byISO3, want.ISO3())

		byTag, ok := all.Detect(want.Tag())
		require.True(t, ok, want.Tag())
		assert.Equal(t, want, byTag, want.Tag())
	}
}

func TestNewBuiltins_CustomCatalog(t *testing.T) {
	t.Parallel()

	c := locale.NewCatalog(
		locale.MustParse("en"),
		locale.MustParse("en-US"),
		locale.MustParse("fr"),
	)

	reg, err := mapping.Build(nil, mapping.WithCatalog(c))
	require.NoError(t, err)

	iso2, _ := reg.Get(mapping.ISO6391)
	assert.Equal(t, 2, iso2.Len())

	tags, _ := reg.Get(mapping.LanguageTags)
	assert.Equal(t, []mapping.Entry{
		{Token: "en", Language: locale.MustParse("en")},
		{Token: "en-US", Language: locale.MustParse("en-US")},
		{Token: "en_US", Language: locale.MustParse("en-US")},
		{Token: "fr", Language: locale.MustParse("fr")},
	}, tags.Entries())

	names, _ := reg.Get(mapping.EnglishNames)
	got, ok := names.Detect("american english")
	require.True(t, ok)
	assert.Equal(t, "en", got.String())
}
