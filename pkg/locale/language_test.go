package locale_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/macropower/urllang/pkg/errdefs"
	"github.com/macropower/urllang/pkg/locale"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input   string
		want    string
		wantTag string
		wantErr bool
	}{
		"base language": {
			input:   "en",
			want:    "en",
			wantTag: "en",
		},
		"hyphenated region": {
			input:   "en-US",
			want:    "en_US",
			wantTag: "en-US",
		},
		"underscored region": {
			input:   "en_US",
			want:    "en_US",
			wantTag: "en-US",
		},
		"lowercase region is canonicalized": {
			input:   "pt-br",
			want:    "pt_BR",
			wantTag: "pt-BR",
		},
		"script and region": {
			input:   "zh-Hant-TW",
			want:    "zh_Hant_TW",
			wantTag: "zh-Hant-TW",
		},
		"surrounding whitespace": {
			input:   " fr ",
			want:    "fr",
			wantTag: "fr",
		},
		"uppercase language": {
			input:   "EN",
			want:    "en",
			wantTag: "en",
		},
		"mixed case language": {
			input:   "Fr",
			want:    "fr",
			wantTag: "fr",
		},
		"case is canonicalized per subtag": {
			input:   "EN-us",
			want:    "en_US",
			wantTag: "en-US",
		},
		"empty": {
			input:   "",
			wantErr: true,
		},
		"undetermined": {
			input:   "und",
			wantErr: true,
		},
		"garbage": {
			input:   "en US!",
			wantErr: true,
		},
		"digits": {
			input:   "12",
			wantErr: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := locale.Parse(tc.input)
			if tc.wantErr {
				require.ErrorIs(t, err, errdefs.ErrInvalidLanguageTag)
				assert.True(t, got.IsZero())

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
			assert.Equal(t, tc.wantTag, got.Tag())
		})
	}
}

func TestLanguage_Equality(t *testing.T) {
	t.Parallel()

	a := locale.MustParse("en-US")
	b := locale.MustParse("en_us")

	assert.Equal(t, a, b)
	assert.True(t, a == b)
	assert.NotEqual(t, a, a.BaseLanguage())
	assert.Equal(t, locale.MustParse("en"), a.BaseLanguage())

	m := map[locale.Language]int{a: 1}
	assert.Equal(t, 1, m[b])
}

func TestFromTag(t *testing.T) {
	t.Parallel()

	l, ok := locale.FromTag(language.MustParse("de-CH-1996"))
	require.True(t, ok)
	assert.Equal(t, "de_CH", l.String())
	assert.Equal(t, "de", l.Base())
	assert.Equal(t, "CH", l.Region())
	assert.Empty(t, l.Script())

	_, ok = locale.FromTag(language.Und)
	assert.False(t, ok)
}

func TestLanguage_Text(t *testing.T) {
	t.Parallel()

	var l locale.Language

	require.NoError(t, l.UnmarshalText([]byte("fr-CA")))
	assert.Equal(t, locale.MustParse("fr_CA"), l)

	b, err := l.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "fr_CA", string(b))

	require.ErrorIs(t, l.UnmarshalText([]byte("FR")), errdefs.ErrInvalidLanguageTag)
}

func TestLanguage_Names(t *testing.T) {
	t.Parallel()

	fr := locale.MustParse("fr")

	assert.Equal(t, "fra", fr.ISO3())
	assert.Equal(t, "eng", locale.MustParse("en-GB").ISO3())
	assert.Equal(t, "French", fr.EnglishName())
	assert.Equal(t, "français", fr.NativeName())
}
