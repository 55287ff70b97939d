package locale_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/urllang/pkg/errdefs"
	"github.com/macropower/urllang/pkg/locale"
)

func TestParsePriorityList(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input   string
		want    string
		wantErr bool
	}{
		"single": {
			input: "en",
			want:  "en",
		},
		"weights sort descending": {
			input: "fr;q=0.5, en-us, de;q=0.8",
			want:  "en-US,de;q=0.8,fr;q=0.5",
		},
		"wildcard": {
			input: "en, *;q=0.1",
			want:  "en,*;q=0.1",
		},
		"underscore": {
			input: "en_GB",
			want:  "en-GB",
		},
		"empty entries skipped": {
			input: "en,,fr",
			want:  "en,fr",
		},
		"blank": {
			input:   " ",
			wantErr: true,
		},
		"bad weight": {
			input:   "en;q=2",
			wantErr: true,
		},
		"bad parameter": {
			input:   "en;x=1",
			wantErr: true,
		},
		"malformed range": {
			input:   "en US",
			wantErr: true,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := locale.ParsePriorityList(tc.input)
			if tc.wantErr {
				require.ErrorIs(t, err, errdefs.ErrInvalidLanguageTag)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
		})
	}
}

func TestPriorityList_Filter(t *testing.T) {
	t.Parallel()

	languages := []locale.Language{
		locale.MustParse("en"),
		locale.MustParse("en-US"),
		locale.MustParse("en-GB"),
		locale.MustParse("fr"),
		locale.MustParse("fr-CA"),
		locale.MustParse("it"),
	}

	tcs := map[string]struct {
		list string
		want []string
	}{
		"base range keeps regional variants": {
			list: "en, fr",
			want: []string{"en", "en_US", "en_GB", "fr", "fr_CA"},
		},
		"regional range is exact": {
			list: "en-US",
			want: []string{"en_US"},
		},
		"wildcard keeps everything": {
			list: "*",
			want: []string{"en", "en_US", "en_GB", "fr", "fr_CA", "it"},
		},
		"zero weight is excluded": {
			list: "it, en;q=0",
			want: []string{"it"},
		},
		"no match": {
			list: "de",
			want: nil,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			list, err := locale.ParsePriorityList(tc.list)
			require.NoError(t, err)

			var got []string
			for _, l := range list.Filter(languages) {
				got = append(got, l.String())
			}

			assert.Equal(t, tc.want, got)
		})
	}
}
