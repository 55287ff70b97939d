package matcher_test

import (
	"regexp/syntax"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/urllang/pkg/errdefs"
	"github.com/macropower/urllang/pkg/matcher"
)

func TestCompilePattern(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		wantErr       error
		src           string
		input         string
		want          string
		caseSensitive bool
		wantMatch     bool
	}{
		"named group": {
			src:       `lang=(?<lang>.*)`,
			input:     "lang=en",
			want:      "en",
			wantMatch: true,
		},
		"python style group": {
			src:       `lang=(?P<lang>.*)`,
			input:     "lang=fr",
			want:      "fr",
			wantMatch: true,
		},
		"full match required": {
			src:   `(?<lang>[a-z]{2})`,
			input: "xen",
		},
		"prefix does not match": {
			src:   `lang=(?<lang>[a-z]+)`,
			input: "xlang=en",
		},
		"case-insensitive by default": {
			src:       `LANG=(?<lang>.*)`,
			input:     "lang=de",
			want:      "de",
			wantMatch: true,
		},
		"case-sensitive": {
			src:           `LANG=(?<lang>.*)`,
			input:         "lang=de",
			caseSensitive: true,
		},
		"alternation is grouped before anchoring": {
			src:       `a|(?<lang>[a-z]{2})\.b`,
			input:     "en.b",
			want:      "en",
			wantMatch: true,
		},
		"optional group not taken": {
			src:   `x(?<lang>y)?`,
			input: "x",
		},
		"missing group": {
			src:     `lang=(.*)`,
			wantErr: errdefs.ErrInvalidPattern,
		},
		"wrong group name": {
			src:     `lang=(?<language>.*)`,
			wantErr: errdefs.ErrInvalidPattern,
		},
		"marker in character class": {
			src:     `[(?<lang>]`,
			wantErr: errdefs.ErrInvalidPattern,
		},
		"bad syntax": {
			src:     `(?<lang>[a-z`,
			wantErr: errdefs.ErrPatternSyntax,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			p, err := matcher.CompilePattern(tc.src, tc.caseSensitive)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				assert.Nil(t, p)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.src, p.String())

			got, ok := p.Match(tc.input)
			assert.Equal(t, tc.wantMatch, ok)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCompilePattern_SyntaxErrorChain(t *testing.T) {
	t.Parallel()

	_, err := matcher.CompilePattern(`(?<lang>a))`, false)
	require.ErrorIs(t, err, errdefs.ErrPatternSyntax)

	var synErr *syntax.Error
	require.ErrorAs(t, err, &synErr)
	assert.Equal(t, syntax.ErrUnexpectedParen, synErr.Code)
}
