package mapping

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/invopop/jsonschema"
)

var errTokenValue = errors.New("tokens must be a string or a list of strings")

// Config defines a user mapping table.
type Config struct {
	// Name identifies the mapping. It must be unique among all mappings,
	// including built-in ones.
	Name string `json:"name" jsonschema:"title=Name" validate:"notblank"`
	// Extend lists the mappings to copy entries from, in order. Earlier
	// mappings win when a token appears in several of them.
	Extend []string `json:"extend,omitempty" jsonschema:"title=Extend"`
	// Filter is a language priority list, e.g. "en, fr;q=0.5". Only entries
	// whose language matches one of its ranges are kept from Extend.
	Filter string `json:"filter,omitempty" jsonschema:"title=Filter"`
	// Add inserts tokens for a language unless the token is already present.
	Add TokenMap `json:"add,omitempty" jsonschema:"title=Add"`
	// Override replaces every existing token of a language with the given tokens.
	Override TokenMap `json:"override,omitempty" jsonschema:"title=Override"`
	// CaseSensitive makes token lookups case-sensitive.
	CaseSensitive bool `json:"caseSensitive,omitempty" jsonschema:"title=Case Sensitive"`
}

// TokenMap is an ordered mapping from language tags to tokens. In YAML it is
// written as a map whose values are comma-separated strings or lists:
//
//	add:
//	  en_US: english, anglais
//	  fr: [french, francais]
type TokenMap []TokenEntry

// TokenEntry holds the tokens configured for one language tag.
type TokenEntry struct {
	Tag    string
	Tokens []string
}

// SplitTokens splits a comma-separated token list, dropping blank tokens.
func SplitTokens(s string) []string {
	var out []string
	for tok := range strings.SplitSeq(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok != "" {
			out = append(out, tok)
		}
	}

	return out
}

// UnmarshalYAML keeps the declared order of tags.
func (m *TokenMap) UnmarshalYAML(unmarshal func(any) error) error {
	var ms yaml.MapSlice

	err := unmarshal(&ms)
	if err != nil {
		return err //nolint:wrapcheck // Return the original error.
	}

	out := make(TokenMap, 0, len(ms))
	for _, item := range ms {
		tag := fmt.Sprint(item.Key)

		tokens, err := tokensFromValue(item.Value)
		if err != nil {
			return fmt.Errorf("%s: %w", tag, err)
		}

		out = append(out, TokenEntry{Tag: tag, Tokens: tokens})
	}

	*m = out

	return nil
}

func tokensFromValue(v any) ([]string, error) {
	switch val := v.(type) {
	case nil:
		return nil, nil
	case string:
		return SplitTokens(val), nil
	case []any:
		var out []string
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, errTokenValue
			}

			out = append(out, SplitTokens(s)...)
		}

		return out, nil
	}

	return nil, errTokenValue
}

// MarshalYAML renders the map with comma-separated token lists.
func (m TokenMap) MarshalYAML() (any, error) {
	ms := make(yaml.MapSlice, 0, len(m))
	for _, e := range m {
		ms = append(ms, yaml.MapItem{Key: e.Tag, Value: strings.Join(e.Tokens, ",")})
	}

	return ms, nil
}

// JSONSchema describes a [TokenMap] as an object with string or list values.
func (TokenMap) JSONSchema() *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:  "object",
		Title: "Language Tokens",
		Description: "Maps a language tag (e.g. en, en_US or en-US) to " +
			"a comma-separated list of tokens, or a list of tokens.",
		PatternProperties: map[string]*jsonschema.Schema{
			"^[A-Za-z]{2,8}([_-][A-Za-z0-9]{1,8})*$": {
				OneOf: []*jsonschema.Schema{
					{Type: "string"},
					{Type: "array", Items: &jsonschema.Schema{Type: "string"}},
				},
			},
		},
	}
}
