package locale

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"

	"github.com/macropower/urllang/pkg/errdefs"
)

// Language is a canonical language identifier: an ISO 639 base language
// with an optional script and region.
type Language struct {
	base   string
	script string
	region string
}

// FromTag canonicalizes a [language.Tag]. Variants and extensions are
// dropped. The second result is false for the undetermined language.
func FromTag(tag language.Tag) (Language, bool) {
	base, script, region := tag.Raw()
	if base == (language.Base{}) {
		return Language{}, false
	}

	l := Language{base: base.String()}
	if script != (language.Script{}) {
		l.script = script.String()
	}
	if region != (language.Region{}) {
		l.region = region.String()
	}

	return l, true
}

// Parse canonicalizes a language tag such as "en", "en-US", "en_US" or
// "EN-us". Tags are case-insensitive. Malformed tags return an error
// wrapping [errdefs.ErrInvalidLanguageTag].
func Parse(tag string) (Language, error) {
	s := strings.ReplaceAll(strings.TrimSpace(tag), "_", "-")

	lang, _, _ := strings.Cut(s, "-")
	if !isAlpha(lang) || len(lang) < 2 || len(lang) > 8 {
		return Language{}, fmt.Errorf("%w: %q", errdefs.ErrInvalidLanguageTag, tag)
	}

	t, err := language.Parse(s)
	if err != nil {
		return Language{}, fmt.Errorf("%w: %q: %w", errdefs.ErrInvalidLanguageTag, tag, err)
	}

	l, ok := FromTag(t)
	if !ok {
		return Language{}, fmt.Errorf("%w: %q is undetermined", errdefs.ErrInvalidLanguageTag, tag)
	}

	return l, nil
}

// MustParse is like [Parse] but panics on error.
func MustParse(tag string) Language {
	l, err := Parse(tag)
	if err != nil {
		panic(err)
	}

	return l
}

// Base returns the ISO 639 base language, e.g. "en".
func (l Language) Base() string {
	return l.base
}

// Script returns the ISO 15924 script, or an empty string.
func (l Language) Script() string {
	return l.script
}

// Region returns the region subtag, or an empty string.
func (l Language) Region() string {
	return l.region
}

// IsZero reports whether l is the zero value.
func (l Language) IsZero() bool {
	return l.base == ""
}

// BaseLanguage returns l without its script and region.
func (l Language) BaseLanguage() Language {
	return Language{base: l.base}
}

// String renders l with underscores, e.g. "en_US" or "zh_Hant_TW".
func (l Language) String() string {
	return l.join("_")
}

// Tag renders l as a BCP 47 tag, e.g. "en-US".
func (l Language) Tag() string {
	return l.join("-")
}

// LanguageTag converts l back into a [language.Tag].
func (l Language) LanguageTag() language.Tag {
	return language.Make(l.Tag())
}

func (l Language) join(sep string) string {
	if l.IsZero() {
		return ""
	}

	parts := []string{l.base}
	if l.script != "" {
		parts = append(parts, l.script)
	}
	if l.region != "" {
		parts = append(parts, l.region)
	}

	return strings.Join(parts, sep)
}

// MarshalText implements [encoding.TextMarshaler].
func (l Language) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (l *Language) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}

	*l = parsed

	return nil
}

func isAlpha(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}

	return s != ""
}
