package mapping

import (
	"strings"
	"sync"

	"github.com/macropower/urllang/pkg/locale"
)

// Names of the built-in tables.
const (
	// ISO6391 maps two-letter ISO 639-1 codes, e.g. "fr".
	ISO6391 = "ISO-639-ALPHA-2"
	// ISO6393 maps three-letter ISO 639-2/T and 639-3 codes, e.g. "fra".
	ISO6393 = "ISO-639-ALPHA-3"
	// LanguageTags maps locale tags in both "fr-CA" and "fr_CA" spellings.
	LanguageTags = "LANGUAGE_TAGS"
	// EnglishNames maps lowercased English names, e.g. "french".
	EnglishNames = "ENGLISH_NAMES"
	// NativeNames maps lowercased self-names, e.g. "français".
	NativeNames = "NATIVE_NAMES"
)

// BuiltinNames lists the built-in table names in registration order.
var BuiltinNames = []string{ISO6391, ISO6393, LanguageTags, EnglishNames, NativeNames}

// DefaultBuiltins returns the built-in tables generated from
// [locale.DefaultCatalog]. They are generated once and shared.
var DefaultBuiltins = sync.OnceValue(func() []*Table {
	return NewBuiltins(locale.DefaultCatalog())
})

// NewBuiltins generates the built-in tables from a catalog. All of them are
// case-insensitive.
func NewBuiltins(c *locale.Catalog) []*Table {
	return []*Table{
		newISO6391Table(c),
		newISO6393Table(c),
		newLanguageTagsTable(c),
		newNamesTable(EnglishNames, c, locale.Language.EnglishName),
		newNamesTable(NativeNames, c, locale.Language.NativeName),
	}
}

func newISO6391Table(c *locale.Catalog) *Table {
	t := newTable(ISO6391, false)
	for _, l := range c.Bases() {
		if len(l.Base()) == 2 {
			t.putIfAbsent(l.Base(), l)
		}
	}

	return t
}

func newISO6393Table(c *locale.Catalog) *Table {
	t := newTable(ISO6393, false)
	for _, l := range c.Bases() {
		if code := l.ISO3(); code != "" {
			t.putIfAbsent(code, l)
		}
	}

	return t
}

func newLanguageTagsTable(c *locale.Catalog) *Table {
	t := newTable(LanguageTags, false)
	for _, l := range c.All() {
		t.putIfAbsent(l.Tag(), l)
		t.putIfAbsent(l.String(), l)
	}

	return t
}

// newNamesTable maps the lowercased name of every catalog language to its
// base language. Base languages are visited before locales, so "french"
// is claimed by "fr" rather than by a regional variant.
func newNamesTable(name string, c *locale.Catalog, nameOf func(locale.Language) string) *Table {
	t := newTable(name, false)
	for _, l := range c.All() {
		n := strings.ToLower(strings.TrimSpace(nameOf(l)))
		if n != "" {
			t.putIfAbsent(n, l.BaseLanguage())
		}
	}

	return t
}
