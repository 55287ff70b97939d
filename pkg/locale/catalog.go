package locale

import (
	"slices"
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Catalog is the set of known locales that built-in mappings are generated
// from.
type Catalog struct {
	bases   []Language
	locales []Language
}

// DefaultCatalog returns the catalog derived from the CLDR data bundled with
// [golang.org/x/text]. It contains every base language with an English
// display name, each paired with its most likely region, plus every tag with
// display data. It is built once and shared.
var DefaultCatalog = sync.OnceValue(newDefaultCatalog)

func newDefaultCatalog() *Catalog {
	namer := display.English.Languages()

	seen := map[Language]bool{}
	c := &Catalog{}

	add := func(t language.Tag) {
		l, ok := FromTag(t)
		if !ok || seen[l] {
			return
		}

		seen[l] = true
		if l.script == "" && l.region == "" {
			c.bases = append(c.bases, l)
		} else {
			c.locales = append(c.locales, l)
		}
	}

	for _, b := range language.Supported.BaseLanguages() {
		tag, err := language.Compose(b)
		if err != nil || namer.Name(tag) == "" {
			continue
		}

		add(tag)

		region, conf := tag.Region()
		if conf == language.No {
			continue
		}

		full, err := language.Compose(b, region)
		if err == nil {
			add(full)
		}
	}

	for _, tag := range display.Supported.Tags() {
		add(tag)
	}

	sortLanguages(c.bases)
	sortLanguages(c.locales)

	return c
}

// NewCatalog creates a [Catalog] from the given languages.
func NewCatalog(languages ...Language) *Catalog {
	c := &Catalog{}
	seen := map[Language]bool{}

	for _, l := range languages {
		if l.IsZero() || seen[l] {
			continue
		}

		seen[l] = true
		if l.script == "" && l.region == "" {
			c.bases = append(c.bases, l)
		} else {
			c.locales = append(c.locales, l)
		}
	}

	sortLanguages(c.bases)
	sortLanguages(c.locales)

	return c
}

// Bases returns the base languages in the catalog, sorted by tag.
func (c *Catalog) Bases() []Language {
	return slices.Clone(c.bases)
}

// Locales returns the languages with a script or region, sorted by tag.
func (c *Catalog) Locales() []Language {
	return slices.Clone(c.locales)
}

// All returns every language in the catalog: bases first, then locales.
func (c *Catalog) All() []Language {
	return slices.Concat(c.bases, c.locales)
}

// ISO3 returns the three-letter ISO 639-2/T or 639-3 code for the base
// language of l.
func (l Language) ISO3() string {
	b, err := language.ParseBase(l.base)
	if err != nil {
		return ""
	}

	return b.ISO3()
}

// EnglishName returns the English display name of l, e.g. "French" or
// "Canadian French". It returns an empty string when no name is known.
func (l Language) EnglishName() string {
	return display.English.Tags().Name(l.LanguageTag())
}

// NativeName returns the name of l in its own language, e.g. "français".
// It returns an empty string when no name is known.
func (l Language) NativeName() string {
	return display.Self.Name(l.LanguageTag())
}

func sortLanguages(ls []Language) {
	slices.SortFunc(ls, compareLanguages)
}

func compareLanguages(a, b Language) int {
	return strings.Compare(a.Tag(), b.Tag())
}
