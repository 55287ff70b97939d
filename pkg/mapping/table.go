package mapping

import (
	"cmp"
	"slices"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/macropower/urllang/pkg/locale"
)

// Entry is a single token of a [Table].
type Entry struct {
	Token    string
	Language locale.Language
}

type entry struct {
	token string
	lang  locale.Language
}

// Table maps tokens to languages. Case-insensitive tables lowercase both
// stored tokens and queries, so differently-cased variants of a token share
// a single entry. Lowercasing is not full case folding: "straße" and
// "strasse" remain distinct tokens.
type Table struct {
	entries       map[string]entry
	name          string
	caseSensitive bool
}

func newTable(name string, caseSensitive bool) *Table {
	return &Table{
		name:          name,
		caseSensitive: caseSensitive,
		entries:       map[string]entry{},
	}
}

// Name returns the registered name of the table.
func (t *Table) Name() string {
	return t.name
}

// CaseSensitive reports whether lookups are case-sensitive.
func (t *Table) CaseSensitive() bool {
	return t.caseSensitive
}

// Len returns the number of tokens in the table.
func (t *Table) Len() int {
	return len(t.entries)
}

// Detect looks up the language for token.
func (t *Table) Detect(token string) (locale.Language, bool) {
	e, ok := t.entries[t.key(token)]
	if !ok {
		return locale.Language{}, false
	}

	return e.lang, true
}

// Entries returns all entries sorted by token.
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, Entry{Token: e.token, Language: e.lang})
	}

	slices.SortFunc(out, func(a, b Entry) int {
		return cmp.Compare(a.Token, b.Token)
	})

	return out
}

// Languages returns the distinct languages in the table, sorted by tag.
func (t *Table) Languages() []locale.Language {
	seen := map[locale.Language]bool{}

	var out []locale.Language
	for _, e := range t.entries {
		if !seen[e.lang] {
			seen[e.lang] = true
			out = append(out, e.lang)
		}
	}

	slices.SortFunc(out, func(a, b locale.Language) int {
		return cmp.Compare(a.Tag(), b.Tag())
	})

	return out
}

func (t *Table) key(token string) string {
	if t.caseSensitive {
		return token
	}

	return cases.Lower(language.Und).String(token)
}

// putIfAbsent inserts token unless an equivalent token is already present.
func (t *Table) putIfAbsent(token string, lang locale.Language) bool {
	k := t.key(token)
	if _, ok := t.entries[k]; ok {
		return false
	}

	t.entries[k] = entry{token: token, lang: lang}

	return true
}

// put inserts token, replacing any equivalent token.
func (t *Table) put(token string, lang locale.Language) {
	t.entries[t.key(token)] = entry{token: token, lang: lang}
}

// removeLanguage deletes every token that maps to lang.
func (t *Table) removeLanguage(lang locale.Language) int {
	return t.retain(func(l locale.Language) bool {
		return l != lang
	})
}

// retain deletes every token whose language does not satisfy keep.
func (t *Table) retain(keep func(locale.Language) bool) int {
	removed := 0
	for k, e := range t.entries {
		if !keep(e.lang) {
			delete(t.entries, k)
			removed++
		}
	}

	return removed
}
