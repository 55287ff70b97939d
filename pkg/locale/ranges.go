package locale

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"golang.org/x/text/language"

	"github.com/macropower/urllang/pkg/errdefs"
)

// Wildcard is the language range that matches every language.
const Wildcard = "*"

// Range is a single weighted entry of a language priority list.
type Range struct {
	// Tag is the canonical BCP 47 range, or [Wildcard].
	Tag string
	// Weight is the quality value, between 0 and 1.
	Weight float64
}

// PriorityList is an ordered list of language ranges, highest weight first.
type PriorityList []Range

// ParsePriorityList parses an RFC 4647 language priority list such as
// "en-US, fr;q=0.8, *;q=0.1". Ranges are canonicalized. Entries keep their
// declared order among equal weights.
func ParsePriorityList(s string) (PriorityList, error) {
	var list PriorityList

	for raw := range strings.SplitSeq(s, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		r, err := parseRange(raw)
		if err != nil {
			return nil, err
		}

		list = append(list, r)
	}

	if len(list) == 0 {
		return nil, fmt.Errorf("%w: empty language range list %q", errdefs.ErrInvalidLanguageTag, s)
	}

	slices.SortStableFunc(list, func(a, b Range) int {
		switch {
		case a.Weight > b.Weight:
			return -1
		case a.Weight < b.Weight:
			return 1
		}

		return 0
	})

	return list, nil
}

func parseRange(raw string) (Range, error) {
	tag, params, hasParams := strings.Cut(raw, ";")
	tag = strings.TrimSpace(tag)

	r := Range{Weight: 1}

	if hasParams {
		key, value, ok := strings.Cut(strings.TrimSpace(params), "=")
		if !ok || strings.TrimSpace(key) != "q" {
			return Range{}, fmt.Errorf("%w: range %q: expected q parameter", errdefs.ErrInvalidLanguageTag, raw)
		}

		w, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || w < 0 || w > 1 {
			return Range{}, fmt.Errorf("%w: range %q: invalid weight", errdefs.ErrInvalidLanguageTag, raw)
		}

		r.Weight = w
	}

	if tag == Wildcard {
		r.Tag = Wildcard

		return r, nil
	}

	t, err := language.Parse(strings.ReplaceAll(tag, "_", "-"))
	if err != nil {
		return Range{}, fmt.Errorf("%w: range %q: %w", errdefs.ErrInvalidLanguageTag, raw, err)
	}

	l, ok := FromTag(t)
	if !ok {
		return Range{}, fmt.Errorf("%w: range %q is undetermined", errdefs.ErrInvalidLanguageTag, raw)
	}

	r.Tag = l.Tag()

	return r, nil
}

// Matches reports whether the range matches l using RFC 4647 basic
// filtering: the range equals the tag of l, or is a prefix of it followed
// by "-". Ranges with a zero weight never match.
func (r Range) Matches(l Language) bool {
	if r.Weight == 0 || l.IsZero() {
		return false
	}
	if r.Tag == Wildcard {
		return true
	}

	tag := strings.ToLower(l.Tag())
	rng := strings.ToLower(r.Tag)

	return tag == rng || strings.HasPrefix(tag, rng+"-")
}

// Matches reports whether any range in the list matches l.
func (p PriorityList) Matches(l Language) bool {
	for _, r := range p {
		if r.Matches(l) {
			return true
		}
	}

	return false
}

// Filter returns the languages matched by the list, in input order.
func (p PriorityList) Filter(languages []Language) []Language {
	var out []Language
	for _, l := range languages {
		if p.Matches(l) {
			out = append(out, l)
		}
	}

	return out
}

// String renders the list in canonical form, highest weight first.
func (p PriorityList) String() string {
	parts := make([]string, 0, len(p))
	for _, r := range p {
		if r.Weight == 1 {
			parts = append(parts, r.Tag)
			continue
		}

		parts = append(parts, r.Tag+";q="+strconv.FormatFloat(r.Weight, 'f', -1, 64))
	}

	return strings.Join(parts, ",")
}
