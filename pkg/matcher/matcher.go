package matcher

import (
	"fmt"
	"slices"

	"github.com/macropower/urllang/pkg/errdefs"
	"github.com/macropower/urllang/pkg/locale"
	"github.com/macropower/urllang/pkg/mapping"
	"github.com/macropower/urllang/pkg/urlparts"
)

// Matcher is a named, ordered set of patterns for one [URLPart].
type Matcher struct {
	mapping       *mapping.Table
	name          string
	part          URLPart
	patterns      []*Pattern
	caseSensitive bool
	patternOrder  bool
}

// Opt configures a [Matcher].
type Opt func(*Matcher)

// WithCaseSensitive controls whether patterns match case-sensitively.
// Matching is case-insensitive by default.
func WithCaseSensitive(caseSensitive bool) Opt {
	return func(m *Matcher) {
		m.caseSensitive = caseSensitive
	}
}

// WithPatternOrder selects pattern-major evaluation: every candidate string
// is tried against the first pattern before moving to the next pattern.
// The default is part-major.
func WithPatternOrder(patternOrder bool) Opt {
	return func(m *Matcher) {
		m.patternOrder = patternOrder
	}
}

// WithMapping sets the default mapping table used by profiles that do not
// choose one.
func WithMapping(t *mapping.Table) Opt {
	return func(m *Matcher) {
		m.mapping = t
	}
}

// New compiles a [Matcher]. At least one pattern is required.
func New(name string, part URLPart, patterns []string, opts ...Opt) (*Matcher, error) {
	m := &Matcher{
		name: name,
		part: part,
	}
	for _, opt := range opts {
		opt(m)
	}

	if len(patterns) == 0 {
		return nil, fmt.Errorf("%w: patterns is a required field", errdefs.ErrInvalidConfig)
	}

	m.patterns = make([]*Pattern, 0, len(patterns))
	for i, src := range patterns {
		p, err := CompilePattern(src, m.caseSensitive)
		if err != nil {
			return nil, fmt.Errorf("patterns[%d]: %w", i, err)
		}

		m.patterns = append(m.patterns, p)
	}

	return m, nil
}

// MustNew is like [New] but panics on error.
func MustNew(name string, part URLPart, patterns []string, opts ...Opt) *Matcher {
	m, err := New(name, part, patterns, opts...)
	if err != nil {
		panic(err)
	}

	return m
}

// Name returns the matcher name.
func (m *Matcher) Name() string {
	return m.name
}

// URLPart returns the URL component the matcher applies to.
func (m *Matcher) URLPart() URLPart {
	return m.part
}

// Patterns returns the compiled patterns in declared order.
func (m *Matcher) Patterns() []*Pattern {
	return slices.Clone(m.patterns)
}

// CaseSensitive reports whether patterns match case-sensitively.
func (m *Matcher) CaseSensitive() bool {
	return m.caseSensitive
}

// PatternOrder reports whether evaluation is pattern-major.
func (m *Matcher) PatternOrder() bool {
	return m.patternOrder
}

// Mapping returns the default mapping table, or nil.
func (m *Matcher) Mapping() *mapping.Table {
	return m.mapping
}

// Resolve returns a copy of m bound to t. Patterns, case sensitivity and
// evaluation order are shared with m; m itself is not modified.
func (m *Matcher) Resolve(t *mapping.Table) *Resolved {
	cp := *m
	cp.mapping = t

	return &Resolved{def: cp}
}

// Hit describes a successful detection.
type Hit struct {
	Language locale.Language
	// Input is the candidate string the pattern matched.
	Input string
	// Token is the text captured by the "lang" group.
	Token string
	// Pattern is the index of the matching pattern.
	Pattern int
}

// Resolved is a [Matcher] bound to a concrete mapping table.
type Resolved struct {
	def Matcher
}

// Name returns the matcher name.
func (r *Resolved) Name() string {
	return r.def.name
}

// URLPart returns the URL component the matcher applies to.
func (r *Resolved) URLPart() URLPart {
	return r.def.part
}

// Mapping returns the bound mapping table.
func (r *Resolved) Mapping() *mapping.Table {
	return r.def.mapping
}

// PatternOrder reports whether evaluation is pattern-major.
func (r *Resolved) PatternOrder() bool {
	return r.def.patternOrder
}

// CaseSensitive reports whether patterns match case-sensitively.
func (r *Resolved) CaseSensitive() bool {
	return r.def.caseSensitive
}

// Patterns returns the compiled patterns in declared order.
func (r *Resolved) Patterns() []*Pattern {
	return r.def.Patterns()
}

// Detect evaluates the matcher against the relevant component of u.
func (r *Resolved) Detect(u *urlparts.URL) (Hit, bool) {
	return r.Evaluate(r.def.part.Extract(u))
}

// Evaluate returns the first candidate combination whose captured token is
// in the bound table. Part-major evaluation tries every pattern against a
// part before moving to the next part; pattern-major evaluation does the
// opposite.
func (r *Resolved) Evaluate(parts []string) (Hit, bool) {
	if r.def.mapping == nil {
		return Hit{}, false
	}

	if r.def.patternOrder {
		for i, p := range r.def.patterns {
			for _, part := range parts {
				if hit, ok := r.try(p, i, part); ok {
					return hit, true
				}
			}
		}

		return Hit{}, false
	}

	for _, part := range parts {
		for i, p := range r.def.patterns {
			if hit, ok := r.try(p, i, part); ok {
				return hit, true
			}
		}
	}

	return Hit{}, false
}

func (r *Resolved) try(p *Pattern, index int, part string) (Hit, bool) {
	token, ok := p.Match(part)
	if !ok {
		return Hit{}, false
	}

	lang, ok := r.def.mapping.Detect(token)
	if !ok {
		return Hit{}, false
	}

	return Hit{
		Language: lang,
		Input:    part,
		Token:    token,
		Pattern:  index,
	}, true
}
