package profile

import (
	"fmt"
	"log/slog"
	"regexp"
	"slices"

	"github.com/macropower/urllang/pkg/errdefs"
	"github.com/macropower/urllang/pkg/expr"
	"github.com/macropower/urllang/pkg/mapping"
	"github.com/macropower/urllang/pkg/matcher"
	"github.com/macropower/urllang/pkg/urlparts"
)

// Profile binds resolved matchers to the hosts they apply to.
type Profile struct {
	mapping   *mapping.Table
	condition *expr.Condition
	name      string
	domains   []*regexp.Regexp
	sources   []string
	matchers  []*matcher.Resolved
}

// Opt configures a [Profile].
type Opt func(*Profile)

// WithMapping records the profile's default mapping table.
func WithMapping(t *mapping.Table) Opt {
	return func(p *Profile) {
		p.mapping = t
	}
}

// WithCondition narrows [Profile.Matches] to URLs for which c is true.
func WithCondition(c *expr.Condition) Opt {
	return func(p *Profile) {
		p.condition = c
	}
}

// New creates a [Profile]. Each domain is compiled as a case-insensitive
// full-match regular expression.
func New(name string, domains []string, matchers []*matcher.Resolved, opts ...Opt) (*Profile, error) {
	if len(domains) == 0 {
		return nil, fmt.Errorf("%w: domains is a required field", errdefs.ErrInvalidConfig)
	}

	p := &Profile{
		name:     name,
		sources:  slices.Clone(domains),
		matchers: slices.Clone(matchers),
	}
	for _, opt := range opts {
		opt(p)
	}

	p.domains = make([]*regexp.Regexp, 0, len(domains))
	for i, d := range domains {
		re, err := compileDomain(d)
		if err != nil {
			return nil, fmt.Errorf("domains[%d]: %w: %w", i, errdefs.ErrPatternSyntax, err)
		}

		p.domains = append(p.domains, re)
	}

	return p, nil
}

// compileDomain compiles d on its own before anchoring it, so that an
// unbalanced group cannot close the anchoring group early.
func compileDomain(d string) (*regexp.Regexp, error) {
	_, err := regexp.Compile(d)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", d, err)
	}

	return regexp.Compile("(?i)^(?:" + d + ")$")
}

// MustNew is like [New] but panics on error.
func MustNew(name string, domains []string, matchers []*matcher.Resolved, opts ...Opt) *Profile {
	p, err := New(name, domains, matchers, opts...)
	if err != nil {
		panic(err)
	}

	return p
}

// Name returns the profile name.
func (p *Profile) Name() string {
	return p.name
}

// Domains returns the domain patterns as configured.
func (p *Profile) Domains() []string {
	return slices.Clone(p.sources)
}

// Mapping returns the profile's default mapping table, or nil.
func (p *Profile) Mapping() *mapping.Table {
	return p.mapping
}

// Condition returns the profile's condition, or nil.
func (p *Profile) Condition() *expr.Condition {
	return p.condition
}

// Matchers returns the resolved matchers in evaluation order.
func (p *Profile) Matchers() []*matcher.Resolved {
	return slices.Clone(p.matchers)
}

// MatchesHost reports whether any domain pattern matches the whole host.
func (p *Profile) MatchesHost(host string) bool {
	for _, re := range p.domains {
		if re.MatchString(host) {
			return true
		}
	}

	return false
}

// Matches reports whether the profile applies to u: the host must match a
// domain pattern and the condition, if any, must be true. A condition that
// fails to evaluate does not match.
func (p *Profile) Matches(u *urlparts.URL) bool {
	if !p.MatchesHost(u.Host) {
		return false
	}

	if p.condition == nil {
		return true
	}

	ok, err := p.condition.Match(u)
	if err != nil {
		slog.Debug("profile condition failed",
			slog.String("profile", p.name),
			slog.Any("err", err),
		)

		return false
	}

	return ok
}

// Detection is the result of a successful [Profile.Detect].
type Detection struct {
	Matcher *matcher.Resolved
	matcher.Hit
}

// Detect evaluates each matcher in order against u and returns the first
// detection.
func (p *Profile) Detect(u *urlparts.URL) (Detection, bool) {
	for _, m := range p.matchers {
		hit, ok := m.Detect(u)
		if ok {
			return Detection{Matcher: m, Hit: hit}, true
		}
	}

	return Detection{}, false
}
