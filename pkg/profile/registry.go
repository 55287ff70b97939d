package profile

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/macropower/urllang/pkg/errdefs"
	"github.com/macropower/urllang/pkg/expr"
	"github.com/macropower/urllang/pkg/mapping"
	"github.com/macropower/urllang/pkg/matcher"
	"github.com/macropower/urllang/pkg/urlparts"
)

// Registry holds profiles in registration order. It is read-only once built.
type Registry struct {
	byName   map[string]*Profile
	profiles []*Profile
}

// Build creates one [Profile] per config, in order. Matcher and mapping
// references are resolved against the given registries. The first invalid
// config aborts the build.
func Build(configs []*Config, matchers *matcher.Registry, mappings *mapping.Registry) (*Registry, error) {
	r := &Registry{byName: map[string]*Profile{}}

	for i, cfg := range configs {
		if cfg == nil {
			return nil, fmt.Errorf("profiles[%d]: %w: empty profile", i, errdefs.ErrInvalidConfig)
		}

		p, err := newFromConfig(cfg, matchers, mappings)
		if err != nil {
			return nil, fmt.Errorf("profile %q: %w", cfg.Name, err)
		}

		if _, ok := r.byName[p.Name()]; ok {
			return nil, errdefs.Duplicate("profile", p.Name())
		}

		r.byName[p.Name()] = p
		r.profiles = append(r.profiles, p)

		slog.Debug("registered profile",
			slog.String("name", p.Name()),
			slog.Int("domains", len(p.domains)),
			slog.Int("matchers", len(p.matchers)),
			slog.Bool("condition", p.condition != nil),
		)
	}

	return r, nil
}

func newFromConfig(cfg *Config, matchers *matcher.Registry, mappings *mapping.Registry) (*Profile, error) {
	err := errdefs.ValidateStruct(cfg)
	if err != nil {
		return nil, err //nolint:wrapcheck // Already wrapped by errdefs.
	}

	name := strings.TrimSpace(cfg.Name)

	var opts []Opt

	var profileMapping *mapping.Table
	if cfg.Mapping != "" {
		profileMapping, err = mappings.Resolve(cfg.Mapping)
		if err != nil {
			return nil, err //nolint:wrapcheck // Reference errors carry their own context.
		}

		opts = append(opts, WithMapping(profileMapping))
	}

	if strings.TrimSpace(cfg.Match) != "" {
		cond, err := expr.NewCondition(cfg.Match)
		if err != nil {
			return nil, fmt.Errorf("%w: match: %w", errdefs.ErrInvalidConfig, err)
		}

		opts = append(opts, WithCondition(cond))
	}

	resolved := make([]*matcher.Resolved, 0, len(cfg.Matchers))
	for i, ref := range cfg.Matchers {
		m, err := matchers.Resolve(ref.Matcher)
		if err != nil {
			return nil, fmt.Errorf("matchers[%d]: %w", i, err)
		}

		var refMapping *mapping.Table
		if ref.Mapping != "" {
			refMapping, err = mappings.Resolve(ref.Mapping)
			if err != nil {
				return nil, fmt.Errorf("matchers[%d]: %w", i, err)
			}
		}

		t := effectiveMapping(refMapping, profileMapping, m.Mapping())
		if t == nil {
			return nil, fmt.Errorf("%w: matcher %q in profile %q has no mapping",
				errdefs.ErrUnresolvedMapping, m.Name(), name)
		}

		resolved = append(resolved, m.Resolve(t))
	}

	return New(name, cfg.Domains, resolved, opts...)
}

// effectiveMapping returns the first non-nil table.
func effectiveMapping(tables ...*mapping.Table) *mapping.Table {
	for _, t := range tables {
		if t != nil {
			return t
		}
	}

	return nil
}

// FindProfileForHost returns the first profile with a domain pattern that
// matches host.
func (r *Registry) FindProfileForHost(host string) (*Profile, bool) {
	for _, p := range r.profiles {
		if p.MatchesHost(host) {
			return p, true
		}
	}

	return nil, false
}

// FindProfile is like [Registry.FindProfileForHost] but also requires the
// profile condition to hold for u.
func (r *Registry) FindProfile(u *urlparts.URL) (*Profile, bool) {
	for _, p := range r.profiles {
		if p.Matches(u) {
			return p, true
		}
	}

	return nil, false
}

// Get returns the profile registered under name.
func (r *Registry) Get(name string) (*Profile, bool) {
	p, ok := r.byName[name]

	return p, ok
}

// Profiles returns the profiles in registration order.
func (r *Registry) Profiles() []*Profile {
	return slices.Clone(r.profiles)
}

// Names returns the profile names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.profiles))
	for _, p := range r.profiles {
		names = append(names, p.Name())
	}

	return names
}

// Len returns the number of registered profiles.
func (r *Registry) Len() int {
	return len(r.profiles)
}
