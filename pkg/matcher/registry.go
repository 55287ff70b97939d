package matcher

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/macropower/urllang/pkg/errdefs"
	"github.com/macropower/urllang/pkg/mapping"
)

// Registry holds named matchers. It is read-only once built.
type Registry struct {
	matchers map[string]*Matcher
	names    []string
}

// Build compiles one [Matcher] per config, in order. Mapping references are
// resolved against mappings. The first invalid config aborts the build.
func Build(configs []*Config, mappings *mapping.Registry) (*Registry, error) {
	r := &Registry{matchers: map[string]*Matcher{}}

	for i, cfg := range configs {
		if cfg == nil {
			return nil, fmt.Errorf("matchers[%d]: %w: empty matcher", i, errdefs.ErrInvalidConfig)
		}

		m, err := newFromConfig(cfg, mappings)
		if err != nil {
			return nil, fmt.Errorf("matcher %q: %w", cfg.Name, err)
		}

		if _, ok := r.matchers[m.Name()]; ok {
			return nil, errdefs.Duplicate("matcher", m.Name())
		}

		r.matchers[m.Name()] = m
		r.names = append(r.names, m.Name())

		slog.Debug("registered matcher",
			slog.String("name", m.Name()),
			slog.String("url_part", m.URLPart().String()),
			slog.Int("patterns", len(m.patterns)),
			slog.Bool("pattern_order", m.PatternOrder()),
		)
	}

	return r, nil
}

func newFromConfig(cfg *Config, mappings *mapping.Registry) (*Matcher, error) {
	err := errdefs.ValidateStruct(cfg)
	if err != nil {
		return nil, err //nolint:wrapcheck // Already wrapped by errdefs.
	}

	part, err := ParseURLPart(cfg.URLPart)
	if err != nil {
		return nil, err
	}

	opts := []Opt{
		WithCaseSensitive(cfg.CaseSensitive),
		WithPatternOrder(cfg.PatternOrder),
	}

	if cfg.Mapping != "" {
		t, err := mappings.Resolve(cfg.Mapping)
		if err != nil {
			return nil, err //nolint:wrapcheck // Reference errors carry their own context.
		}

		opts = append(opts, WithMapping(t))
	}

	return New(strings.TrimSpace(cfg.Name), part, cfg.Patterns, opts...)
}

// Get returns the matcher registered under name.
func (r *Registry) Get(name string) (*Matcher, bool) {
	m, ok := r.matchers[name]

	return m, ok
}

// Resolve is like [Registry.Get] but returns an [errdefs.ReferenceError]
// with suggestions when name is not registered.
func (r *Registry) Resolve(name string) (*Matcher, error) {
	m, ok := r.matchers[strings.TrimSpace(name)]
	if !ok {
		return nil, errdefs.UnknownReference("matcher", name, r.names)
	}

	return m, nil
}

// Names returns the matcher names in registration order.
func (r *Registry) Names() []string {
	return slices.Clone(r.names)
}

// Len returns the number of registered matchers.
func (r *Registry) Len() int {
	return len(r.names)
}
