package mapping

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/macropower/urllang/pkg/errdefs"
	"github.com/macropower/urllang/pkg/locale"
)

// Registry holds named tables. It is read-only once built.
type Registry struct {
	tables map[string]*Table
	names  []string
}

// RegistryOpt configures [Build].
type RegistryOpt func(*registryOptions)

type registryOptions struct {
	builtins []*Table
}

// WithCatalog generates the built-in tables from c instead of
// [locale.DefaultCatalog].
func WithCatalog(c *locale.Catalog) RegistryOpt {
	return func(o *registryOptions) {
		o.builtins = NewBuiltins(c)
	}
}

// Build creates a [Registry] holding the built-in tables followed by one
// table per config, in order. A config may extend any built-in table or any
// table defined before it. The first invalid config aborts the build.
func Build(configs []*Config, opts ...RegistryOpt) (*Registry, error) {
	options := &registryOptions{}
	for _, opt := range opts {
		opt(options)
	}

	if options.builtins == nil {
		options.builtins = DefaultBuiltins()
	}

	r := &Registry{tables: map[string]*Table{}}

	for _, t := range options.builtins {
		err := r.register(t)
		if err != nil {
			return nil, err
		}
	}

	for i, cfg := range configs {
		if cfg == nil {
			return nil, fmt.Errorf("mappings[%d]: %w: empty mapping", i, errdefs.ErrInvalidConfig)
		}

		t, err := r.buildTable(cfg)
		if err != nil {
			return nil, fmt.Errorf("mapping %q: %w", cfg.Name, err)
		}

		err = r.register(t)
		if err != nil {
			return nil, err
		}

		slog.Debug("registered mapping",
			slog.String("name", t.Name()),
			slog.Int("tokens", t.Len()),
			slog.Bool("case_sensitive", t.CaseSensitive()),
		)
	}

	return r, nil
}

// MustBuild is like [Build] but panics on error.
func MustBuild(configs []*Config, opts ...RegistryOpt) *Registry {
	r, err := Build(configs, opts...)
	if err != nil {
		panic(err)
	}

	return r
}

func (r *Registry) register(t *Table) error {
	if _, ok := r.tables[t.Name()]; ok {
		return errdefs.Duplicate("mapping", t.Name())
	}

	r.tables[t.Name()] = t
	r.names = append(r.names, t.Name())

	return nil
}

func (r *Registry) buildTable(cfg *Config) (*Table, error) {
	err := errdefs.ValidateStruct(cfg)
	if err != nil {
		return nil, err //nolint:wrapcheck // Already wrapped by errdefs.
	}

	t := newTable(strings.TrimSpace(cfg.Name), cfg.CaseSensitive)

	for _, name := range cfg.Extend {
		base, err := r.Resolve(name)
		if err != nil {
			return nil, fmt.Errorf("extend: %w", err)
		}

		for _, e := range base.Entries() {
			t.putIfAbsent(e.Token, e.Language)
		}
	}

	if strings.TrimSpace(cfg.Filter) != "" {
		list, err := locale.ParsePriorityList(cfg.Filter)
		if err != nil {
			return nil, fmt.Errorf("filter: %w", err)
		}

		removed := t.retain(list.Matches)

		slog.Debug("filtered mapping",
			slog.String("name", t.Name()),
			slog.String("filter", list.String()),
			slog.Int("removed", removed),
		)
	}

	for _, e := range cfg.Add {
		lang, err := locale.Parse(e.Tag)
		if err != nil {
			return nil, fmt.Errorf("add: %w", err)
		}

		for _, tok := range e.Tokens {
			if tok = strings.TrimSpace(tok); tok != "" {
				t.putIfAbsent(tok, lang)
			}
		}
	}

	for _, e := range cfg.Override {
		lang, err := locale.Parse(e.Tag)
		if err != nil {
			return nil, fmt.Errorf("override: %w", err)
		}

		t.removeLanguage(lang)

		for _, tok := range e.Tokens {
			if tok = strings.TrimSpace(tok); tok != "" {
				t.put(tok, lang)
			}
		}
	}

	return t, nil
}

// Get returns the table registered under name.
func (r *Registry) Get(name string) (*Table, bool) {
	t, ok := r.tables[name]

	return t, ok
}

// Resolve is like [Registry.Get] but returns an [errdefs.ReferenceError]
// with suggestions when name is not registered.
func (r *Registry) Resolve(name string) (*Table, error) {
	t, ok := r.tables[strings.TrimSpace(name)]
	if !ok {
		return nil, errdefs.UnknownReference("mapping", name, r.names)
	}

	return t, nil
}

// Names returns the table names in registration order.
func (r *Registry) Names() []string {
	return slices.Clone(r.names)
}

// Len returns the number of registered tables.
func (r *Registry) Len() int {
	return len(r.names)
}
