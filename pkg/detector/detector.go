package detector

import (
	"fmt"
	"log/slog"

	"github.com/macropower/urllang/api/v1beta1/configs"
	"github.com/macropower/urllang/pkg/locale"
	"github.com/macropower/urllang/pkg/mapping"
	"github.com/macropower/urllang/pkg/matcher"
	"github.com/macropower/urllang/pkg/profile"
	"github.com/macropower/urllang/pkg/urlparts"
)

// Detector holds the registries built from a configuration.
type Detector struct {
	mappings *mapping.Registry
	matchers *matcher.Registry
	profiles *profile.Registry
}

// New builds the mapping, matcher and profile registries from cfg, in that
// order. Any invalid element aborts the build.
func New(cfg *configs.Config) (*Detector, error) {
	mappings, err := mapping.Build(cfg.Mappings)
	if err != nil {
		return nil, fmt.Errorf("build mappings: %w", err)
	}

	matchers, err := matcher.Build(cfg.Matchers, mappings)
	if err != nil {
		return nil, fmt.Errorf("build matchers: %w", err)
	}

	profiles, err := profile.Build(cfg.Profiles, matchers, mappings)
	if err != nil {
		return nil, fmt.Errorf("build profiles: %w", err)
	}

	slog.Debug("built detector",
		slog.Int("mappings", mappings.Len()),
		slog.Int("matchers", matchers.Len()),
		slog.Int("profiles", profiles.Len()),
	)

	return &Detector{
		mappings: mappings,
		matchers: matchers,
		profiles: profiles,
	}, nil
}

// MustNew is like [New] but panics on error.
func MustNew(cfg *configs.Config) *Detector {
	d, err := New(cfg)
	if err != nil {
		panic(err)
	}

	return d
}

// Mappings returns the mapping registry.
func (d *Detector) Mappings() *mapping.Registry {
	return d.mappings
}

// Matchers returns the matcher registry.
func (d *Detector) Matchers() *matcher.Registry {
	return d.matchers
}

// Profiles returns the profile registry.
func (d *Detector) Profiles() *profile.Registry {
	return d.profiles
}

// Detect returns the language of the URL raw, if any.
func (d *Detector) Detect(raw string) (locale.Language, bool) {
	r := d.Explain(raw)

	return r.Language, r.Found
}

// DetectURL is like [Detector.Detect] for an already parsed URL.
func (d *Detector) DetectURL(u *urlparts.URL) (locale.Language, bool) {
	r := d.explainURL(u)

	return r.Language, r.Found
}

// Explain is like [Detector.Detect], but also reports which profile and
// matcher produced the result.
func (d *Detector) Explain(raw string) Result {
	u, err := urlparts.Parse(raw)
	if err != nil {
		slog.Debug("cannot parse url", slog.String("url", raw), slog.Any("err", err))

		return Result{URL: raw}
	}

	r := d.explainURL(u)
	r.URL = raw

	return r
}

func (d *Detector) explainURL(u *urlparts.URL) Result {
	r := Result{URL: u.String()}

	p, ok := d.profiles.FindProfile(u)
	if !ok {
		return r
	}

	r.Profile = p.Name()

	det, ok := p.Detect(u)
	if !ok {
		return r
	}

	r.Found = true
	r.Language = det.Language
	r.Matcher = det.Matcher.Name()
	r.URLPart = det.Matcher.URLPart().String()
	r.Input = det.Input
	r.Token = det.Token
	r.Pattern = det.Pattern

	return r
}

// Provider supplies the detector to use for a request.
// [Reloader] is a Provider that follows configuration changes.
type Provider interface {
	Detector() *Detector
}

type staticProvider struct {
	d *Detector
}

// Static returns a [Provider] that always returns d.
func Static(d *Detector) Provider {
	return staticProvider{d: d}
}

func (p staticProvider) Detector() *Detector {
	return p.d
}
