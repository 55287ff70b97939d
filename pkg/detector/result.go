package detector

import (
	"log/slog"

	"github.com/macropower/urllang/pkg/locale"
	"github.com/macropower/urllang/pkg/log"
)

// Result describes the outcome of [Detector.Explain].
type Result struct {
	// URL is the input URL.
	URL string `json:"url"`
	// Language is the detected language, or the zero value.
	Language locale.Language `json:"language"`
	// Profile is the name of the selected profile, if any.
	Profile string `json:"profile,omitempty"`
	// Matcher is the name of the matcher that detected the language.
	Matcher string `json:"matcher,omitempty"`
	// URLPart is the URL component the matcher applied to.
	URLPart string `json:"urlPart,omitempty"`
	// Input is the candidate string the pattern matched.
	Input string `json:"input,omitempty"`
	// Token is the text captured by the "lang" group.
	Token string `json:"token,omitempty"`
	// Pattern is the index of the matching pattern.
	Pattern int `json:"pattern,omitempty"`
	// Found reports whether a language was detected.
	Found bool `json:"found"`
}

// LanguageOr returns the detected language as a string, or fallback.
func (r Result) LanguageOr(fallback string) string {
	if !r.Found {
		return fallback
	}

	return r.Language.String()
}

// Brief returns r without the explanation fields.
func (r Result) Brief() Result {
	return Result{URL: r.URL, Language: r.Language, Found: r.Found}
}

// LogValue renders the result for structured logs. The URL is left out;
// callers attach it with [log.With].
func (r Result) LogValue() slog.Value {
	attrs := []slog.Attr{slog.Bool("found", r.Found)}
	if r.Found {
		attrs = append(attrs, slog.String("language", r.Language.String()))
	}
	if r.Profile != "" {
		attrs = append(attrs, slog.String(log.KeyProfile, r.Profile))
	}
	if r.Matcher != "" {
		attrs = append(attrs,
			slog.String(log.KeyMatcher, r.Matcher),
			slog.String("token", r.Token),
			slog.Int("pattern", r.Pattern),
		)
	}

	return slog.GroupValue(attrs...)
}
