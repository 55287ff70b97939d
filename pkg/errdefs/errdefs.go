package errdefs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sahilm/fuzzy"
)

var (
	// ErrInvalidConfig indicates a required field is missing or blank.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrInvalidPattern indicates a pattern does not declare the "lang" capture group.
	ErrInvalidPattern = errors.New("invalid pattern")
	// ErrPatternSyntax indicates a regular expression failed to compile.
	ErrPatternSyntax = errors.New("pattern syntax")
	// ErrInvalidLanguageTag indicates a language tag or range is malformed.
	ErrInvalidLanguageTag = errors.New("invalid language tag")
	// ErrUnknownReference indicates a name reference does not resolve.
	ErrUnknownReference = errors.New("unknown reference")
	// ErrUnresolvedMapping indicates a matcher inside a profile has no mapping.
	ErrUnresolvedMapping = errors.New("unresolved mapping")
	// ErrDuplicateName indicates a name collides within its namespace.
	ErrDuplicateName = errors.New("duplicate name")
)

// maxSuggestions limits the number of "did you mean" candidates.
const maxSuggestions = 3

// ReferenceError is returned when a name reference cannot be resolved.
// It unwraps to [ErrUnknownReference].
type ReferenceError struct {
	// Kind is the namespace that was searched, e.g. "mapping".
	Kind string
	// Name is the reference that did not resolve.
	Name string
	// Suggestions holds the closest known names, best first.
	Suggestions []string
}

// UnknownReference creates a [ReferenceError] for name, ranking the known
// names of the same kind by fuzzy similarity.
func UnknownReference(kind, name string, known []string) *ReferenceError {
	return &ReferenceError{
		Kind:        kind,
		Name:        name,
		Suggestions: Suggest(name, known),
	}
}

func (e *ReferenceError) Error() string {
	msg := fmt.Sprintf("%s: %s %q", ErrUnknownReference, e.Kind, e.Name)
	if len(e.Suggestions) > 0 {
		quoted := make([]string, 0, len(e.Suggestions))
		for _, s := range e.Suggestions {
			quoted = append(quoted, fmt.Sprintf("%q", s))
		}

		msg += fmt.Sprintf(" (did you mean %s?)", strings.Join(quoted, ", "))
	}

	return msg
}

func (e *ReferenceError) Unwrap() error {
	return ErrUnknownReference
}

// Suggest returns up to three names from known that fuzzily match name.
// Matching is case-insensitive.
func Suggest(name string, known []string) []string {
	if name == "" || len(known) == 0 {
		return nil
	}

	lowered := make([]string, len(known))
	for i, k := range known {
		lowered[i] = strings.ToLower(k)
	}

	matches := fuzzy.Find(strings.ToLower(name), lowered)

	out := make([]string, 0, maxSuggestions)
	for _, m := range matches {
		if len(out) == maxSuggestions {
			break
		}

		out = append(out, known[m.Index])
	}

	return out
}

// Duplicate returns an [ErrDuplicateName] error for the named entity.
func Duplicate(kind, name string) error {
	return fmt.Errorf("%w: %s %q is already registered", ErrDuplicateName, kind, name)
}
