package profile

// Config defines a profile.
type Config struct {
	// Name identifies the profile. It must be unique among profiles.
	Name string `json:"name" jsonschema:"title=Name" validate:"notblank"`
	// Domains are regular expressions that must match the whole host,
	// case-insensitively.
	Domains []string `json:"domains" jsonschema:"title=Domains,minItems=1" validate:"required,min=1"`
	// Mapping is the default mapping for matchers that do not choose one.
	Mapping string `json:"mapping,omitempty" jsonschema:"title=Mapping"`
	// Match is an optional CEL expression that must evaluate to true for
	// the profile to apply to a URL.
	Match string `json:"match,omitempty" jsonschema:"title=Match"`
	// Matchers are evaluated in order; the first detection wins.
	Matchers []MatcherRef `json:"matchers,omitempty" jsonschema:"title=Matchers" validate:"dive"`
}

// MatcherRef references a matcher, optionally binding it to a mapping.
type MatcherRef struct {
	// Matcher is the name of the referenced matcher.
	Matcher string `json:"matcher" jsonschema:"title=Matcher"`
	// Mapping overrides the profile and matcher default mappings.
	Mapping string `json:"mapping,omitempty" jsonschema:"title=Mapping"`
}
