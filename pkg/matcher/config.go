package matcher

// Config defines a matcher.
type Config struct {
	// Name identifies the matcher. It must be unique among matchers.
	Name string `json:"name" jsonschema:"title=Name" validate:"notblank"`
	// URLPart is the URL component the patterns are applied to.
	URLPart string `json:"urlPart" jsonschema:"title=URL Part,enum=hostname,enum=path,enum=querystring" validate:"notblank"`
	// Patterns are regular expressions that must match the whole component
	// and capture the language token in a group named "lang".
	Patterns []string `json:"patterns" jsonschema:"title=Patterns,minItems=1" validate:"required,min=1"`
	// Mapping is the default mapping used when a profile does not choose one.
	Mapping string `json:"mapping,omitempty" jsonschema:"title=Mapping"`
	// CaseSensitive makes the patterns case-sensitive.
	CaseSensitive bool `json:"caseSensitive,omitempty" jsonschema:"title=Case Sensitive"`
	// PatternOrder tries each pattern against every candidate before moving
	// on to the next pattern, instead of trying every pattern per candidate.
	PatternOrder bool `json:"patternOrder,omitempty" jsonschema:"title=Pattern Order"`
}
