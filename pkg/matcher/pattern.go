package matcher

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/macropower/urllang/pkg/errdefs"
)

// GroupName is the capture group that yields the language token.
const GroupName = "lang"

var groupMarkers = []string{"(?<" + GroupName + ">", "(?P<" + GroupName + ">"}

// Pattern is a compiled regular expression that must match a whole string
// and captures the language token in the [GroupName] group.
type Pattern struct {
	re     *regexp.Regexp
	source string
	group  int
}

// CompilePattern compiles src. Patterns without a "lang" group fail with
// [errdefs.ErrInvalidPattern]; invalid syntax fails with
// [errdefs.ErrPatternSyntax].
func CompilePattern(src string, caseSensitive bool) (*Pattern, error) {
	if !hasGroupMarker(src) {
		return nil, fmt.Errorf("%w: %q has no (?<%s>...) group", errdefs.ErrInvalidPattern, src, GroupName)
	}

	_, err := regexp.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errdefs.ErrPatternSyntax, err)
	}

	expr := "^(?:" + src + ")$"
	if !caseSensitive {
		expr = "(?i)" + expr
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errdefs.ErrPatternSyntax, err)
	}

	group := re.SubexpIndex(GroupName)
	if group < 0 {
		return nil, fmt.Errorf("%w: %q has no (?<%s>...) group", errdefs.ErrInvalidPattern, src, GroupName)
	}

	return &Pattern{re: re, source: src, group: group}, nil
}

// Match matches the whole of s and returns the captured token. It returns
// false if s does not match or the group did not participate.
func (p *Pattern) Match(s string) (string, bool) {
	m := p.re.FindStringSubmatchIndex(s)
	if m == nil {
		return "", false
	}

	start, end := m[2*p.group], m[2*p.group+1]
	if start < 0 {
		return "", false
	}

	return s[start:end], true
}

// String returns the pattern as written in the configuration.
func (p *Pattern) String() string {
	return p.source
}

func hasGroupMarker(src string) bool {
	for _, marker := range groupMarkers {
		if strings.Contains(src, marker) {
			return true
		}
	}

	return false
}
