package matcher

import (
	"fmt"
	"strings"

	"github.com/macropower/urllang/pkg/errdefs"
	"github.com/macropower/urllang/pkg/urlparts"
)

// URLPart selects the URL component a matcher is applied to.
type URLPart string

const (
	// PartHostname matches against the lowercased host, without port.
	PartHostname URLPart = "hostname"
	// PartPath matches against the escaped path.
	PartPath URLPart = "path"
	// PartQueryString matches against each raw "key=value" query parameter.
	PartQueryString URLPart = "querystring"
)

// AllURLParts lists the valid [URLPart] values.
var AllURLParts = []string{
	string(PartHostname),
	string(PartPath),
	string(PartQueryString),
}

var extractors = map[URLPart]func(*urlparts.URL) []string{
	PartHostname: func(u *urlparts.URL) []string {
		return []string{u.Host}
	},
	PartPath: func(u *urlparts.URL) []string {
		return []string{u.Path}
	},
	PartQueryString: (*urlparts.URL).QueryParams,
}

// ParseURLPart parses a URL part name, ignoring case.
func ParseURLPart(s string) (URLPart, error) {
	p := URLPart(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := extractors[p]; !ok {
		return "", fmt.Errorf("%w: unknown url part %q, expected one of: %s",
			errdefs.ErrInvalidConfig, s, strings.Join(AllURLParts, ", "))
	}

	return p, nil
}

// Extract returns the candidate strings for this part of u, in order.
func (p URLPart) Extract(u *urlparts.URL) []string {
	extract, ok := extractors[p]
	if !ok || u == nil {
		return nil
	}

	return extract(u)
}

func (p URLPart) String() string {
	return string(p)
}
