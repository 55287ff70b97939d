// Package urlparts splits absolute URLs into the components that matchers
// operate on.
package urlparts

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	// ErrNotAbsolute is returned for URLs without a scheme or host.
	ErrNotAbsolute = errors.New("url is not absolute")
)

// URL holds the components of a parsed absolute URL. Path and RawQuery keep
// their percent-encoding.
type URL struct {
	Scheme   string
	Host     string
	Port     string
	Path     string
	RawQuery string
}

// Parse parses an absolute URL. User info and fragments are discarded, the
// host is lowercased, and an empty path becomes "/".
func Parse(raw string) (*URL, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("parse url: %w", err)
	}

	if u.Scheme == "" || u.Opaque != "" {
		return nil, fmt.Errorf("%w: %q", ErrNotAbsolute, raw)
	}

	host := u.Hostname()
	if host == "" {
		return nil, fmt.Errorf("%w: %q has no host", ErrNotAbsolute, raw)
	}

	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}

	return &URL{
		Scheme:   strings.ToLower(u.Scheme),
		Host:     strings.ToLower(host),
		Port:     u.Port(),
		Path:     path,
		RawQuery: u.RawQuery,
	}, nil
}

// QueryParams returns the raw "key=value" pieces of the query string in
// order. Empty pieces are dropped and nothing is decoded.
func (u *URL) QueryParams() []string {
	if u.RawQuery == "" {
		return nil
	}

	var params []string
	for p := range strings.SplitSeq(u.RawQuery, "&") {
		if p != "" {
			params = append(params, p)
		}
	}

	return params
}

// PathSegments returns the non-empty segments of the escaped path.
func (u *URL) PathSegments() []string {
	var segs []string
	for s := range strings.SplitSeq(u.Path, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}

	return segs
}

// HostLabels returns the dot-separated labels of the host.
func (u *URL) HostLabels() []string {
	return strings.Split(u.Host, ".")
}

// QueryValues returns the decoded values of the query parameter key.
// Malformed pairs are skipped.
func (u *URL) QueryValues(key string) []string {
	var values []string
	for _, p := range u.QueryParams() {
		k, v, _ := strings.Cut(p, "=")

		dk, err := url.QueryUnescape(k)
		if err != nil || dk != key {
			continue
		}

		dv, err := url.QueryUnescape(v)
		if err != nil {
			continue
		}

		values = append(values, dv)
	}

	return values
}

func (u *URL) String() string {
	host := u.Host
	if u.Port != "" {
		host += ":" + u.Port
	}

	s := u.Scheme + "://" + host + u.Path
	if u.RawQuery != "" {
		s += "?" + u.RawQuery
	}

	return s
}
