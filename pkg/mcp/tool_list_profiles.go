package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/macropower/urllang/pkg/profile"
)

// ListProfilesParams defines parameters for the list_profiles tool.
type ListProfilesParams struct{}

// ListProfilesResult contains the configured profiles.
type ListProfilesResult struct {
	Message  string        `json:"message"`
	Profiles []ProfileInfo `json:"profiles"`
}

// ProfileInfo describes a profile.
type ProfileInfo struct {
	Name      string        `json:"name"`
	Mapping   string        `json:"mapping,omitempty"`
	Condition string        `json:"condition,omitempty"`
	Domains   []string      `json:"domains"`
	Matchers  []MatcherInfo `json:"matchers"`
}

// MatcherInfo describes a matcher as resolved within a profile.
type MatcherInfo struct {
	Name     string   `json:"name"`
	URLPart  string   `json:"urlPart"`
	Mapping  string   `json:"mapping"`
	Patterns []string `json:"patterns"`
}

func (s *Server) handleListProfiles(
	_ context.Context,
	_ *mcp.ServerSession,
	_ *mcp.CallToolParamsFor[ListProfilesParams],
) (*mcp.CallToolResultFor[ListProfilesResult], error) {
	profiles := s.provider.Detector().Profiles().Profiles()

	result := ListProfilesResult{
		Profiles: make([]ProfileInfo, 0, len(profiles)),
		Message:  fmt.Sprintf("Found %d profiles.", len(profiles)),
	}

	for _, p := range profiles {
		result.Profiles = append(result.Profiles, newProfileInfo(p))
	}

	return textResult(result.Message, result), nil
}

func newProfileInfo(p *profile.Profile) ProfileInfo {
	info := ProfileInfo{
		Name:     p.Name(),
		Domains:  p.Domains(),
		Matchers: make([]MatcherInfo, 0, len(p.Matchers())),
	}

	if t := p.Mapping(); t != nil {
		info.Mapping = t.Name()
	}
	if c := p.Condition(); c != nil {
		info.Condition = c.String()
	}

	for _, m := range p.Matchers() {
		mi := MatcherInfo{
			Name:    m.Name(),
			URLPart: m.URLPart().String(),
			Mapping: m.Mapping().Name(),
		}
		for _, pat := range m.Patterns() {
			mi.Patterns = append(mi.Patterns, pat.String())
		}

		info.Matchers = append(info.Matchers, mi)
	}

	return info
}
