package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// LookupTokenParams defines parameters for the lookup_token tool.
type LookupTokenParams struct {
	Mapping string `json:"mapping"`
	Token   string `json:"token"`
}

// LookupTokenResult contains the language a token maps to.
type LookupTokenResult struct {
	Message  string `json:"message"`
	Mapping  string `json:"mapping"`
	Token    string `json:"token"`
	Language string `json:"language,omitempty"`
	Found    bool   `json:"found"`
}

func (s *Server) handleLookupToken(
	_ context.Context,
	_ *mcp.ServerSession,
	params *mcp.CallToolParamsFor[LookupTokenParams],
) (*mcp.CallToolResultFor[LookupTokenResult], error) {
	args := params.Arguments

	t, err := s.provider.Detector().Mappings().Resolve(args.Mapping)
	if err != nil {
		return errorResult[LookupTokenResult](err.Error()), nil
	}

	result := LookupTokenResult{
		Mapping: t.Name(),
		Token:   args.Token,
	}

	lang, ok := t.Detect(args.Token)
	if ok {
		result.Found = true
		result.Language = lang.String()
		result.Message = fmt.Sprintf("Token %q maps to %s in %s.", args.Token, result.Language, t.Name())
	} else {
		result.Message = fmt.Sprintf("Token %q is not in %s.", args.Token, t.Name())
	}

	return textResult(result.Message, result), nil
}
