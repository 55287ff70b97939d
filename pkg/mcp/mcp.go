// Package mcp serves urllang detectors over the Model Context Protocol.
package mcp

import "github.com/modelcontextprotocol/go-sdk/jsonschema"

const (
	name         = "urllang"
	instructions = `MCP Server 'urllang' detects the language of web pages from their URLs, using the hostname, path and querystring rules of the active urllang configuration.

When to use these tools:
- Finding out which language a URL points to, without fetching it
- Grouping or filtering a list of URLs by language
- Understanding why a URL was (or was not) assigned a language

Workflow:
1. Use 'detect_language' with one or more absolute URLs (including the scheme, e.g. "https://").
2. Set 'explain' to true to see the profile, matcher and token responsible for each result.
3. Use 'list_profiles' to see which domains each profile covers and which matchers it runs, in order.
4. Use 'lookup_token' to check how a single token (e.g. "fra" or "en-US") resolves in a mapping.
`

	// Results are limited per call to keep responses readable.
	maxURLs = 1000
)

func newStringSchema(desc string) *jsonschema.Schema {
	return &jsonschema.Schema{
		Type:        "string",
		Description: desc,
	}
}
