package mcp

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/macropower/urllang/pkg/detector"
	"github.com/macropower/urllang/pkg/log"
)

// DetectLanguageParams defines parameters for the detect_language tool.
type DetectLanguageParams struct {
	URLs    []string `json:"urls"`
	Explain bool     `json:"explain,omitempty"`
}

// DetectLanguageResult contains the result of detecting languages.
type DetectLanguageResult struct {
	Message  string            `json:"message"`
	Results  []detector.Result `json:"results"`
	Detected int               `json:"detected"`
}

func (s *Server) handleDetectLanguage(
	ctx context.Context,
	_ *mcp.ServerSession,
	params *mcp.CallToolParamsFor[DetectLanguageParams],
) (*mcp.CallToolResultFor[DetectLanguageResult], error) {
	urls := params.Arguments.URLs
	if len(urls) == 0 {
		return errorResult[DetectLanguageResult]("at least one URL is required."), nil
	}
	if len(urls) > maxURLs {
		return errorResult[DetectLanguageResult](
			fmt.Sprintf("at most %d URLs are accepted per call, got %d.", maxURLs, len(urls)),
		), nil
	}

	d := s.provider.Detector()

	result := DetectLanguageResult{
		Results: make([]detector.Result, 0, len(urls)),
	}

	for _, u := range urls {
		r := d.Explain(u)

		urlCtx := log.With(ctx, log.URL(u))
		log.FromContext(urlCtx).DebugContext(urlCtx, "explained url", slog.Any("result", r))

		if r.Found {
			result.Detected++
		}
		if !params.Arguments.Explain {
			r = r.Brief()
		}

		result.Results = append(result.Results, r)
	}

	result.Message = fmt.Sprintf("Detected a language for %d of %d URLs.", result.Detected, len(urls))

	log.FromContext(ctx).DebugContext(ctx, "detected languages",
		slog.Int("urls", len(urls)),
		slog.Int("detected", result.Detected),
	)

	return textResult(result.Message, result), nil
}
