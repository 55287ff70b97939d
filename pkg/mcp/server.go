package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/modelcontextprotocol/go-sdk/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/trace"

	"github.com/macropower/urllang/pkg/detector"
	"github.com/macropower/urllang/pkg/telemetry"
	"github.com/macropower/urllang/pkg/version"
)

// ErrNoDetector is returned by [NewServer] when no detector is available.
var ErrNoDetector = errors.New("detector provider is required")

// Server implements the MCP server for urllang.
type Server struct {
	provider detector.Provider
	server   *mcp.Server
	tracer   trace.Tracer
	address  string
}

// NewServer creates a new MCP server. Each tool call uses the detector
// returned by provider at the time of the call, so a [detector.Reloader]
// can swap configurations while the server runs. An empty address serves
// over stdio.
func NewServer(address string, provider detector.Provider) (*Server, error) {
	if provider == nil || provider.Detector() == nil {
		return nil, ErrNoDetector
	}

	impl := &mcp.Implementation{
		Name:    name,
		Version: version.GetVersion(),
	}

	opts := &mcp.ServerOptions{
		Instructions: instructions,
	}

	s := &Server{
		address:  address,
		provider: provider,
		server:   mcp.NewServer(impl, opts),
		tracer:   telemetry.Tracer("mcp"),
	}

	s.registerTools()

	return s, nil
}

func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "detect_language",
		Description: "Detect the language of one or more URLs. " +
			"URLs MUST be absolute, including the scheme (e.g. https://en.example.com/).",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"urls": {
					Type:        "array",
					Description: "The URLs to inspect.",
					Items:       newStringSchema("An absolute URL."),
				},
				"explain": {
					Type:        "boolean",
					Description: "Include the profile, matcher and token that produced each result.",
				},
			},
			Required: []string{"urls"},
		},
	}, WithTracing(s.tracer, s.handleDetectLanguage))

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_profiles",
		Description: "List the configured profiles in evaluation order, with their domains and matchers.",
		InputSchema: &jsonschema.Schema{
			Type:       "object",
			Properties: map[string]*jsonschema.Schema{},
		},
	}, WithTracing(s.tracer, s.handleListProfiles))

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "lookup_token",
		Description: "Look up a single token in a mapping, e.g. the token \"fra\" in \"ISO-639-ALPHA-3\".",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"mapping": newStringSchema("The name of the mapping, as shown by list_profiles."),
				"token":   newStringSchema("The token to look up."),
			},
			Required: []string{"mapping", "token"},
		},
	}, WithTracing(s.tracer, s.handleLookupToken))
}

// Server returns the underlying MCP server.
func (s *Server) Server() *mcp.Server {
	return s.server
}

// Serve runs the server until ctx is done.
func (s *Server) Serve(ctx context.Context) error {
	slog.InfoContext(ctx, "starting MCP server", slog.String("address", s.address))

	if s.address == "" {
		err := s.serveStdio(ctx)
		if err != nil {
			return fmt.Errorf("serve stdio: %w", err)
		}

		return nil
	}

	err := s.serveHTTP(ctx)
	if err != nil {
		return fmt.Errorf("serve HTTP: %w", err)
	}

	return nil
}

func (s *Server) serveHTTP(ctx context.Context) error {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)

	server := &http.Server{
		Addr:    s.address,
		Handler: handler,

		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()

		err := server.Shutdown(shutdownCtx)
		if err != nil {
			slog.Error("shut down MCP server", slog.Any("err", err))
		}
	}()

	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("MCP server failed: %w", err)
	}

	return nil
}

func (s *Server) serveStdio(ctx context.Context) error {
	t := mcp.NewLoggingTransport(mcp.NewStdioTransport(), os.Stderr)

	err := s.server.Run(ctx, t)
	if err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}

	return nil
}

func textResult[Out any](text string, out Out) *mcp.CallToolResultFor[Out] {
	return &mcp.CallToolResultFor[Out]{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
		StructuredContent: out,
	}
}

func errorResult[Out any](text string) *mcp.CallToolResultFor[Out] {
	return &mcp.CallToolResultFor[Out]{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "INVALID INPUT ERROR: " + text},
		},
		IsError: true,
	}
}
