package log

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/trace"
)

// Attribute keys shared by urllang's log records.
const (
	KeyConfig  = "config"
	KeyMatcher = "matcher"
	KeyProfile = "profile"
	KeyTool    = "tool"
	KeyTraceID = "trace_id"
	KeyURL     = "url"
)

type contextKey struct{}

// URL is the attribute for the URL being detected.
func URL(u string) slog.Attr {
	return slog.String(KeyURL, u)
}

// Config is the attribute for the configuration file in use.
func Config(path string) slog.Attr {
	return slog.String(KeyConfig, path)
}

// Tool is the attribute for an MCP tool name.
func Tool(name string) slog.Attr {
	return slog.String(KeyTool, name)
}

// NewContext returns a copy of ctx that carries logger.
func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// With returns a copy of ctx whose logger also carries attrs.
func With(ctx context.Context, attrs ...slog.Attr) context.Context {
	args := make([]any, len(attrs))
	for i, a := range attrs {
		args[i] = a
	}

	return NewContext(ctx, stored(ctx).With(args...))
}

// FromContext returns the logger carried by ctx, or the default logger.
// When ctx holds a span, the logger also carries its shortened trace ID.
func FromContext(ctx context.Context) *slog.Logger {
	logger := stored(ctx)

	sc := trace.SpanContextFromContext(ctx)
	if !sc.HasTraceID() {
		return logger
	}

	return logger.With(slog.String(KeyTraceID, sc.TraceID().String()[:8]))
}

func stored(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return logger
	}

	return slog.Default()
}
