package mcp

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/macropower/urllang/pkg/log"
)

// WithTracing runs each call of handler in a server span named after the
// tool, with a context logger that carries the tool name. Handler errors
// and results flagged with IsError set the span status to error.
func WithTracing[In, Out any](tracer trace.Tracer, handler mcp.ToolHandlerFor[In, Out]) mcp.ToolHandlerFor[In, Out] {
	return func(
		ctx context.Context,
		session *mcp.ServerSession,
		params *mcp.CallToolParamsFor[In],
	) (*mcp.CallToolResultFor[Out], error) {
		ctx, span := tracer.Start(ctx, params.Name,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(attribute.String("mcp.tool", params.Name)),
		)
		defer span.End()

		ctx = log.With(ctx, log.Tool(params.Name))
		logger := log.FromContext(ctx)

		logger.DebugContext(ctx, "calling tool", slog.Any("args", params.Arguments))

		result, err := handler(ctx, session, params)

		switch {
		case err != nil:
			logger.ErrorContext(ctx, "tool call failed", slog.Any("err", err))
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())

		case result != nil && result.IsError:
			logger.DebugContext(ctx, "tool rejected input")
			span.SetStatus(codes.Error, "invalid input")

		default:
			logger.DebugContext(ctx, "tool call completed")
		}

		return result, err
	}
}
