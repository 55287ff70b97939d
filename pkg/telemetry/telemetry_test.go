package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/macropower/urllang/pkg/telemetry"
)

func TestSetup_Disabled(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	t.Setenv("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", "")

	assert.False(t, telemetry.Enabled())

	shutdown, err := telemetry.Setup(t.Context(), "urllang")
	require.NoError(t, err)
	require.NoError(t, shutdown(t.Context()))

	_, isSDK := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	assert.False(t, isSDK)
}

func TestSetup_Enabled(t *testing.T) {
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://127.0.0.1:4317")

	assert.True(t, telemetry.Enabled())

	prev := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	shutdown, err := telemetry.Setup(t.Context(), "urllang")
	require.NoError(t, err)

	_, isSDK := otel.GetTracerProvider().(*sdktrace.TracerProvider)
	assert.True(t, isSDK)

	_, span := telemetry.Tracer("test").Start(t.Context(), "noop")
	assert.True(t, span.SpanContext().IsValid())

	// Nothing listens on the endpoint, so only the call itself is checked.
	ctx, cancel := context.WithTimeout(t.Context(), time.Second)
	defer cancel()

	_ = shutdown(ctx) //nolint:errcheck // See above.
}
