package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeSquared-Agency/Decide/internal/config"
)

func TestInitWithoutEndpointIsNoop(t *testing.T) {
	p, err := Init(context.Background(), config.TracingConfig{ServiceName: "decide"})
	require.NoError(t, err)

	assert.False(t, p.Enabled())
	require.NotNil(t, p.Tracer())

	_, span := p.Tracer().Start(context.Background(), "noop")
	assert.False(t, span.SpanContext().IsValid())
	span.End()

	assert.NoError(t, p.Shutdown(context.Background()))
}

func TestInitWithEndpoint(t *testing.T) {
	p, err := Init(context.Background(), config.TracingConfig{
		Endpoint:    "localhost:4318",
		ServiceName: "decide-test",
		Environment: "test",
		Insecure:    true,
	})
	require.NoError(t, err)
	assert.True(t, p.Enabled())

	_, span := p.Tracer().Start(context.Background(), "sampled")
	assert.True(t, span.SpanContext().IsValid())
	span.End()
}

func TestSamplerByEnvironment(t *testing.T) {
	assert.Contains(t, sampler("production").Description(), "TraceIDRatioBased")
	assert.Equal(t, "AlwaysOnSampler", sampler("development").Description())
}
