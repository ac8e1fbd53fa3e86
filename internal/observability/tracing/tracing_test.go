package tracing_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/staking-vault-service/internal/observability/tracing"
)

func TestWrapWithSpanRecordsSpans(t *testing.T) {
	ctx := tracing.AttachTracingIntoContext(context.Background())
	require.NotEmpty(t, ctx.Value(tracing.TraceIdKey))

	result, err := tracing.WrapWithSpan(ctx, "first", func() (int, error) { return 7, nil })
	require.NoError(t, err)
	assert.Equal(t, 7, result)

	_, err = tracing.WrapWithSpan(ctx, "second", func() (int, error) { return 0, errors.New("boom") })
	assert.EqualError(t, err, "boom")

	info := ctx.Value(tracing.TracingInfoKey).(*tracing.TracingInfo)
	require.Len(t, info.SpanDetails, 2)
	assert.Equal(t, "first", info.SpanDetails[0].Name)
	assert.Equal(t, "second", info.SpanDetails[1].Name)
}

func TestWrapWithSpanWithoutTracing(t *testing.T) {
	result, err := tracing.WrapWithSpan(context.Background(), "span", func() (string, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, "ok", result)
}

func TestAttachTraceWithId(t *testing.T) {
	ctx := tracing.AttachTraceWithId(context.Background(), "upstream-id")
	assert.Equal(t, "upstream-id", tracing.TraceIdFromContext(ctx))
	assert.NotNil(t, ctx.Value(tracing.TracingInfoKey))

	assert.Empty(t, tracing.TraceIdFromContext(context.Background()))
}
