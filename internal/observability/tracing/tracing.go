package tracing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type TracingContextKey string

const TracingInfoKey = TracingContextKey("requestTracingInfo")
const TraceIdKey = TracingContextKey("requestTraceId")

type SpanDetail struct {
	Name     string
	Duration int64
}

type TracingInfo struct {
	SpanDetails []SpanDetail
}

func (t *TracingInfo) addSpanDetail(detail SpanDetail) {
	t.SpanDetails = append(t.SpanDetails, detail)
}

// AttachTracingIntoContext starts a new trace with a fresh trace id and an
// empty list of spans collected by WrapWithSpan.
func AttachTracingIntoContext(ctx context.Context) context.Context {
	return AttachTraceWithId(ctx, uuid.NewString())
}

// AttachTraceWithId continues a trace started upstream.
func AttachTraceWithId(ctx context.Context, traceId string) context.Context {
	ctx = context.WithValue(ctx, TraceIdKey, traceId)
	return context.WithValue(ctx, TracingInfoKey, &TracingInfo{})
}

// TraceIdFromContext returns the trace id or an empty string.
func TraceIdFromContext(ctx context.Context) string {
	traceId, _ := ctx.Value(TraceIdKey).(string)
	return traceId
}

func WrapWithSpan[Result any](ctx context.Context, name string, next func() (Result, error)) (Result, error) {
	tracingInfo, ok := ctx.Value(TracingInfoKey).(*TracingInfo)
	if !ok {
		log.Error().Msg("TracingInfo not found in the request chain")
	}

	startTime := time.Now()
	defer func() {
		if tracingInfo != nil {
			duration := time.Since(startTime).Milliseconds()
			tracingInfo.addSpanDetail(SpanDetail{Name: name, Duration: duration})
		}
	}()

	return next()
}
