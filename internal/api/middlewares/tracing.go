package middlewares

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/babylonchain/staking-vault-service/internal/observability/tracing"
)

// RequestIdHeader lets a proxy or the node sidecar correlate logs across
// services. The id is echoed on the response.
const RequestIdHeader = "X-Request-Id"

func TracingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if requestId := r.Header.Get(RequestIdHeader); isValidRequestId(requestId) {
			ctx = tracing.AttachTraceWithId(ctx, requestId)
		} else {
			ctx = tracing.AttachTracingIntoContext(ctx)
		}
		w.Header().Set(RequestIdHeader, tracing.TraceIdFromContext(ctx))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Only uuids are accepted so that arbitrary client input never reaches the logs.
func isValidRequestId(id string) bool {
	if id == "" {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
