package middlewares

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/babylonchain/staking-vault-service/internal/observability/tracing"
	"github.com/babylonchain/staking-vault-service/internal/utils"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// LoggingMiddleware attaches a request scoped logger to the context and logs
// each completed request with its status and duration.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/swagger/") {
			next.ServeHTTP(w, r)
			return
		}

		startTime := time.Now()
		logCtx := log.With().Str("method", r.Method).Str("path", r.URL.Path)
		if traceId := tracing.TraceIdFromContext(r.Context()); traceId != "" {
			logCtx = logCtx.Str("traceId", traceId)
		}
		if caller := r.Header.Get(CallerHeader); utils.ValidatePublicKeyHex(caller) == nil {
			logCtx = logCtx.Str("caller", utils.NormalizePublicKeyHex(caller))
		}
		logger := logCtx.Logger()

		logger.Debug().Msg("request received")
		r = r.WithContext(logger.WithContext(r.Context()))

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		var logEvent *zerolog.Event
		switch {
		case recorder.status >= http.StatusInternalServerError:
			logEvent = logger.Error()
		case recorder.status >= http.StatusBadRequest:
			logEvent = logger.Warn()
		default:
			logEvent = logger.Info()
		}
		if tracingInfo, ok := r.Context().Value(tracing.TracingInfoKey).(*tracing.TracingInfo); ok {
			logEvent = logEvent.Interface("tracingInfo", tracingInfo)
		}
		logEvent.
			Int("status", recorder.status).
			Int64("requestDuration", time.Since(startTime).Milliseconds()).
			Msg("Request completed")
	})
}
