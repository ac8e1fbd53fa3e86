package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"
	logger "github.com/rs/zerolog"

	"github.com/babylonchain/staking-vault-service/internal/api/handlers"
	"github.com/babylonchain/staking-vault-service/internal/observability/metrics"
	"github.com/babylonchain/staking-vault-service/internal/types"
)

const internalErrorMessage = "Internal service error"

type ErrorResponse struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

func (e *ErrorResponse) Error() string {
	return e.Message
}

// routeLabel keeps metric cardinality bounded by using the matched route
// pattern instead of the raw path.
func routeLabel(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return r.URL.Path
}

func registerHandler(handlerFunc func(*http.Request) (*handlers.Result, *types.Error)) func(http.ResponseWriter, *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		timer := metrics.StartHttpRequestDurationTimer(routeLabel(r))
		result, err := handlerFunc(r)

		if err != nil {
			status := err.StatusCode
			if http.StatusText(status) == "" {
				logger.Ctx(r.Context()).Error().Err(err).Int("status_code", status).Msg("invalid status code")
				status = http.StatusInternalServerError
			}

			errorResponse := &ErrorResponse{
				ErrorCode: string(err.ErrorCode),
				Message:   err.Error(),
			}
			if status >= http.StatusInternalServerError {
				logger.Ctx(r.Context()).Error().Err(errorResponse).Msg("request failed with 5xx error")
				errorResponse.Message = internalErrorMessage
			}
			timer(status)
			writeResponse(w, r, status, errorResponse)
			return
		}

		if result == nil || http.StatusText(result.Status) == "" {
			logger.Ctx(r.Context()).Error().Msg("invalid success response, error returned")
			timer(http.StatusInternalServerError)
			writeResponse(w, r, http.StatusInternalServerError, &ErrorResponse{
				ErrorCode: types.InternalServiceError.String(),
				Message:   internalErrorMessage,
			})
			return
		}

		timer(result.Status)
		writeResponse(w, r, result.Status, result.Data)
	}
}

func writeResponse(w http.ResponseWriter, r *http.Request, statusCode int, res interface{}) {
	respBytes, err := json.Marshal(res)
	if err != nil {
		logger.Ctx(r.Context()).Err(err).Msg("failed to marshal response")
		http.Error(w, "Failed to process the request. Please try again later.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	w.Write(respBytes) // nolint:errcheck
}
