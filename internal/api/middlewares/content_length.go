package middlewares

import (
	"fmt"
	"net/http"

	"github.com/babylonchain/staking-vault-service/internal/config"
	"github.com/babylonchain/staking-vault-service/internal/types"
)

// ContentLengthMiddleware rejects POST bodies above the configured size. Bodies
// without a declared length are cut off at the same limit while reading.
func ContentLengthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	limit := cfg.Server.MaxContentLength
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodPost {
				if r.ContentLength > limit {
					writeError(w, http.StatusRequestEntityTooLarge, types.BadRequest,
						fmt.Sprintf("request body exceeds %d bytes", limit))
					return
				}
				r.Body = http.MaxBytesReader(w, r.Body, limit)
			}
			next.ServeHTTP(w, r)
		})
	}
}
