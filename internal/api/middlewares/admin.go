package middlewares

import (
	"crypto/subtle"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/babylonchain/staking-vault-service/internal/config"
	"github.com/babylonchain/staking-vault-service/internal/types"
)

const (
	AdminSecretHeader   = "X-Admin-Secret"
	SidecarSecretHeader = "X-Sidecar-Secret"
)

// AdminAuthMiddleware guards operator routes such as vault initialization.
func AdminAuthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return requireSecret(AdminSecretHeader, cfg.Admin.Secret, "invalid admin secret")
}

// SidecarAuthMiddleware guards the routes that report value movements for an
// account. Only the node sidecar, which has seen the transfer, may call them.
func SidecarAuthMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return requireSecret(SidecarSecretHeader, cfg.Sidecar.Secret, "invalid sidecar secret")
}

func requireSecret(header, expected, message string) func(http.Handler) http.Handler {
	secret := []byte(expected)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			provided := []byte(r.Header.Get(header))
			if len(secret) == 0 || subtle.ConstantTimeCompare(provided, secret) != 1 {
				log.Ctx(r.Context()).Warn().Str("path", r.URL.Path).Str("header", header).Msg("rejected unauthenticated request")
				writeError(w, http.StatusUnauthorized, types.Unauthorized, message)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
