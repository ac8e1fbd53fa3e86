package middlewares

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/babylonchain/staking-vault-service/internal/config"
)

const (
	maxAge = 300
)

// CorsMiddleware lets browsers call the API from the configured origins with
// the vault identity headers.
func CorsMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", CallerHeader, AdminSecretHeader},
		ExposedHeaders: []string{"Retry-After", RequestIdHeader},
		MaxAge:         maxAge,
	})
	return c.Handler
}
