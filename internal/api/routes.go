package api

import (
	"github.com/go-chi/chi"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/babylonchain/staking-vault-service/docs"
	"github.com/babylonchain/staking-vault-service/internal/api/middlewares"
)

func (a *Server) SetupRoutes(r *chi.Mux) {
	handlers := a.handlers
	rateLimited := middlewares.RateLimitMiddleware(a.rateLimiter)

	r.Get("/healthcheck", registerHandler(handlers.HealthCheck))

	r.With(rateLimited, middlewares.AdminAuthMiddleware(a.cfg)).
		Post("/v1/vault/init", registerHandler(handlers.InitVault))
	sidecarOnly := middlewares.SidecarAuthMiddleware(a.cfg)
	r.With(rateLimited, sidecarOnly, middlewares.CallerMiddleware).
		Post("/v1/vault/deposit", registerHandler(handlers.Deposit))
	r.With(rateLimited, sidecarOnly, middlewares.CallerMiddleware).
		Post("/v1/vault/exit", registerHandler(handlers.RequestExit))
	r.With(rateLimited).Post("/v1/vault/drain", registerHandler(handlers.Drain))
	r.With(rateLimited).Post("/v1/vault/harvest", registerHandler(handlers.Harvest))

	r.Get("/v1/vault/pool", registerHandler(handlers.GetPool))
	r.Get("/v1/vault/balance", registerHandler(handlers.GetBalance))
	r.Get("/v1/vault/history", registerHandler(handlers.GetHistory))
	r.Get("/v1/vault/info", registerHandler(handlers.GetVaultInfo))

	r.Get("/swagger/*", httpSwagger.WrapHandler)
}
