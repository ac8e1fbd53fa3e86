package middlewares

import (
	"net/http"

	"github.com/babylonchain/staking-vault-service/internal/types"
	"github.com/babylonchain/staking-vault-service/internal/utils"
	"github.com/babylonchain/staking-vault-service/internal/vault"
)

// CallerHeader carries the public key of the account invoking the vault.
const CallerHeader = "X-Caller"

// CallerMiddleware attaches the caller identity to the request context.
// Requests without a valid public key are rejected.
func CallerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		caller := r.Header.Get(CallerHeader)
		if caller == "" {
			writeError(w, http.StatusUnauthorized, types.MissingCaller, CallerHeader+" header is required")
			return
		}
		if err := utils.ValidatePublicKeyHex(caller); err != nil {
			writeError(w, http.StatusBadRequest, types.ValidationError, "invalid caller: "+err.Error())
			return
		}
		ctx := vault.WithCaller(r.Context(), vault.Account(utils.NormalizePublicKeyHex(caller)))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
