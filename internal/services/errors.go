package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/babylonchain/staking-vault-service/internal/types"
	"github.com/babylonchain/staking-vault-service/internal/vault"
)

var vaultErrors = []struct {
	err        error
	statusCode int
	errorCode  types.ErrorCode
}{
	{vault.ErrInvalidAmount, http.StatusBadRequest, types.InvalidAmount},
	{vault.ErrInsufficientBalance, http.StatusForbidden, types.InsufficientBalance},
	{vault.ErrUnfundedDeposit, http.StatusBadRequest, types.UnfundedDeposit},
	{vault.ErrInvalidValidator, http.StatusBadRequest, types.ValidationError},
	{vault.ErrMissingCaller, http.StatusUnauthorized, types.MissingCaller},
	{vault.ErrUninitialized, http.StatusConflict, types.Uninitialized},
	{vault.ErrAlreadyInitialized, http.StatusConflict, types.AlreadyInitialized},
	{vault.ErrStake, http.StatusBadGateway, types.StakeError},
	{vault.ErrTransfer, http.StatusBadGateway, types.TransferError},
}

// toServiceError maps a vault error to the error returned to API clients.
// Client errors are logged as warnings, everything else as errors.
func toServiceError(ctx context.Context, operation string, err error) *types.Error {
	for _, e := range vaultErrors {
		if !errors.Is(err, e.err) {
			continue
		}
		if e.statusCode < http.StatusInternalServerError {
			log.Ctx(ctx).Warn().Err(err).Str("operation", operation).Msg("vault operation rejected")
		} else {
			log.Ctx(ctx).Error().Err(err).Str("operation", operation).Msg("vault operation failed")
		}
		return types.NewError(e.statusCode, e.errorCode, err)
	}
	log.Ctx(ctx).Error().Err(err).Str("operation", operation).Msg("vault operation failed")
	return types.NewInternalServiceError(err)
}
