package services

import (
	"context"

	"github.com/holiman/uint256"
	"github.com/rs/zerolog/log"

	"github.com/babylonchain/staking-vault-service/internal/observability/metrics"
	"github.com/babylonchain/staking-vault-service/internal/observability/tracing"
	"github.com/babylonchain/staking-vault-service/internal/types"
	"github.com/babylonchain/staking-vault-service/internal/vault"
)

type DepositPublic struct {
	Account   string     `json:"account"`
	Amount    string     `json:"amount"`
	Delegated string     `json:"delegated"`
	Pool      PoolPublic `json:"pool"`
}

type UnstakeRequestPublic struct {
	Seq         uint64 `json:"seq"`
	Account     string `json:"account"`
	Amount      string `json:"amount"`
	RequestedAt int64  `json:"requested_at"`
}

type DrainPublic struct {
	Settled uint64 `json:"settled"`
}

type HarvestPublic struct {
	HarvestedPrizePool string `json:"harvested_prize_pool"`
	Updated            bool   `json:"updated"`
}

// runVaultOperation executes a mutating vault operation while holding the
// write lock and records its outcome.
func runVaultOperation[T any](
	ctx context.Context, s *Services, operation string, fn func(ctx context.Context) (T, error),
) (T, *types.Error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	done := metrics.StartVaultOperationTimer(operation)
	result, err := tracing.WrapWithSpan(ctx, operation, func() (T, error) {
		return fn(ctx)
	})
	// Drain commits settlements one by one, the pool may have moved even
	// when the operation failed.
	s.recordPoolMetrics(ctx)
	if err != nil {
		apiErr := toServiceError(ctx, operation, err)
		done(metrics.Error, apiErr.ErrorCode.String())
		var zero T
		return zero, apiErr
	}
	done(metrics.Success, "")
	return result, nil
}

// InitVault sets the validator of the vault. It succeeds once.
func (s *Services) InitVault(ctx context.Context, validator string) (*PoolPublic, *types.Error) {
	_, err := runVaultOperation(ctx, s, "init", func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.Vault.Init(ctx, vault.ValidatorID(validator))
	})
	if err != nil {
		return nil, err
	}
	log.Ctx(ctx).Info().Str("validator", validator).Msg("vault initialized")
	return s.GetPool(ctx)
}

func (s *Services) Deposit(ctx context.Context, account string, amount *uint256.Int) (*DepositPublic, *types.Error) {
	ctx = vault.WithAttachedValue(vault.WithCaller(ctx, vault.Account(account)), amount)
	result, err := runVaultOperation(ctx, s, "deposit", s.Vault.Deposit)
	if err != nil {
		return nil, err
	}
	if !result.Delegated.IsZero() {
		log.Ctx(ctx).Info().Str("account", account).Str("amount", result.Delegated.Dec()).
			Msg("pending pool delegated")
	}
	pool, err := s.GetPool(ctx)
	if err != nil {
		return nil, err
	}
	return &DepositPublic{
		Account:   result.Account.String(),
		Amount:    result.Amount.Dec(),
		Delegated: result.Delegated.Dec(),
		Pool:      *pool,
	}, nil
}

// RequestExit undelegates amount for account and queues its payout.
func (s *Services) RequestExit(
	ctx context.Context, account string, amount *uint256.Int,
) (*UnstakeRequestPublic, *types.Error) {
	ctx = vault.WithCaller(ctx, vault.Account(account))
	request, err := runVaultOperation(ctx, s, "exit", func(ctx context.Context) (*vault.UnstakeRequest, error) {
		return s.Vault.RequestExit(ctx, amount)
	})
	if err != nil {
		return nil, err
	}
	return &UnstakeRequestPublic{
		Seq:         request.Seq,
		Account:     request.Account.String(),
		Amount:      request.Amount.Dec(),
		RequestedAt: request.RequestedAt.UnixMilli(),
	}, nil
}

func (s *Services) Drain(ctx context.Context) (*DrainPublic, *types.Error) {
	settled, err := runVaultOperation(ctx, s, "drain", func(ctx context.Context) (uint64, error) {
		settled, err := s.Vault.Drain(ctx)
		metrics.RecordWithdrawalsSettled(settled)
		if err != nil && settled > 0 {
			log.Ctx(ctx).Warn().Uint64("settled", settled).Msg("drain stopped after partial settlement")
		}
		return settled, err
	})
	if err != nil {
		return nil, err
	}
	if settled > 0 {
		log.Ctx(ctx).Info().Uint64("settled", settled).Msg("withdrawals settled")
	}
	return &DrainPublic{Settled: settled}, nil
}

func (s *Services) Harvest(ctx context.Context) (*HarvestPublic, *types.Error) {
	result, err := runVaultOperation(ctx, s, "harvest", s.Vault.Harvest)
	if err != nil {
		return nil, err
	}
	return &HarvestPublic{
		HarvestedPrizePool: result.HarvestedPrizePool.Dec(),
		Updated:            result.Updated,
	}, nil
}
