package services

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/babylonchain/staking-vault-service/internal/db"
	"github.com/babylonchain/staking-vault-service/internal/observability/metrics"
	"github.com/babylonchain/staking-vault-service/internal/types"
	"github.com/babylonchain/staking-vault-service/internal/vault"
)

type PoolPublic struct {
	Validator           string `json:"validator"`
	Initialized         bool   `json:"initialized"`
	TreasuryBalance     string `json:"treasury_balance"`
	StakedAmount        string `json:"staked_amount"`
	PendingStakePool    string `json:"pending_stake_pool"`
	TotalUnstakedAmount string `json:"total_unstaked_amount"`
	TotalPrincipal      string `json:"total_principal"`
	HarvestedPrizePool  string `json:"harvested_prize_pool"`
	UnstakeQueueLength  uint64 `json:"unstake_queue_length"`
	MinDelegation       string `json:"min_delegation"`
}

type BalancePublic struct {
	Account string `json:"account"`
	Balance string `json:"balance"`
}

type ActivityPublic struct {
	Account     string `json:"account"`
	Type        string `json:"type"`
	Amount      string `json:"amount"`
	RequestSeq  uint64 `json:"request_seq,omitempty"`
	OperationID string `json:"operation_id"`
	Timestamp   int64  `json:"timestamp"`
}

type VaultInfoPublic struct {
	TotalValueLocked   string `json:"total_value_locked"`
	Participants       uint64 `json:"participants"`
	UnstakeQueueLength uint64 `json:"unstake_queue_length"`
	HarvestedPrizePool string `json:"harvested_prize_pool"`
}

func (s *Services) GetPool(ctx context.Context) (*PoolPublic, *types.Error) {
	pool, err := s.Vault.Pool(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("error while loading the pool")
		return nil, types.NewInternalServiceError(err)
	}
	queueLength, err := s.Vault.QueueLength(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("error while reading the unstake queue length")
		return nil, types.NewInternalServiceError(err)
	}
	return &PoolPublic{
		Validator:           pool.Validator.String(),
		Initialized:         pool.Initialized,
		TreasuryBalance:     pool.TreasuryBalance.Dec(),
		StakedAmount:        pool.StakedAmount.Dec(),
		PendingStakePool:    pool.PendingStakePool.Dec(),
		TotalUnstakedAmount: pool.TotalUnstakedAmount.Dec(),
		TotalPrincipal:      pool.TotalPrincipal.Dec(),
		HarvestedPrizePool:  pool.HarvestedPrizePool.Dec(),
		UnstakeQueueLength:  queueLength,
		MinDelegation:       s.Vault.MinDelegation().Dec(),
	}, nil
}

func (s *Services) GetBalance(ctx context.Context, account string) (*BalancePublic, *types.Error) {
	balance, err := s.Vault.Balance(ctx, vault.Account(account))
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("account", account).Msg("error while reading balance")
		return nil, types.NewInternalServiceError(err)
	}
	return &BalancePublic{Account: account, Balance: balance.Dec()}, nil
}

// ActivitiesByAccount returns the history of account, newest first.
func (s *Services) ActivitiesByAccount(
	ctx context.Context, account string, pageToken string,
) ([]ActivityPublic, string, *types.Error) {
	resultMap, err := s.DbClient.FindActivities(ctx, vault.Account(account), pageToken)
	if err != nil {
		if db.IsInvalidPaginationTokenError(err) {
			log.Ctx(ctx).Warn().Err(err).Msg("Invalid pagination token when fetching activities")
			return nil, "", types.NewError(http.StatusBadRequest, types.InvalidPaginationKey, err)
		}
		log.Ctx(ctx).Error().Err(err).Msg("Failed to find activities by account")
		return nil, "", types.NewInternalServiceError(err)
	}
	activities := make([]ActivityPublic, 0, len(resultMap.Data))
	for _, d := range resultMap.Data {
		activities = append(activities, ActivityPublic{
			Account:     d.Account,
			Type:        d.Type,
			Amount:      d.Amount,
			RequestSeq:  d.RequestSeq,
			OperationID: d.OperationID,
			Timestamp:   d.Timestamp,
		})
	}
	return activities, resultMap.PaginationToken, nil
}

func (s *Services) GetVaultInfo(ctx context.Context) (*VaultInfoPublic, *types.Error) {
	pool, err := s.Vault.Pool(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("error while loading the pool")
		return nil, types.NewInternalServiceError(err)
	}
	participants, err := s.DbClient.CountParticipants(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("error while counting participants")
		return nil, types.NewInternalServiceError(err)
	}
	queueLength, err := s.Vault.QueueLength(ctx)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("error while reading the unstake queue length")
		return nil, types.NewInternalServiceError(err)
	}
	return &VaultInfoPublic{
		TotalValueLocked:   pool.TotalValueLocked().Dec(),
		Participants:       participants,
		UnstakeQueueLength: queueLength,
		HarvestedPrizePool: pool.HarvestedPrizePool.Dec(),
	}, nil
}

// RefreshPoolMetrics exports the pool accumulators and the queue length.
func (s *Services) RefreshPoolMetrics(ctx context.Context) error {
	pool, err := s.Vault.Pool(ctx)
	if err != nil {
		return err
	}
	queueLength, err := s.Vault.QueueLength(ctx)
	if err != nil {
		return err
	}
	metrics.RecordPoolAmount("treasury_balance", pool.TreasuryBalance)
	metrics.RecordPoolAmount("staked_amount", pool.StakedAmount)
	metrics.RecordPoolAmount("pending_stake_pool", pool.PendingStakePool)
	metrics.RecordPoolAmount("total_unstaked_amount", pool.TotalUnstakedAmount)
	metrics.RecordPoolAmount("total_principal", pool.TotalPrincipal)
	metrics.RecordPoolAmount("harvested_prize_pool", pool.HarvestedPrizePool)
	metrics.RecordUnstakeQueueLength(queueLength)
	return nil
}

func (s *Services) recordPoolMetrics(ctx context.Context) {
	if err := s.RefreshPoolMetrics(ctx); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("failed to refresh pool metrics")
	}
}
