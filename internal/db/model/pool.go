package model

import (
	"github.com/babylonchain/staking-vault-service/internal/vault"
)

// PoolDocumentID is the id of the single pool document.
const PoolDocumentID = "vault"

type PoolDocument struct {
	ID                  string `bson:"_id"`
	Validator           string `bson:"validator"`
	Initialized         bool   `bson:"initialized"`
	TreasuryBalance     string `bson:"treasury_balance"`
	StakedAmount        string `bson:"staked_amount"`
	PendingStakePool    string `bson:"pending_stake_pool"`
	TotalUnstakedAmount string `bson:"total_unstaked_amount"`
	TotalPrincipal      string `bson:"total_principal"`
	HarvestedPrizePool  string `bson:"harvested_prize_pool"`
	UpdatedAt           int64  `bson:"updated_at"`
}

func NewPoolDocument(pool *vault.PoolState, updatedAt int64) *PoolDocument {
	return &PoolDocument{
		ID:                  PoolDocumentID,
		Validator:           pool.Validator.String(),
		Initialized:         pool.Initialized,
		TreasuryBalance:     encodeAmount(pool.TreasuryBalance),
		StakedAmount:        encodeAmount(pool.StakedAmount),
		PendingStakePool:    encodeAmount(pool.PendingStakePool),
		TotalUnstakedAmount: encodeAmount(pool.TotalUnstakedAmount),
		TotalPrincipal:      encodeAmount(pool.TotalPrincipal),
		HarvestedPrizePool:  encodeAmount(pool.HarvestedPrizePool),
		UpdatedAt:           updatedAt,
	}
}

func (d *PoolDocument) ToPoolState() (*vault.PoolState, error) {
	pool := vault.NewPoolState()
	pool.Validator = vault.ValidatorID(d.Validator)
	pool.Initialized = d.Initialized

	var err error
	if pool.TreasuryBalance, err = decodeAmount("treasury_balance", d.TreasuryBalance); err != nil {
		return nil, err
	}
	if pool.StakedAmount, err = decodeAmount("staked_amount", d.StakedAmount); err != nil {
		return nil, err
	}
	if pool.PendingStakePool, err = decodeAmount("pending_stake_pool", d.PendingStakePool); err != nil {
		return nil, err
	}
	if pool.TotalUnstakedAmount, err = decodeAmount("total_unstaked_amount", d.TotalUnstakedAmount); err != nil {
		return nil, err
	}
	if pool.TotalPrincipal, err = decodeAmount("total_principal", d.TotalPrincipal); err != nil {
		return nil, err
	}
	if pool.HarvestedPrizePool, err = decodeAmount("harvested_prize_pool", d.HarvestedPrizePool); err != nil {
		return nil, err
	}
	return pool, nil
}
