package vault

import (
	"context"
	"fmt"

	"github.com/holiman/uint256"
)

// Harvest measures the surplus of real holdings over tracked liabilities and
// overwrites the harvested prize pool with it. The snapshot is left untouched
// when there is no surplus. No funds move.
func (v *Vault) Harvest(ctx context.Context) (*HarvestResult, error) {
	ctx, operationID := ensureOperationID(ctx)

	result := &HarvestResult{}
	err := v.store.RunTx(ctx, func(ctx context.Context) error {
		pool, err := v.initializedPool(ctx)
		if err != nil {
			return err
		}
		holdings, err := v.payments.LiquidHoldings(ctx)
		if err != nil {
			return fmt.Errorf("%w: reading liquid holdings: %v", ErrTransfer, err)
		}

		surplus, ok := computeSurplus(pool, holdings)
		if !ok {
			result.HarvestedPrizePool = pool.HarvestedPrizePool.Clone()
			return nil
		}
		pool.HarvestedPrizePool = surplus
		result.HarvestedPrizePool = surplus.Clone()
		result.Updated = true
		return v.store.SavePool(ctx, pool)
	})
	if err != nil {
		return nil, err
	}

	if result.Updated {
		v.publish(ctx, RewardsHarvestedEvent, "", result.HarvestedPrizePool, operationID)
	}
	return result, nil
}

// computeSurplus returns assets minus liabilities and whether assets exceed
// liabilities. Overflowing sums are compared on their true values: a surplus
// that does not fit in 256 bits saturates.
func computeSurplus(pool *PoolState, holdings *uint256.Int) (*uint256.Int, bool) {
	liabilities, overflowPrincipal := new(uint256.Int).AddOverflow(pool.TotalPrincipal, pool.TotalUnstakedAmount)
	liabilities, overflowPending := liabilities.AddOverflow(liabilities, pool.PendingStakePool)
	assets, overflowAssets := new(uint256.Int).AddOverflow(holdings, pool.StakedAmount)

	switch {
	case overflowPrincipal || overflowPending:
		// Liabilities past 2^256 cannot be measured against; report no surplus.
		return nil, false
	case overflowAssets:
		if assets.Cmp(liabilities) >= 0 {
			return new(uint256.Int).SetAllOne(), true
		}
		return new(uint256.Int).Sub(assets, liabilities), true
	case assets.Gt(liabilities):
		return new(uint256.Int).Sub(assets, liabilities), true
	default:
		return nil, false
	}
}
