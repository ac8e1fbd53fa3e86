package vault

import (
	"context"
	"fmt"

	"github.com/holiman/uint256"
)

// ledger applies claim changes to depositor balances and to the pool
// accumulators that track them. Writes go through the store, the pool is
// saved by the caller.
type ledger struct {
	store Store
}

// credit adds amount to the account's claimable balance, the treasury and the
// total principal. Nothing is written when any of them would overflow.
func (l ledger) credit(ctx context.Context, pool *PoolState, account Account, amount *uint256.Int) error {
	balance, err := l.store.Balance(ctx, account)
	if err != nil {
		return err
	}
	newBalance, overflowBalance := new(uint256.Int).AddOverflow(balance, amount)
	treasury, overflowTreasury := new(uint256.Int).AddOverflow(pool.TreasuryBalance, amount)
	principal, overflowPrincipal := new(uint256.Int).AddOverflow(pool.TotalPrincipal, amount)
	if overflowBalance || overflowTreasury || overflowPrincipal {
		return fmt.Errorf("%w: deposit of %s overflows the pool accounting", ErrInvalidAmount, amount.Dec())
	}

	if err := l.store.SetBalance(ctx, account, newBalance); err != nil {
		return err
	}
	pool.TreasuryBalance = treasury
	pool.TotalPrincipal = principal
	return nil
}

// debit removes amount from the account's claimable balance.
func (l ledger) debit(ctx context.Context, account Account, amount *uint256.Int) error {
	balance, err := l.store.Balance(ctx, account)
	if err != nil {
		return err
	}
	if balance.Lt(amount) {
		return fmt.Errorf(
			"%w: account %s holds %s, requested %s",
			ErrInsufficientBalance, account, balance.Dec(), amount.Dec(),
		)
	}
	return l.store.SetBalance(ctx, account, new(uint256.Int).Sub(balance, amount))
}
