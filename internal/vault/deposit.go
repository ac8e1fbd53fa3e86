package vault

import (
	"context"
	"fmt"

	"github.com/holiman/uint256"
)

// Deposit credits the value attached to ctx to the caller. Once the pending
// pool reaches the minimum delegation it is delegated as a whole. The attached
// value must already sit in the purse on top of the undelegated treasury.
func (v *Vault) Deposit(ctx context.Context) (*DepositResult, error) {
	account, err := CallerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	amount := AttachedValueFromContext(ctx)
	if amount.IsZero() {
		return nil, fmt.Errorf("%w: deposit must carry a positive value", ErrInvalidAmount)
	}
	ctx, operationID := ensureOperationID(ctx)

	result := &DepositResult{Account: account, Amount: amount, Delegated: new(uint256.Int)}
	err = v.store.RunTx(ctx, func(ctx context.Context) error {
		pool, err := v.initializedPool(ctx)
		if err != nil {
			return err
		}

		pending, overflow := new(uint256.Int).AddOverflow(pool.PendingStakePool, amount)
		if overflow {
			return fmt.Errorf("%w: deposit of %s overflows the pending pool", ErrInvalidAmount, amount.Dec())
		}
		if err := v.checkFunded(ctx, pool, amount); err != nil {
			return err
		}
		if err := (ledger{v.store}).credit(ctx, pool, account, amount); err != nil {
			return err
		}

		if pending.Cmp(v.minDelegation) >= 0 {
			staked, overflow := new(uint256.Int).AddOverflow(pool.StakedAmount, pending)
			if overflow || pool.TreasuryBalance.Lt(pending) {
				return fmt.Errorf("pool accounting inconsistent: cannot move %s from treasury %s to stake %s",
					pending.Dec(), pool.TreasuryBalance.Dec(), pool.StakedAmount.Dec())
			}
			if err := v.staking.Delegate(ctx, pool.Validator, pending); err != nil {
				return fmt.Errorf("%w: delegating %s to %s: %v", ErrStake, pending.Dec(), pool.Validator, err)
			}
			pool.StakedAmount = staked
			pool.TreasuryBalance = new(uint256.Int).Sub(pool.TreasuryBalance, pending)
			pool.PendingStakePool = new(uint256.Int)
			result.Delegated = pending
		} else {
			pool.PendingStakePool = pending
		}

		if err := v.store.SavePool(ctx, pool); err != nil {
			return err
		}
		return v.store.RecordActivity(ctx, Activity{
			Account:     account,
			Type:        DepositActivity,
			Amount:      amount,
			OperationID: operationID,
			Timestamp:   v.now(),
		})
	})
	if err != nil {
		return nil, err
	}

	v.publish(ctx, DepositMadeEvent, account, amount, operationID)
	return result, nil
}

// checkFunded fails unless liquid holdings cover the treasury plus amount.
func (v *Vault) checkFunded(ctx context.Context, pool *PoolState, amount *uint256.Int) error {
	required, overflow := new(uint256.Int).AddOverflow(pool.TreasuryBalance, amount)
	if overflow {
		return fmt.Errorf("%w: deposit of %s overflows the treasury", ErrInvalidAmount, amount.Dec())
	}
	holdings, err := v.payments.LiquidHoldings(ctx)
	if err != nil {
		return fmt.Errorf("%w: reading liquid holdings: %v", ErrTransfer, err)
	}
	if holdings.Lt(required) {
		return fmt.Errorf("%w: purse holds %s, treasury plus deposit needs %s",
			ErrUnfundedDeposit, holdings.Dec(), required.Dec())
	}
	return nil
}
