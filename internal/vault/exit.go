package vault

import (
	"context"
	"fmt"

	"github.com/holiman/uint256"
)

// RequestExit undelegates amount on behalf of the caller and queues it for
// payout. The caller's claimable balance is reduced immediately, the queue
// tracks the pending fulfillment.
func (v *Vault) RequestExit(ctx context.Context, amount *uint256.Int) (*UnstakeRequest, error) {
	account, err := CallerFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if amount == nil || amount.IsZero() {
		return nil, fmt.Errorf("%w: exit amount must be positive", ErrInvalidAmount)
	}
	amount = amount.Clone()
	ctx, operationID := ensureOperationID(ctx)

	var queued UnstakeRequest
	err = v.store.RunTx(ctx, func(ctx context.Context) error {
		pool, err := v.initializedPool(ctx)
		if err != nil {
			return err
		}

		balance, err := v.store.Balance(ctx, account)
		if err != nil {
			return err
		}
		if balance.Lt(amount) {
			return fmt.Errorf(
				"%w: account %s holds %s, requested %s",
				ErrInsufficientBalance, account, balance.Dec(), amount.Dec(),
			)
		}
		if pool.StakedAmount.Lt(amount) {
			return fmt.Errorf(
				"%w: requested %s but only %s is delegated",
				ErrInsufficientBalance, amount.Dec(), pool.StakedAmount.Dec(),
			)
		}
		unstaked, overflow := new(uint256.Int).AddOverflow(pool.TotalUnstakedAmount, amount)
		if overflow {
			return fmt.Errorf("%w: exit of %s overflows the unstaked total", ErrInvalidAmount, amount.Dec())
		}

		if err := v.staking.Undelegate(ctx, pool.Validator, amount); err != nil {
			return fmt.Errorf("%w: undelegating %s from %s: %v", ErrStake, amount.Dec(), pool.Validator, err)
		}

		pool.StakedAmount = new(uint256.Int).Sub(pool.StakedAmount, amount)
		pool.TotalUnstakedAmount = unstaked
		if err := (ledger{v.store}).debit(ctx, account, amount); err != nil {
			return err
		}
		if err := v.store.SavePool(ctx, pool); err != nil {
			return err
		}
		queued, err = v.store.PushRequest(ctx, UnstakeRequest{
			Account:     account,
			Amount:      amount,
			RequestedAt: v.now(),
		})
		if err != nil {
			return err
		}
		return v.store.RecordActivity(ctx, Activity{
			Account:     account,
			Type:        UnstakeActivity,
			Amount:      amount,
			RequestSeq:  queued.Seq,
			OperationID: operationID,
			Timestamp:   queued.RequestedAt,
		})
	})
	if err != nil {
		return nil, err
	}

	v.publish(ctx, UnstakeRequestedEvent, account, amount, operationID)
	return &queued, nil
}
