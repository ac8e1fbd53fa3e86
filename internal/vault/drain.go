package vault

import (
	"context"
	"fmt"

	"github.com/holiman/uint256"
)

// Drain pays queued requests strictly from the head while liquidity lasts and
// returns how many were settled. It stops at the first request that cannot be
// paid in full, later requests are never paid out of turn.
//
// Each settlement commits on its own. When a payout fails Drain returns the
// requests settled so far together with the error, the failing request stays
// at the head of the queue.
func (v *Vault) Drain(ctx context.Context) (uint64, error) {
	pool, err := v.initializedPool(ctx)
	if err != nil {
		return 0, err
	}
	holdings, err := v.payments.LiquidHoldings(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: reading liquid holdings: %v", ErrTransfer, err)
	}
	// The treasury is waiting to be delegated and is not available for payouts.
	available := subSaturating(holdings, pool.TreasuryBalance)

	var settled uint64
	for {
		paid, err := v.settleHead(ctx, available)
		if err != nil {
			return settled, err
		}
		if paid == nil {
			return settled, nil
		}
		available.Sub(available, paid.Amount)
		settled++
		v.publish(ctx, WithdrawalPaidEvent, paid.Account, paid.Amount, payoutOperationID(paid.Seq))
	}
}

// settleHead pays the head request when available covers it. It returns nil
// when the queue is empty or the head is blocked.
func (v *Vault) settleHead(ctx context.Context, available *uint256.Int) (*UnstakeRequest, error) {
	var paid *UnstakeRequest
	err := v.store.RunTx(ctx, func(ctx context.Context) error {
		head, err := v.store.PeekRequest(ctx)
		if err != nil {
			return err
		}
		if head == nil || available.Lt(head.Amount) {
			return nil
		}

		pool, err := v.store.LoadPool(ctx)
		if err != nil {
			return err
		}
		if pool.TotalUnstakedAmount.Lt(head.Amount) {
			return fmt.Errorf("pool accounting inconsistent: unstaked total %s is below queued request %d of %s",
				pool.TotalUnstakedAmount.Dec(), head.Seq, head.Amount.Dec())
		}

		operationID := payoutOperationID(head.Seq)
		if err := v.payments.Pay(WithOperationID(ctx, operationID), head.Account, head.Amount); err != nil {
			return fmt.Errorf("%w: paying request %d of %s to %s: %v",
				ErrTransfer, head.Seq, head.Amount.Dec(), head.Account, err)
		}

		pool.TotalUnstakedAmount = new(uint256.Int).Sub(pool.TotalUnstakedAmount, head.Amount)
		if err := v.store.SavePool(ctx, pool); err != nil {
			return err
		}
		if err := v.store.PopRequest(ctx, head.Seq); err != nil {
			return err
		}
		if err := v.store.RecordActivity(ctx, Activity{
			Account:     head.Account,
			Type:        WithdrawalActivity,
			Amount:      head.Amount,
			RequestSeq:  head.Seq,
			OperationID: operationID,
			Timestamp:   v.now(),
		}); err != nil {
			return err
		}
		paid = head
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paid, nil
}
