package vault

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/holiman/uint256"
)

type contextKey string

const (
	callerKey        = contextKey("vaultCaller")
	attachedValueKey = contextKey("vaultAttachedValue")
	operationIDKey   = contextKey("vaultOperationID")
)

// WithCaller attaches the identity of the account invoking a vault operation.
func WithCaller(ctx context.Context, account Account) context.Context {
	return context.WithValue(ctx, callerKey, account)
}

func CallerFromContext(ctx context.Context) (Account, error) {
	account, ok := ctx.Value(callerKey).(Account)
	if !ok || account == "" {
		return "", ErrMissingCaller
	}
	return account, nil
}

// WithAttachedValue attaches the value sent along with a payable call.
func WithAttachedValue(ctx context.Context, amount *uint256.Int) context.Context {
	return context.WithValue(ctx, attachedValueKey, amount.Clone())
}

// AttachedValueFromContext returns the attached value, zero when none was sent.
func AttachedValueFromContext(ctx context.Context) *uint256.Int {
	amount, ok := ctx.Value(attachedValueKey).(*uint256.Int)
	if !ok || amount == nil {
		return new(uint256.Int)
	}
	return amount.Clone()
}

// WithOperationID sets the idempotency key forwarded to the staking backend
// and the payment service.
func WithOperationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, operationIDKey, id)
}

func OperationIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(operationIDKey).(string)
	return id
}

// ensureOperationID keeps an operation id set by the caller and generates one otherwise.
func ensureOperationID(ctx context.Context) (context.Context, string) {
	if id := OperationIDFromContext(ctx); id != "" {
		return ctx, id
	}
	id := uuid.NewString()
	return WithOperationID(ctx, id), id
}

// payoutOperationID is derived from the request so that a retried settlement
// reuses the key of the first attempt.
func payoutOperationID(seq uint64) string {
	return fmt.Sprintf("payout-%d", seq)
}
