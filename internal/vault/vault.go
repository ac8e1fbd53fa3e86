package vault

import (
	"context"
	"time"

	"github.com/holiman/uint256"
)

// Vault is the accounting core of the pooled staking vault. Operations are not
// safe for concurrent use; callers serialise them.
type Vault struct {
	store         Store
	staking       StakingBackend
	payments      PaymentService
	events        EventSink
	minDelegation *uint256.Int
	now           func() time.Time
}

// New builds a vault. minDelegation is fixed for the lifetime of the vault.
func New(
	store Store, staking StakingBackend, payments PaymentService, events EventSink,
	minDelegation *uint256.Int,
) *Vault {
	if events == nil {
		events = NopEventSink{}
	}
	if minDelegation == nil || minDelegation.IsZero() {
		minDelegation = DefaultMinDelegation
	}
	return &Vault{
		store:         store,
		staking:       staking,
		payments:      payments,
		events:        events,
		minDelegation: minDelegation.Clone(),
		now:           time.Now,
	}
}

func (v *Vault) MinDelegation() *uint256.Int {
	return v.minDelegation.Clone()
}

// Init sets the validator and zeroes every accumulator. It can only succeed once.
func (v *Vault) Init(ctx context.Context, validator ValidatorID) error {
	if validator == "" {
		return ErrInvalidValidator
	}
	return v.store.RunTx(ctx, func(ctx context.Context) error {
		pool, err := v.store.LoadPool(ctx)
		if err != nil {
			return err
		}
		if pool.Initialized {
			return ErrAlreadyInitialized
		}
		pool = NewPoolState()
		pool.Validator = validator
		pool.Initialized = true
		return v.store.SavePool(ctx, pool)
	})
}

func (v *Vault) initializedPool(ctx context.Context) (*PoolState, error) {
	pool, err := v.store.LoadPool(ctx)
	if err != nil {
		return nil, err
	}
	if !pool.Initialized {
		return nil, ErrUninitialized
	}
	return pool, nil
}

// Pool returns a copy of the pool accumulators. An uninitialized vault
// reports zero everywhere.
func (v *Vault) Pool(ctx context.Context) (*PoolState, error) {
	return v.store.LoadPool(ctx)
}

func (v *Vault) Balance(ctx context.Context, account Account) (*uint256.Int, error) {
	return v.store.Balance(ctx, account)
}

func (v *Vault) QueueLength(ctx context.Context) (uint64, error) {
	return v.store.QueueLength(ctx)
}

func (v *Vault) publish(ctx context.Context, eventType EventType, account Account, amount *uint256.Int, operationID string) {
	v.events.Publish(ctx, Event{
		Type:        eventType,
		Account:     account,
		Amount:      amount.Clone(),
		OperationID: operationID,
		Timestamp:   v.now(),
	})
}
