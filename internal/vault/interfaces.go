package vault

import (
	"context"
	"time"

	"github.com/holiman/uint256"
)

// Store persists the vault state. RunTx executes fn so that either every
// write made through the context passed to fn becomes visible or none does.
type Store interface {
	RunTx(ctx context.Context, fn func(ctx context.Context) error) error

	LoadPool(ctx context.Context) (*PoolState, error)
	SavePool(ctx context.Context, pool *PoolState) error

	// Balance returns zero for unknown accounts.
	Balance(ctx context.Context, account Account) (*uint256.Int, error)
	SetBalance(ctx context.Context, account Account, amount *uint256.Int) error

	// PushRequest appends to the tail of the queue and returns the request
	// with its sequence number set.
	PushRequest(ctx context.Context, request UnstakeRequest) (UnstakeRequest, error)
	// PeekRequest returns the head of the queue, nil when it is empty.
	PeekRequest(ctx context.Context) (*UnstakeRequest, error)
	// PopRequest removes the head. It fails when seq is not the head.
	PopRequest(ctx context.Context, seq uint64) error
	QueueLength(ctx context.Context) (uint64, error)

	RecordActivity(ctx context.Context, activity Activity) error
}

// StakingBackend delegates and undelegates pooled value. The unbonding delay
// is owned by the backend.
type StakingBackend interface {
	Delegate(ctx context.Context, validator ValidatorID, amount *uint256.Int) error
	Undelegate(ctx context.Context, validator ValidatorID, amount *uint256.Int) error
}

type PaymentService interface {
	Pay(ctx context.Context, to Account, amount *uint256.Int) error
	// LiquidHoldings is the value currently held by the vault and free to move.
	LiquidHoldings(ctx context.Context) (*uint256.Int, error)
}

type EventType string

const (
	DepositMadeEvent      EventType = "deposit_made"
	UnstakeRequestedEvent EventType = "unstake_requested"
	WithdrawalPaidEvent   EventType = "withdrawal_paid"
	RewardsHarvestedEvent EventType = "rewards_harvested"
)

func (t EventType) ToString() string {
	return string(t)
}

// Event is an advisory notification for off-chain observers.
type Event struct {
	Type        EventType
	Account     Account
	Amount      *uint256.Int
	OperationID string
	Timestamp   time.Time
}

// EventSink receives events after the operation emitting them has committed.
// Delivery is best effort and never affects the vault state.
type EventSink interface {
	Publish(ctx context.Context, event Event)
}

type NopEventSink struct{}

func (NopEventSink) Publish(context.Context, Event) {}
