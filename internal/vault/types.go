package vault

import (
	"time"

	"github.com/holiman/uint256"
)

// Account identifies a depositor. It is the hex encoded public key of the caller.
type Account string

func (a Account) String() string {
	return string(a)
}

// ValidatorID is the opaque identity of the delegation target.
type ValidatorID string

func (v ValidatorID) String() string {
	return string(v)
}

// PoolState holds the pool level accumulators of the vault.
type PoolState struct {
	Validator   ValidatorID
	Initialized bool

	// Liquid value held by the vault that has not been delegated yet.
	TreasuryBalance *uint256.Int
	// Value currently delegated to the validator.
	StakedAmount *uint256.Int
	// Deposited value still below the delegation threshold.
	PendingStakePool *uint256.Int
	// Undelegated value awaiting payout. Always equals the sum of queued requests.
	TotalUnstakedAmount *uint256.Int
	// Cumulative principal ever deposited. Never decreases.
	TotalPrincipal *uint256.Int
	// Last computed surplus snapshot.
	HarvestedPrizePool *uint256.Int
}

// NewPoolState returns an uninitialized pool with every accumulator at zero.
func NewPoolState() *PoolState {
	return &PoolState{
		TreasuryBalance:     new(uint256.Int),
		StakedAmount:        new(uint256.Int),
		PendingStakePool:    new(uint256.Int),
		TotalUnstakedAmount: new(uint256.Int),
		TotalPrincipal:      new(uint256.Int),
		HarvestedPrizePool:  new(uint256.Int),
	}
}

func (p *PoolState) Clone() *PoolState {
	return &PoolState{
		Validator:           p.Validator,
		Initialized:         p.Initialized,
		TreasuryBalance:     p.TreasuryBalance.Clone(),
		StakedAmount:        p.StakedAmount.Clone(),
		PendingStakePool:    p.PendingStakePool.Clone(),
		TotalUnstakedAmount: p.TotalUnstakedAmount.Clone(),
		TotalPrincipal:      p.TotalPrincipal.Clone(),
		HarvestedPrizePool:  p.HarvestedPrizePool.Clone(),
	}
}

// TotalValueLocked is everything the pool still holds on behalf of depositors.
func (p *PoolState) TotalValueLocked() *uint256.Int {
	tvl := new(uint256.Int).Add(p.StakedAmount, p.PendingStakePool)
	return tvl.Add(tvl, p.TotalUnstakedAmount)
}

// UnstakeRequest is a queued withdrawal. Seq is assigned by the store on push
// and is strictly increasing in arrival order.
type UnstakeRequest struct {
	Seq         uint64
	Account     Account
	Amount      *uint256.Int
	RequestedAt time.Time
}

type ActivityType string

const (
	DepositActivity    ActivityType = "deposit"
	UnstakeActivity    ActivityType = "unstake"
	WithdrawalActivity ActivityType = "withdrawal"
)

func (t ActivityType) ToString() string {
	return string(t)
}

// Activity is an entry of an account's history. It is written in the same
// transaction as the state change it describes.
type Activity struct {
	Account     Account
	Type        ActivityType
	Amount      *uint256.Int
	RequestSeq  uint64
	OperationID string
	Timestamp   time.Time
}

type DepositResult struct {
	Account Account
	Amount  *uint256.Int
	// Delegated is the amount sent to the validator by this deposit, zero when
	// the pending pool stayed below the threshold.
	Delegated *uint256.Int
}

type HarvestResult struct {
	HarvestedPrizePool *uint256.Int
	Updated            bool
}
