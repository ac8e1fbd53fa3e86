package vault

import (
	"context"
	"fmt"
	"sync"

	"github.com/holiman/uint256"
)

type memTxKey struct{}

// MemStore keeps the vault state in process memory. RunTx snapshots the state
// and restores it when fn fails.
type MemStore struct {
	mu         sync.Mutex
	pool       *PoolState
	balances   map[Account]*uint256.Int
	queue      *requestQueue
	activities []Activity
}

func NewMemStore() *MemStore {
	return &MemStore{
		pool:     NewPoolState(),
		balances: make(map[Account]*uint256.Int),
		queue:    newRequestQueue(),
	}
}

type memSnapshot struct {
	pool          *PoolState
	balances      map[Account]*uint256.Int
	queue         *requestQueue
	activityCount int
}

func (s *MemStore) snapshot() *memSnapshot {
	balances := make(map[Account]*uint256.Int, len(s.balances))
	for account, amount := range s.balances {
		balances[account] = amount.Clone()
	}
	return &memSnapshot{
		pool:          s.pool.Clone(),
		balances:      balances,
		queue:         s.queue.clone(),
		activityCount: len(s.activities),
	}
}

func (s *MemStore) restore(snap *memSnapshot) {
	s.pool = snap.pool
	s.balances = snap.balances
	s.queue = snap.queue
	s.activities = s.activities[:snap.activityCount]
}

// lock acquires the store mutex unless ctx belongs to a transaction of this
// store, which already holds it.
func (s *MemStore) lock(ctx context.Context) func() {
	if owner, _ := ctx.Value(memTxKey{}).(*MemStore); owner == s {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *MemStore) RunTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if owner, _ := ctx.Value(memTxKey{}).(*MemStore); owner == s {
		return fmt.Errorf("nested transactions are not supported")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, memTxKey{}, s)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

func (s *MemStore) LoadPool(ctx context.Context) (*PoolState, error) {
	defer s.lock(ctx)()
	return s.pool.Clone(), nil
}

func (s *MemStore) SavePool(ctx context.Context, pool *PoolState) error {
	defer s.lock(ctx)()
	s.pool = pool.Clone()
	return nil
}

func (s *MemStore) Balance(ctx context.Context, account Account) (*uint256.Int, error) {
	defer s.lock(ctx)()
	if amount, ok := s.balances[account]; ok {
		return amount.Clone(), nil
	}
	return new(uint256.Int), nil
}

func (s *MemStore) SetBalance(ctx context.Context, account Account, amount *uint256.Int) error {
	defer s.lock(ctx)()
	if amount.IsZero() {
		delete(s.balances, account)
		return nil
	}
	s.balances[account] = amount.Clone()
	return nil
}

func (s *MemStore) PushRequest(ctx context.Context, request UnstakeRequest) (UnstakeRequest, error) {
	defer s.lock(ctx)()
	return s.queue.push(request), nil
}

func (s *MemStore) PeekRequest(ctx context.Context) (*UnstakeRequest, error) {
	defer s.lock(ctx)()
	head, ok := s.queue.peek()
	if !ok {
		return nil, nil
	}
	return &head, nil
}

func (s *MemStore) PopRequest(ctx context.Context, seq uint64) error {
	defer s.lock(ctx)()
	return s.queue.pop(seq)
}

func (s *MemStore) QueueLength(ctx context.Context) (uint64, error) {
	defer s.lock(ctx)()
	return uint64(s.queue.len()), nil
}

func (s *MemStore) RecordActivity(ctx context.Context, activity Activity) error {
	defer s.lock(ctx)()
	activity.Amount = activity.Amount.Clone()
	s.activities = append(s.activities, activity)
	return nil
}

// Activities returns the history of an account, oldest first.
func (s *MemStore) Activities(ctx context.Context, account Account) []Activity {
	defer s.lock(ctx)()
	var result []Activity
	for _, activity := range s.activities {
		if activity.Account == account {
			result = append(result, activity)
		}
	}
	return result
}

// CountParticipants returns the number of accounts with a non-zero balance.
func (s *MemStore) CountParticipants(ctx context.Context) uint64 {
	defer s.lock(ctx)()
	return uint64(len(s.balances))
}
