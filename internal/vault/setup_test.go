package vault_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/staking-vault-service/internal/vault"
)

const (
	testValidator = vault.ValidatorID("01d949a3a1963db686607a00862f79b76ceb185fc134d0aeedb686f1c151f4ae54")
	alice         = vault.Account("0203e3dca4a2d6b4a0c4a26c0b1f8a4c31d8a7f2e0f4f9eb1dd0f1a2b3c4d5e6f7a8")
	bob           = vault.Account("01b1c2d3e4f5a6b7c8d9e0f1a2b3c4d5e6f7a8b9c0d1e2f3a4b5c6d7e8f9a0b1c2")
	carol         = vault.Account("01aa00bb11cc22dd33ee44ff5566778899aabbccddeeff00112233445566778899")
)

// fakeChain stands in for the network: it tracks the vault purse and records
// every backend call in order.
type fakeChain struct {
	mu         sync.Mutex
	holdings   *uint256.Int
	delegated  *uint256.Int
	payouts    []payout
	failPayTo  map[vault.Account]error
	failStake  error
	paidTotal  *uint256.Int
	operations []string
}

type payout struct {
	To          vault.Account
	Amount      *uint256.Int
	OperationID string
}

func newFakeChain() *fakeChain {
	return &fakeChain{
		holdings:  new(uint256.Int),
		delegated: new(uint256.Int),
		paidTotal: new(uint256.Int),
		failPayTo: make(map[vault.Account]error),
	}
}

func (c *fakeChain) receive(amount uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.holdings.Add(c.holdings, uint256.NewInt(amount))
}

// unbond makes undelegated value liquid.
func (c *fakeChain) unbond(amount uint64) {
	c.receive(amount)
}

func (c *fakeChain) setHoldings(amount uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.holdings = uint256.NewInt(amount)
}

func (c *fakeChain) Delegate(ctx context.Context, validator vault.ValidatorID, amount *uint256.Int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failStake != nil {
		return c.failStake
	}
	if c.holdings.Lt(amount) {
		return fmt.Errorf("purse holds %s, cannot delegate %s", c.holdings.Dec(), amount.Dec())
	}
	c.holdings.Sub(c.holdings, amount)
	c.delegated.Add(c.delegated, amount)
	c.operations = append(c.operations, "delegate:"+amount.Dec())
	return nil
}

func (c *fakeChain) Undelegate(ctx context.Context, validator vault.ValidatorID, amount *uint256.Int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failStake != nil {
		return c.failStake
	}
	if c.delegated.Lt(amount) {
		return fmt.Errorf("only %s delegated", c.delegated.Dec())
	}
	c.delegated.Sub(c.delegated, amount)
	c.operations = append(c.operations, "undelegate:"+amount.Dec())
	return nil
}

func (c *fakeChain) Pay(ctx context.Context, to vault.Account, amount *uint256.Int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.failPayTo[to]; err != nil {
		return err
	}
	if c.holdings.Lt(amount) {
		return fmt.Errorf("purse holds %s, cannot pay %s", c.holdings.Dec(), amount.Dec())
	}
	c.holdings.Sub(c.holdings, amount)
	c.paidTotal.Add(c.paidTotal, amount)
	c.payouts = append(c.payouts, payout{To: to, Amount: amount.Clone(), OperationID: vault.OperationIDFromContext(ctx)})
	return nil
}

func (c *fakeChain) LiquidHoldings(ctx context.Context) (*uint256.Int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.holdings.Clone(), nil
}

type testVault struct {
	*vault.Vault
	store *vault.MemStore
	chain *fakeChain
}

func setupTestVault(t *testing.T, threshold uint64) *testVault {
	t.Helper()
	store := vault.NewMemStore()
	chain := newFakeChain()
	v := vault.New(store, chain, chain, nil, uint256.NewInt(threshold))
	require.NoError(t, v.Init(context.Background(), testValidator))
	return &testVault{Vault: v, store: store, chain: chain}
}

// deposit sends amount to the vault purse and then calls Deposit, the way a
// payable call arrives on chain.
func (tv *testVault) deposit(t *testing.T, account vault.Account, amount uint64) *vault.DepositResult {
	t.Helper()
	tv.chain.receive(amount)
	result, err := tv.Deposit(callerCtx(account, amount))
	require.NoError(t, err)
	return result
}

func (tv *testVault) exit(t *testing.T, account vault.Account, amount uint64) *vault.UnstakeRequest {
	t.Helper()
	request, err := tv.RequestExit(vault.WithCaller(context.Background(), account), uint256.NewInt(amount))
	require.NoError(t, err)
	return request
}

func (tv *testVault) pool(t *testing.T) *vault.PoolState {
	t.Helper()
	pool, err := tv.Pool(context.Background())
	require.NoError(t, err)
	return pool
}

func (tv *testVault) balance(t *testing.T, account vault.Account) uint64 {
	t.Helper()
	balance, err := tv.Balance(context.Background(), account)
	require.NoError(t, err)
	return balance.Uint64()
}

func (tv *testVault) queueLength(t *testing.T) uint64 {
	t.Helper()
	length, err := tv.QueueLength(context.Background())
	require.NoError(t, err)
	return length
}

func callerCtx(account vault.Account, value uint64) context.Context {
	ctx := vault.WithCaller(context.Background(), account)
	return vault.WithAttachedValue(ctx, uint256.NewInt(value))
}

func u(v uint64) *uint256.Int {
	return uint256.NewInt(v)
}
