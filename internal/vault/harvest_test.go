package vault_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/staking-vault-service/internal/vault"
	"github.com/babylonchain/staking-vault-service/internal/vault/mocks"
)

func TestHarvestMeasuresRewards(t *testing.T) {
	tv := setupTestVault(t, 500)
	tv.deposit(t, alice, 600)
	tv.deposit(t, bob, 100)

	result, err := tv.Harvest(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Updated)
	assert.True(t, result.HarvestedPrizePool.IsZero())

	// Pending value counts as a liability twice, through the principal and
	// through the pending pool: 700 + 100 against 100 + 600 in assets.
	tv.chain.receive(35)
	result, err = tv.Harvest(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Updated)
	assert.True(t, tv.pool(t).HarvestedPrizePool.IsZero())

	// Rewards past the 100 gap become surplus.
	tv.chain.receive(100)
	result, err = tv.Harvest(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Updated)
	assert.Equal(t, u(35), result.HarvestedPrizePool)
	assert.Equal(t, u(35), tv.pool(t).HarvestedPrizePool)
}

func TestHarvestIsIdempotent(t *testing.T) {
	tv := setupTestVault(t, 500)
	tv.deposit(t, alice, 600)
	tv.chain.receive(20)

	first, err := tv.Harvest(context.Background())
	require.NoError(t, err)
	second, err := tv.Harvest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first.HarvestedPrizePool, second.HarvestedPrizePool)
	assert.Equal(t, u(20), tv.pool(t).HarvestedPrizePool)
}

func TestHarvestOverwritesInsteadOfAccumulating(t *testing.T) {
	tv := setupTestVault(t, 500)
	tv.deposit(t, alice, 600)

	tv.chain.receive(20)
	_, err := tv.Harvest(context.Background())
	require.NoError(t, err)
	tv.chain.receive(5)
	result, err := tv.Harvest(context.Background())
	require.NoError(t, err)
	assert.Equal(t, u(25), result.HarvestedPrizePool)
}

func TestHarvestWithoutSurplusKeepsSnapshot(t *testing.T) {
	tv := setupTestVault(t, 500)
	tv.deposit(t, alice, 600)
	tv.chain.receive(10)
	_, err := tv.Harvest(context.Background())
	require.NoError(t, err)

	// Undelegated value is counted both in principal and in the unstaked
	// total until it is paid out, so liabilities now exceed assets.
	tv.exit(t, alice, 200)
	result, err := tv.Harvest(context.Background())
	require.NoError(t, err)
	assert.False(t, result.Updated)
	assert.Equal(t, u(10), result.HarvestedPrizePool)
	assert.Equal(t, u(10), tv.pool(t).HarvestedPrizePool)
}

func TestHarvestDoesNotMoveFunds(t *testing.T) {
	tv := setupTestVault(t, 500)
	tv.deposit(t, alice, 600)
	tv.chain.receive(10)
	operations := len(tv.chain.operations)
	before := tv.pool(t)

	_, err := tv.Harvest(context.Background())
	require.NoError(t, err)

	after := tv.pool(t)
	assert.Len(t, tv.chain.operations, operations)
	assert.Empty(t, tv.chain.payouts)
	assert.Equal(t, before.StakedAmount, after.StakedAmount)
	assert.Equal(t, before.TreasuryBalance, after.TreasuryBalance)
	assert.Equal(t, uint64(600), tv.balance(t, alice))
}

func TestHarvestPublishesOnlyWhenUpdated(t *testing.T) {
	chain := newFakeChain()
	events := mocks.NewEventSink(t)
	v := vault.New(vault.NewMemStore(), chain, chain, events, u(500))
	require.NoError(t, v.Init(context.Background(), testValidator))

	_, err := v.Harvest(context.Background())
	require.NoError(t, err)

	chain.receive(7)
	events.On("Publish", mock.Anything, mock.MatchedBy(func(e vault.Event) bool {
		return e.Type == vault.RewardsHarvestedEvent && e.Amount.Eq(u(7)) && e.Account == ""
	})).Once()
	_, err = v.Harvest(context.Background())
	require.NoError(t, err)
}

func TestHarvestShouldFailBeforeInit(t *testing.T) {
	chain := newFakeChain()
	v := vault.New(vault.NewMemStore(), chain, chain, nil, u(500))

	_, err := v.Harvest(context.Background())
	assert.ErrorIs(t, err, vault.ErrUninitialized)
}
