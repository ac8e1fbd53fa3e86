package vault_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/staking-vault-service/internal/vault"
)

func TestMemStoreRollsBackFailedTransactions(t *testing.T) {
	store := vault.NewMemStore()
	ctx := context.Background()
	require.NoError(t, store.SetBalance(ctx, alice, u(10)))

	boom := errors.New("boom")
	err := store.RunTx(ctx, func(ctx context.Context) error {
		pool, err := store.LoadPool(ctx)
		require.NoError(t, err)
		pool.Initialized = true
		pool.StakedAmount = u(5)
		require.NoError(t, store.SavePool(ctx, pool))
		require.NoError(t, store.SetBalance(ctx, alice, u(0)))
		require.NoError(t, store.SetBalance(ctx, bob, u(3)))
		_, err = store.PushRequest(ctx, vault.UnstakeRequest{Account: alice, Amount: u(10), RequestedAt: time.Now()})
		require.NoError(t, err)
		require.NoError(t, store.RecordActivity(ctx, vault.Activity{Account: alice, Type: vault.UnstakeActivity, Amount: u(10)}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	pool, err := store.LoadPool(ctx)
	require.NoError(t, err)
	assert.False(t, pool.Initialized)
	assert.True(t, pool.StakedAmount.IsZero())
	balance, err := store.Balance(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, u(10), balance)
	length, err := store.QueueLength(ctx)
	require.NoError(t, err)
	assert.Zero(t, length)
	assert.Empty(t, store.Activities(ctx, alice))
	assert.Equal(t, uint64(1), store.CountParticipants(ctx))

	// The sequence counter is rolled back too.
	request, err := store.PushRequest(ctx, vault.UnstakeRequest{Account: bob, Amount: u(1)})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), request.Seq)
}

func TestMemStoreRejectsNestedTransactions(t *testing.T) {
	store := vault.NewMemStore()
	err := store.RunTx(context.Background(), func(ctx context.Context) error {
		return store.RunTx(ctx, func(context.Context) error { return nil })
	})
	assert.Error(t, err)
}

func TestMemStoreReturnsCopies(t *testing.T) {
	store := vault.NewMemStore()
	ctx := context.Background()
	amount := u(10)
	require.NoError(t, store.SetBalance(ctx, alice, amount))
	amount.SetUint64(0)

	balance, err := store.Balance(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, u(10), balance)
	balance.SetUint64(1)

	balance, err = store.Balance(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, u(10), balance)

	pool, err := store.LoadPool(ctx)
	require.NoError(t, err)
	pool.TotalPrincipal.SetUint64(99)
	pool, err = store.LoadPool(ctx)
	require.NoError(t, err)
	assert.True(t, pool.TotalPrincipal.IsZero())
}

func TestMemStoreCountsOnlyFundedAccounts(t *testing.T) {
	store := vault.NewMemStore()
	ctx := context.Background()
	require.NoError(t, store.SetBalance(ctx, alice, u(1)))
	require.NoError(t, store.SetBalance(ctx, bob, u(2)))
	require.NoError(t, store.SetBalance(ctx, bob, u(0)))

	assert.Equal(t, uint64(1), store.CountParticipants(ctx))
	balance, err := store.Balance(ctx, carol)
	require.NoError(t, err)
	assert.True(t, balance.IsZero())
}
