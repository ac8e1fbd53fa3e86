package vault_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/staking-vault-service/internal/vault"
	"github.com/babylonchain/staking-vault-service/internal/vault/mocks"
)

func TestRequestExitQueuesUndelegatedAmount(t *testing.T) {
	tv := setupTestVault(t, 500)
	tv.deposit(t, alice, 600)

	request := tv.exit(t, alice, 200)
	assert.Equal(t, uint64(1), request.Seq)
	assert.Equal(t, alice, request.Account)
	assert.Equal(t, u(200), request.Amount)

	pool := tv.pool(t)
	assert.Equal(t, u(400), pool.StakedAmount)
	assert.Equal(t, u(200), pool.TotalUnstakedAmount)
	assert.Equal(t, u(600), pool.TotalPrincipal)
	assert.Equal(t, uint64(1), tv.queueLength(t))
	assert.Equal(t, uint64(400), tv.balance(t, alice))
	assert.Equal(t, []string{"delegate:600", "undelegate:200"}, tv.chain.operations)
}

func TestRequestExitSequenceIsIncreasing(t *testing.T) {
	tv := setupTestVault(t, 500)
	tv.deposit(t, alice, 600)
	tv.deposit(t, bob, 600)

	first := tv.exit(t, bob, 100)
	second := tv.exit(t, alice, 100)
	third := tv.exit(t, bob, 50)
	assert.Less(t, first.Seq, second.Seq)
	assert.Less(t, second.Seq, third.Seq)
	assert.Equal(t, uint64(3), tv.queueLength(t))
}

func TestRequestExitOverBalanceLeavesStateUnchanged(t *testing.T) {
	tv := setupTestVault(t, 500)
	tv.deposit(t, alice, 600)
	tv.deposit(t, bob, 100)
	before := tv.pool(t)
	operations := len(tv.chain.operations)

	_, err := tv.RequestExit(vault.WithCaller(context.Background(), bob), u(101))
	assert.ErrorIs(t, err, vault.ErrInsufficientBalance)

	assert.Equal(t, before, tv.pool(t))
	assert.Equal(t, uint64(100), tv.balance(t, bob))
	assert.Equal(t, uint64(0), tv.queueLength(t))
	assert.Len(t, tv.chain.operations, operations, "backend must not be called")
}

func TestRequestExitShouldFailForUnknownAccount(t *testing.T) {
	tv := setupTestVault(t, 500)
	tv.deposit(t, alice, 600)

	_, err := tv.RequestExit(vault.WithCaller(context.Background(), carol), u(1))
	assert.ErrorIs(t, err, vault.ErrInsufficientBalance)
}

func TestRequestExitShouldRejectZeroAmount(t *testing.T) {
	tv := setupTestVault(t, 500)
	tv.deposit(t, alice, 600)

	_, err := tv.RequestExit(vault.WithCaller(context.Background(), alice), u(0))
	assert.ErrorIs(t, err, vault.ErrInvalidAmount)
}

func TestRequestExitShouldFailWhenValueIsNotDelegated(t *testing.T) {
	tv := setupTestVault(t, 500)
	// Below the threshold the deposit still sits in the pending pool.
	tv.deposit(t, alice, 100)

	_, err := tv.RequestExit(vault.WithCaller(context.Background(), alice), u(50))
	assert.ErrorIs(t, err, vault.ErrInsufficientBalance)
	assert.Equal(t, uint64(100), tv.balance(t, alice))
}

func TestRequestExitUndelegationFailureLeavesStateUnchanged(t *testing.T) {
	store := vault.NewMemStore()
	staking := mocks.NewStakingBackend(t)
	chain := newFakeChain()
	chain.receive(600)
	v := vault.New(store, staking, chain, nil, u(500))
	ctx := context.Background()
	require.NoError(t, v.Init(ctx, testValidator))

	staking.On("Delegate", mock.Anything, testValidator, u(600)).Return(nil).Once()
	_, err := v.Deposit(callerCtx(alice, 600))
	require.NoError(t, err)
	before, err := v.Pool(ctx)
	require.NoError(t, err)

	staking.On("Undelegate", mock.Anything, testValidator, u(200)).
		Return(errors.New("validator jailed")).Once()
	_, err = v.RequestExit(vault.WithCaller(ctx, alice), u(200))
	assert.ErrorIs(t, err, vault.ErrStake)

	after, err := v.Pool(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	length, err := v.QueueLength(ctx)
	require.NoError(t, err)
	assert.Zero(t, length)
	balance, err := v.Balance(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, u(600), balance)
}

func TestRequestExitForwardsOperationID(t *testing.T) {
	staking := mocks.NewStakingBackend(t)
	chain := newFakeChain()
	chain.receive(500)
	v := vault.New(vault.NewMemStore(), staking, chain, nil, u(500))
	require.NoError(t, v.Init(context.Background(), testValidator))

	staking.On("Delegate", mock.Anything, testValidator, u(500)).Return(nil).Once()
	_, err := v.Deposit(callerCtx(alice, 500))
	require.NoError(t, err)

	staking.On("Undelegate", mock.MatchedBy(func(ctx context.Context) bool {
		return vault.OperationIDFromContext(ctx) == "exit-7"
	}), testValidator, u(100)).Return(nil).Once()

	ctx := vault.WithOperationID(vault.WithCaller(context.Background(), alice), "exit-7")
	_, err = v.RequestExit(ctx, u(100))
	require.NoError(t, err)
}
