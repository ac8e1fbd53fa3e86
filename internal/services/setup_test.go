package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/staking-vault-service/internal/config"
	"github.com/babylonchain/staking-vault-service/internal/db"
	"github.com/babylonchain/staking-vault-service/internal/db/model"
	"github.com/babylonchain/staking-vault-service/internal/services"
	"github.com/babylonchain/staking-vault-service/internal/vault"
	"github.com/babylonchain/staking-vault-service/internal/vault/mocks"
)

const (
	testValidator = "01d949a3a1963db686607a00862f79b76ceb185fc134d0aeedb686f1c151f4ae54"
	alice         = "0203e3dca4a2d6b4a0c4a26c0b1f8a4c31d8a7f2e0f4f9eb1dd0f1a2b3c4d5e6f7a8"
	bob           = "01b1c2d3e4f5a6b7c8d9e0f1a2b3c4d5e6f7a8b9c0d1e2f3a4b5c6d7e8f9a0b1c2"
)

// memDB serves the read models and the outbox from a MemStore.
type memDB struct {
	*vault.MemStore
	pingErr     error
	unpublished []model.UnpublishedEventDocument
}

var _ db.DBClient = (*memDB)(nil)

func (m *memDB) Ping(ctx context.Context) error {
	return m.pingErr
}

func (m *memDB) FindActivities(
	ctx context.Context, account vault.Account, paginationToken string,
) (*db.DbResultMap[model.ActivityDocument], error) {
	if paginationToken != "" {
		return nil, &db.InvalidPaginationTokenError{Message: "Invalid pagination token"}
	}
	activities := m.MemStore.Activities(ctx, account)
	docs := make([]model.ActivityDocument, 0, len(activities))
	for i := len(activities) - 1; i >= 0; i-- {
		docs = append(docs, *model.NewActivityDocument(activities[i]))
	}
	return &db.DbResultMap[model.ActivityDocument]{Data: docs}, nil
}

func (m *memDB) CountParticipants(ctx context.Context) (uint64, error) {
	return m.MemStore.CountParticipants(ctx), nil
}

func (m *memDB) SaveUnpublishedEvent(ctx context.Context, eventType, messageBody string) error {
	m.unpublished = append(m.unpublished, model.UnpublishedEventDocument{EventType: eventType, MessageBody: messageBody})
	return nil
}

func (m *memDB) FindUnpublishedEvents(ctx context.Context) ([]model.UnpublishedEventDocument, error) {
	return m.unpublished, nil
}

func (m *memDB) DeleteUnpublishedEvent(ctx context.Context, id interface{}) error {
	return errors.New("not supported")
}

type testServices struct {
	*services.Services
	db       *memDB
	staking  *mocks.StakingBackend
	payments *mocks.PaymentService
}

// setupServices builds services with a delegation threshold of 100 motes.
func setupServices(t *testing.T) *testServices {
	t.Helper()
	cfg := &config.Config{Vault: config.VaultConfig{MinDelegation: "100"}}
	memdb := &memDB{MemStore: vault.NewMemStore()}
	staking := mocks.NewStakingBackend(t)
	payments := mocks.NewPaymentService(t)

	s, err := services.New(context.Background(), cfg, memdb, staking, payments, vault.NopEventSink{})
	require.NoError(t, err)
	return &testServices{Services: s, db: memdb, staking: staking, payments: payments}
}

// expectHoldings makes the next read of the purse return amount.
func (s *testServices) expectHoldings(amount uint64) {
	s.payments.On("LiquidHoldings", mock.Anything).Return(uint256.NewInt(amount), nil).Once()
}

func setupInitializedServices(t *testing.T) *testServices {
	t.Helper()
	s := setupServices(t)
	_, err := s.InitVault(context.Background(), testValidator)
	require.Nil(t, err)
	return s
}
