package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/staking-vault-service/internal/api"
	"github.com/babylonchain/staking-vault-service/internal/config"
	"github.com/babylonchain/staking-vault-service/internal/db"
	"github.com/babylonchain/staking-vault-service/internal/db/model"
	"github.com/babylonchain/staking-vault-service/internal/services"
	"github.com/babylonchain/staking-vault-service/internal/vault"
)

const (
	testAdminSecret   = "test-admin-secret-0123456789abcdef"
	testSidecarSecret = "test-sidecar-secret-0123456789abcd"
	testValidator     = "01d949a3a1963db686607a00862f79b76ceb185fc134d0aeedb686f1c151f4ae54"
	alice             = "0203e3dca4a2d6b4a0c4a26c0b1f8a4c31d8a7f2e0f4f9eb1dd0f1a2b3c4d5e6f7a8"
	bob               = "01b1c2d3e4f5a6b7c8d9e0f1a2b3c4d5e6f7a8b9c0d1e2f3a4b5c6d7e8f9a0b1c2"
)

type memDB struct {
	*vault.MemStore
}

func (m *memDB) Ping(ctx context.Context) error { return nil }

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
	return nil
}

func (m *memDB) FindUnpublishedEvents(ctx context.Context) ([]model.UnpublishedEventDocument, error) {
	return nil, nil
}

func (m *memDB) DeleteUnpublishedEvent(ctx context.Context, id interface{}) error {
	return nil
}

// fakeNode keeps the purse of the vault in memory.
type fakeNode struct {
	mu       sync.Mutex
	holdings *uint256.Int
	failPay  bool
}

func (n *fakeNode) Delegate(ctx context.Context, validator vault.ValidatorID, amount *uint256.Int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.holdings.Sub(n.holdings, amount)
	return nil
}

func (n *fakeNode) Undelegate(ctx context.Context, validator vault.ValidatorID, amount *uint256.Int) error {
	return nil
}

func (n *fakeNode) Pay(ctx context.Context, to vault.Account, amount *uint256.Int) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.failPay {
		return errors.New("purse locked by node 10.0.0.7")
	}
	n.holdings.Sub(n.holdings, amount)
	return nil
}

func (n *fakeNode) LiquidHoldings(ctx context.Context) (*uint256.Int, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.holdings.Clone(), nil
}

func (n *fakeNode) receive(amount uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.holdings.Add(n.holdings, uint256.NewInt(amount))
}

type testServer struct {
	server *httptest.Server
	node   *fakeNode
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Host:             "127.0.0.1",
			AllowedOrigins:   []string{"*"},
			LogLevel:         "error",
			MaxContentLength: 4096,
		},
		Vault:     config.VaultConfig{MinDelegation: "100"},
		Admin:     config.AdminConfig{Secret: testAdminSecret},
		Sidecar:   config.SidecarConfig{Secret: testSidecarSecret},
		RateLimit: config.RateLimitConfig{RequestsPerMinute: 6000, Burst: 1000},
	}
}

func setupTestServer(t *testing.T, cfg *config.Config) *testServer {
	t.Helper()
	if cfg == nil {
		cfg = testConfig()
	}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	node := &fakeNode{holdings: new(uint256.Int)}
	svc, err := services.New(ctx, cfg, &memDB{vault.NewMemStore()}, node, node, vault.NopEventSink{})
	require.NoError(t, err)
	apiServer, err := api.New(ctx, cfg, svc)
	require.NoError(t, err)

	server := httptest.NewServer(apiServer.Handler())
	t.Cleanup(server.Close)
	return &testServer{server: server, node: node}
}

type errorResponse struct {
	ErrorCode string `json:"errorCode"`
	Message   string `json:"message"`
}

func (s *testServer) do(
	t *testing.T, method, path string, headers map[string]string, body interface{},
) *http.Response {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, s.server.URL+path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

type publicResponse[T any] struct {
	Data       T `json:"data"`
	Pagination *struct {
		NextKey string `json:"next_key"`
	} `json:"pagination"`
}

func (s *testServer) initVault(t *testing.T) {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/v1/vault/init",
		map[string]string{"X-Admin-Secret": testAdminSecret}, map[string]string{"validator": testValidator})
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

// deposit sends amount to the purse and credits it to account.
func (s *testServer) deposit(t *testing.T, account string, amount uint64) *http.Response {
	t.Helper()
	s.node.receive(amount)
	return s.do(t, http.MethodPost, "/v1/vault/deposit",
		sidecar(account), map[string]string{"amount": uint256.NewInt(amount).Dec()})
}

// sidecar returns the headers the node sidecar sends when acting for caller.
func sidecar(caller string) map[string]string {
	headers := map[string]string{"X-Sidecar-Secret": testSidecarSecret}
	if caller != "" {
		headers["X-Caller"] = caller
	}
	return headers
}
