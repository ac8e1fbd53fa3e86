package node_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babylonchain/staking-vault-service/internal/clients/node"
	"github.com/babylonchain/staking-vault-service/internal/config"
	"github.com/babylonchain/staking-vault-service/internal/types"
	"github.com/babylonchain/staking-vault-service/internal/vault"
)

const testToken = "test-node-token"

type recordedRequest struct {
	Method         string
	Path           string
	Authorization  string
	IdempotencyKey string
	Body           map[string]string
}

func setupNode(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*node.NodeClient, *[]recordedRequest) {
	var requests []recordedRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recordedRequest{
			Method:         r.Method,
			Path:           r.URL.Path,
			Authorization:  r.Header.Get("Authorization"),
			IdempotencyKey: r.Header.Get(node.IdempotencyKeyHeader),
		}
		if r.Body != nil && r.Method == http.MethodPost {
			_ = json.NewDecoder(r.Body).Decode(&rec.Body)
		}
		requests = append(requests, rec)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client := node.NewNodeClient(&config.NodeConfig{
		Url:      server.URL,
		Timeout:  1000,
		ApiToken: testToken,
	})
	return client, &requests
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestDelegateSendsAmountAndIdempotencyKey(t *testing.T) {
	client, requests := setupNode(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, node.DeployResponse{DeployHash: "abc"})
	})

	ctx := vault.WithOperationID(context.Background(), "op-1")
	err := client.Delegate(ctx, "validator-1", uint256.NewInt(50_000_000_000))
	require.NoError(t, err)

	require.Len(t, *requests, 1)
	req := (*requests)[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/delegate", req.Path)
	assert.Equal(t, "Bearer "+testToken, req.Authorization)
	assert.Equal(t, "op-1", req.IdempotencyKey)
	assert.Equal(t, "validator-1", req.Body["validator"])
	assert.Equal(t, "50000000000", req.Body["amount"])
}

func TestUndelegateUsesUndelegatePath(t *testing.T) {
	client, requests := setupNode(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, node.DeployResponse{DeployHash: "abc"})
	})

	require.NoError(t, client.Undelegate(context.Background(), "validator-1", uint256.NewInt(7)))
	require.Len(t, *requests, 1)
	assert.Equal(t, "/undelegate", (*requests)[0].Path)
	assert.Empty(t, (*requests)[0].IdempotencyKey)
}

func TestPayTransfersToAccount(t *testing.T) {
	client, requests := setupNode(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, node.DeployResponse{DeployHash: "abc"})
	})

	ctx := vault.WithOperationID(context.Background(), "payout-3")
	require.NoError(t, client.Pay(ctx, "01aa", uint256.NewInt(120)))

	req := (*requests)[0]
	assert.Equal(t, "/transfer", req.Path)
	assert.Equal(t, "payout-3", req.IdempotencyKey)
	assert.Equal(t, "01aa", req.Body["to"])
	assert.Equal(t, "120", req.Body["amount"])
}

func TestMissingDeployHashIsAnError(t *testing.T) {
	client, _ := setupNode(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, node.DeployResponse{})
	})

	err := client.Pay(context.Background(), "01aa", uint256.NewInt(1))
	assert.Error(t, err)
}

func TestNodeErrorsAreMapped(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantStatus int
		wantCode   types.ErrorCode
	}{
		{"server error", http.StatusBadGateway, http.StatusBadGateway, types.InternalServiceError},
		{"client error", http.StatusConflict, http.StatusConflict, types.BadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := setupNode(t, func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, tt.status, map[string]string{"error": "nope"})
			})

			err := client.Delegate(context.Background(), "validator-1", uint256.NewInt(1))
			require.Error(t, err)
			var apiErr *types.Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
			assert.Equal(t, tt.wantCode, apiErr.ErrorCode)
		})
	}
}

func TestRequestTimeout(t *testing.T) {
	client, _ := setupNode(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	})

	_, err := client.LiquidHoldings(context.Background())
	require.Error(t, err)
	var apiErr *types.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, types.RequestTimeout, apiErr.ErrorCode)
}

func TestLiquidHoldings(t *testing.T) {
	client, requests := setupNode(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, node.BalanceResponse{Balance: "115792089237316195423570985008687907853269984665640564039457584007913129639935"})
	})

	holdings, err := client.LiquidHoldings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, new(uint256.Int).SetAllOne(), holdings)
	assert.Equal(t, http.MethodGet, (*requests)[0].Method)
	assert.Equal(t, "/balance", (*requests)[0].Path)
}

func TestLiquidHoldingsRejectsMalformedBalance(t *testing.T) {
	client, _ := setupNode(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, node.BalanceResponse{Balance: "-5"})
	})

	_, err := client.LiquidHoldings(context.Background())
	assert.Error(t, err)
}
