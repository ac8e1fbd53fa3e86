package node

import (
	"context"
	"fmt"
	"net/http"

	"github.com/holiman/uint256"

	baseclient "github.com/babylonchain/staking-vault-service/internal/clients/base"
	"github.com/babylonchain/staking-vault-service/internal/config"
	"github.com/babylonchain/staking-vault-service/internal/types"
	"github.com/babylonchain/staking-vault-service/internal/vault"
)

const IdempotencyKeyHeader = "Idempotency-Key"

type DelegationRequest struct {
	Validator string `json:"validator"`
	Amount    string `json:"amount"`
}

type TransferRequest struct {
	To     string `json:"to"`
	Amount string `json:"amount"`
}

// DeployResponse is returned once the node has accepted the deploy.
type DeployResponse struct {
	DeployHash string `json:"deploy_hash"`
}

type BalanceResponse struct {
	Balance string `json:"balance"`
}

// NodeClient talks to the sidecar holding the vault purse. It is both the
// staking backend and the payment service of the vault.
type NodeClient struct {
	config        *config.NodeConfig
	httpClient    *http.Client
	defaultHeader map[string]string
}

var (
	_ vault.StakingBackend = (*NodeClient)(nil)
	_ vault.PaymentService = (*NodeClient)(nil)
)

func NewNodeClient(config *config.NodeConfig) *NodeClient {
	httpClient := &http.Client{}
	defaultHeader := map[string]string{
		"Accept":        "application/json",
		"Authorization": fmt.Sprintf("Bearer %s", config.ApiToken),
	}
	return &NodeClient{
		config,
		httpClient,
		defaultHeader,
	}
}

// Necessary for the BaseClient interface
func (c *NodeClient) GetBaseURL() string {
	return c.config.Url
}

func (c *NodeClient) GetDefaultRequestTimeout() int {
	return c.config.Timeout
}

func (c *NodeClient) GetHttpClient() *http.Client {
	return c.httpClient
}

func (c *NodeClient) GetName() string {
	return "node"
}

// headers adds the operation id of ctx as idempotency key so that a retried
// operation is not executed twice by the node.
func (c *NodeClient) headers(ctx context.Context) map[string]string {
	headers := make(map[string]string, len(c.defaultHeader)+1)
	for k, v := range c.defaultHeader {
		headers[k] = v
	}
	if id := vault.OperationIDFromContext(ctx); id != "" {
		headers[IdempotencyKeyHeader] = id
	}
	return headers
}

func (c *NodeClient) Delegate(ctx context.Context, validator vault.ValidatorID, amount *uint256.Int) error {
	return c.delegation(ctx, "/delegate", validator, amount)
}

func (c *NodeClient) Undelegate(ctx context.Context, validator vault.ValidatorID, amount *uint256.Int) error {
	return c.delegation(ctx, "/undelegate", validator, amount)
}

func (c *NodeClient) delegation(
	ctx context.Context, path string, validator vault.ValidatorID, amount *uint256.Int,
) error {
	opts := &baseclient.BaseClientOptions{
		Path:    path,
		Headers: c.headers(ctx),
	}
	resp, err := baseclient.SendRequest[DelegationRequest, DeployResponse](
		ctx, c, http.MethodPost, opts,
		&DelegationRequest{Validator: validator.String(), Amount: amount.Dec()},
	)
	if err != nil {
		return err
	}
	if resp.DeployHash == "" {
		return types.NewInternalServiceError(fmt.Errorf("node accepted %s without a deploy hash", path))
	}
	return nil
}

func (c *NodeClient) Pay(ctx context.Context, to vault.Account, amount *uint256.Int) error {
	opts := &baseclient.BaseClientOptions{
		Path:    "/transfer",
		Headers: c.headers(ctx),
	}
	resp, err := baseclient.SendRequest[TransferRequest, DeployResponse](
		ctx, c, http.MethodPost, opts,
		&TransferRequest{To: to.String(), Amount: amount.Dec()},
	)
	if err != nil {
		return err
	}
	if resp.DeployHash == "" {
		return types.NewInternalServiceError(fmt.Errorf("node accepted transfer without a deploy hash"))
	}
	return nil
}

func (c *NodeClient) LiquidHoldings(ctx context.Context) (*uint256.Int, error) {
	opts := &baseclient.BaseClientOptions{
		Path:    "/balance",
		Headers: c.defaultHeader,
	}
	resp, err := baseclient.SendRequest[any, BalanceResponse](
		ctx, c, http.MethodGet, opts, nil,
	)
	if err != nil {
		return nil, err
	}
	balance, parseErr := vault.ParseAmount(resp.Balance)
	if parseErr != nil {
		return nil, types.NewInternalServiceError(fmt.Errorf("node returned balance %q: %w", resp.Balance, parseErr))
	}
	return balance, nil
}
