package handlers

import (
	"net/http"

	"github.com/babylonchain/staking-vault-service/internal/types"
	"github.com/babylonchain/staking-vault-service/internal/utils"
)

// InitVault @Summary Initialize the vault
// @Description Sets the validator the vault delegates to. Succeeds only once.
// @Accept json
// @Produce json
// @Param X-Admin-Secret header string true "Admin secret"
// @Param payload body InitRequestPayload true "Validator public key in hex"
// @Success 200 {object} PublicResponse[services.PoolPublic] "Pool after initialization"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Failure 401 {object} types.Error "Error: Unauthorized"
// @Failure 409 {object} types.Error "Error: Already initialized"
// @Router /v1/vault/init [post]
func (h *Handler) InitVault(request *http.Request) (*Result, *types.Error) {
	payload, err := decodeBody[InitRequestPayload](request)
	if err != nil {
		return nil, err
	}
	if validationErr := utils.ValidatePublicKeyHex(payload.Validator); validationErr != nil {
		return nil, types.NewErrorWithMsg(
			http.StatusBadRequest, types.ValidationError, "invalid validator: "+validationErr.Error(),
		)
	}
	pool, err := h.services.InitVault(request.Context(), utils.NormalizePublicKeyHex(payload.Validator))
	if err != nil {
		return nil, err
	}
	return NewResult(pool), nil
}

// Deposit @Summary Deposit into the vault
// @Description Credits an amount the sidecar saw arrive in the vault purse to the caller. The pending pool is delegated once it reaches the minimum delegation.
// @Accept json
// @Produce json
// @Param X-Sidecar-Secret header string true "Node sidecar credential"
// @Param X-Caller header string true "Caller public key in hex"
// @Param payload body AmountRequestPayload true "Amount in motes"
// @Success 200 {object} PublicResponse[services.DepositPublic] "Deposit and resulting pool"
// @Failure 400 {object} types.Error "Error: Bad Request or value not received"
// @Failure 401 {object} types.Error "Error: Unauthorized"
// @Failure 409 {object} types.Error "Error: Vault not initialized"
// @Failure 502 {object} types.Error "Error: Staking backend failure"
// @Router /v1/vault/deposit [post]
func (h *Handler) Deposit(request *http.Request) (*Result, *types.Error) {
	caller, err := callerFromRequest(request)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmountBody(request)
	if err != nil {
		return nil, err
	}
	deposit, err := h.services.Deposit(request.Context(), caller, amount)
	if err != nil {
		return nil, err
	}
	return NewResult(deposit), nil
}

// RequestExit @Summary Request an exit
// @Description Undelegates the amount from the caller's balance and queues it for payout
// @Accept json
// @Produce json
// @Param X-Sidecar-Secret header string true "Node sidecar credential"
// @Param X-Caller header string true "Caller public key in hex"
// @Param payload body AmountRequestPayload true "Amount in motes"
// @Success 202 {object} PublicResponse[services.UnstakeRequestPublic] "Queued unstake request"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Failure 401 {object} types.Error "Error: Unauthorized"
// @Failure 403 {object} types.Error "Error: Insufficient balance"
// @Failure 409 {object} types.Error "Error: Vault not initialized"
// @Failure 502 {object} types.Error "Error: Staking backend failure"
// @Router /v1/vault/exit [post]
func (h *Handler) RequestExit(request *http.Request) (*Result, *types.Error) {
	caller, err := callerFromRequest(request)
	if err != nil {
		return nil, err
	}
	amount, err := parseAmountBody(request)
	if err != nil {
		return nil, err
	}
	unstakeRequest, err := h.services.RequestExit(request.Context(), caller, amount)
	if err != nil {
		return nil, err
	}
	return NewResultWithStatus(unstakeRequest, http.StatusAccepted), nil
}

// Drain @Summary Settle queued withdrawals
// @Description Pays queued unstake requests in order while liquidity lasts
// @Produce json
// @Success 200 {object} PublicResponse[services.DrainPublic] "Number of settled requests"
// @Failure 409 {object} types.Error "Error: Vault not initialized"
// @Failure 502 {object} types.Error "Error: Transfer failure"
// @Router /v1/vault/drain [post]
func (h *Handler) Drain(request *http.Request) (*Result, *types.Error) {
	drain, err := h.services.Drain(request.Context())
	if err != nil {
		return nil, err
	}
	return NewResult(drain), nil
}

// Harvest @Summary Harvest the surplus
// @Description Records the surplus of holdings over liabilities as the harvested prize pool
// @Produce json
// @Success 200 {object} PublicResponse[services.HarvestPublic] "Harvested prize pool"
// @Failure 409 {object} types.Error "Error: Vault not initialized"
// @Router /v1/vault/harvest [post]
func (h *Handler) Harvest(request *http.Request) (*Result, *types.Error) {
	harvest, err := h.services.Harvest(request.Context())
	if err != nil {
		return nil, err
	}
	return NewResult(harvest), nil
}

// GetPool @Summary Get the pool
// @Description Returns the pool accumulators and the unstake queue length
// @Produce json
// @Success 200 {object} PublicResponse[services.PoolPublic] "Pool"
// @Router /v1/vault/pool [get]
func (h *Handler) GetPool(request *http.Request) (*Result, *types.Error) {
	pool, err := h.services.GetPool(request.Context())
	if err != nil {
		return nil, err
	}
	return NewResult(pool), nil
}

// GetBalance @Summary Get a balance
// @Description Returns the claimable balance of an account
// @Produce json
// @Param account query string true "Account public key in hex"
// @Success 200 {object} PublicResponse[services.BalancePublic] "Balance"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Router /v1/vault/balance [get]
func (h *Handler) GetBalance(request *http.Request) (*Result, *types.Error) {
	account, err := parsePublicKeyQuery(request, "account")
	if err != nil {
		return nil, err
	}
	balance, err := h.services.GetBalance(request.Context(), account)
	if err != nil {
		return nil, err
	}
	return NewResult(balance), nil
}

// GetHistory @Summary Get account history
// @Description Returns deposits, exit requests and payouts of an account, newest first
// @Produce json
// @Param account query string true "Account public key in hex"
// @Param pagination_key query string false "Pagination key to fetch the next page"
// @Success 200 {object} PublicResponse[[]services.ActivityPublic]{array} "Activities and pagination token"
// @Failure 400 {object} types.Error "Error: Bad Request"
// @Router /v1/vault/history [get]
func (h *Handler) GetHistory(request *http.Request) (*Result, *types.Error) {
	account, err := parsePublicKeyQuery(request, "account")
	if err != nil {
		return nil, err
	}
	paginationKey := request.URL.Query().Get("pagination_key")

	activities, nextKey, err := h.services.ActivitiesByAccount(request.Context(), account, paginationKey)
	if err != nil {
		return nil, err
	}
	return NewResultWithPagination(activities, nextKey), nil
}

// GetVaultInfo @Summary Get vault info
// @Description Returns total value locked, participants, queue length and the last harvested surplus
// @Produce json
// @Success 200 {object} PublicResponse[services.VaultInfoPublic] "Vault info"
// @Router /v1/vault/info [get]
func (h *Handler) GetVaultInfo(request *http.Request) (*Result, *types.Error) {
	info, err := h.services.GetVaultInfo(request.Context())
	if err != nil {
		return nil, err
	}
	return NewResult(info), nil
}
