package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/holiman/uint256"

	"github.com/babylonchain/staking-vault-service/internal/types"
	"github.com/babylonchain/staking-vault-service/internal/utils"
	"github.com/babylonchain/staking-vault-service/internal/vault"
)

type AmountRequestPayload struct {
	// Amount in motes as a decimal string.
	Amount string `json:"amount"`
}

type InitRequestPayload struct {
	Validator string `json:"validator"`
}

func decodeBody[T any](request *http.Request) (*T, *types.Error) {
	var payload T
	decoder := json.NewDecoder(request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&payload); err != nil {
		return nil, types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "invalid request payload")
	}
	return &payload, nil
}

func parseAmountBody(request *http.Request) (*uint256.Int, *types.Error) {
	payload, err := decodeBody[AmountRequestPayload](request)
	if err != nil {
		return nil, err
	}
	amount, parseErr := vault.ParseAmount(payload.Amount)
	if parseErr != nil {
		return nil, types.NewError(http.StatusBadRequest, types.InvalidAmount, parseErr)
	}
	return amount, nil
}

// parsePublicKeyQuery returns the normalised public key in the query
// parameter queryName.
func parsePublicKeyQuery(request *http.Request, queryName string) (string, *types.Error) {
	value := request.URL.Query().Get(queryName)
	if value == "" {
		return "", types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, queryName+" is required")
	}
	if err := utils.ValidatePublicKeyHex(value); err != nil {
		return "", types.NewErrorWithMsg(
			http.StatusBadRequest, types.ValidationError, "invalid "+queryName+": "+err.Error(),
		)
	}
	return utils.NormalizePublicKeyHex(value), nil
}

func callerFromRequest(request *http.Request) (string, *types.Error) {
	account, err := vault.CallerFromContext(request.Context())
	if err != nil {
		return "", types.NewError(http.StatusUnauthorized, types.MissingCaller, err)
	}
	return account.String(), nil
}
