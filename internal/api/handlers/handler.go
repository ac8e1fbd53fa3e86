package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/babylonchain/staking-vault-service/internal/config"
	"github.com/babylonchain/staking-vault-service/internal/services"
)

type Handler struct {
	config   *config.Config
	services *services.Services
}

type paginationResponse struct {
	NextKey string `json:"next_key"`
}

// PublicResponse is the envelope of every successful response. Pagination is
// present on list endpoints only, an empty next_key marks the last page.
type PublicResponse[T any] struct {
	Data       T                   `json:"data"`
	Pagination *paginationResponse `json:"pagination,omitempty"`
}

type Result struct {
	Data   interface{}
	Status int
}

func NewResult[T any](data T) *Result {
	return NewResultWithStatus(data, http.StatusOK)
}

func NewResultWithPagination[T any](data T, pageToken string) *Result {
	res := &PublicResponse[T]{Data: data, Pagination: &paginationResponse{NextKey: pageToken}}
	return &Result{Data: res, Status: http.StatusOK}
}

// NewResultWithStatus is used by operations that only queue work, such as an
// exit request answered with 202.
func NewResultWithStatus[T any](data T, status int) *Result {
	return &Result{Data: &PublicResponse[T]{Data: data}, Status: status}
}

func New(
	ctx context.Context, cfg *config.Config, services *services.Services,
) (*Handler, error) {
	if services == nil {
		return nil, fmt.Errorf("handlers require the vault services")
	}
	return &Handler{
		config:   cfg,
		services: services,
	}, nil
}
