package services

import (
	"context"
	"sync"

	"github.com/babylonchain/staking-vault-service/internal/config"
	"github.com/babylonchain/staking-vault-service/internal/db"
	"github.com/babylonchain/staking-vault-service/internal/vault"
)

// Service layer contains the business logic and is used to interact with
// the database and other external clients (if any).
type Services struct {
	DbClient db.DBClient
	Vault    *vault.Vault
	cfg      *config.Config
	// The vault operations are not safe for concurrent use, every mutating
	// operation holds writeMu.
	writeMu sync.Mutex
}

func New(
	ctx context.Context, cfg *config.Config, dbClient db.DBClient,
	staking vault.StakingBackend, payments vault.PaymentService, events vault.EventSink,
) (*Services, error) {
	v := vault.New(dbClient, staking, payments, events, cfg.Vault.GetMinDelegation())
	return &Services{
		DbClient: dbClient,
		Vault:    v,
		cfg:      cfg,
	}, nil
}

// DoHealthCheck checks the health of the services by ping the database.
func (s *Services) DoHealthCheck(ctx context.Context) error {
	return s.DbClient.Ping(ctx)
}
