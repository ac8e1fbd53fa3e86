package db

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/babylonchain/staking-vault-service/internal/db/model"
	"github.com/babylonchain/staking-vault-service/internal/vault"
)

// DBClient is the persistence used by the services: the vault state plus the
// read models and the outbox of unpublished events.
type DBClient interface {
	vault.Store
	Ping(ctx context.Context) error
	FindActivities(
		ctx context.Context, account vault.Account, paginationToken string,
	) (*DbResultMap[model.ActivityDocument], error)
	CountParticipants(ctx context.Context) (uint64, error)
	SaveUnpublishedEvent(ctx context.Context, eventType, messageBody string) error
	FindUnpublishedEvents(ctx context.Context) ([]model.UnpublishedEventDocument, error)
	DeleteUnpublishedEvent(ctx context.Context, id interface{}) error
}

type DBTransactionClient interface {
	StartSession(opts ...*options.SessionOptions) (DBSession, error)
}

type DBSession interface {
	EndSession(ctx context.Context)
	WithTransaction(
		ctx context.Context, fn func(sessCtx mongo.SessionContext) (interface{}, error),
		opts ...*options.TransactionOptions,
	) (interface{}, error)
}
