package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	"github.com/babylonchain/staking-vault-service/internal/config"
)

// Database stores the vault state in MongoDB. All vault collections live in
// one database so that a single session transaction can span them.
type Database struct {
	DbName string
	Client *mongo.Client
	cfg    config.DbConfig
	now    func() time.Time
}

type DbResultMap[T any] struct {
	Data            []T    `json:"data"`
	PaginationToken string `json:"paginationToken"`
}

func New(ctx context.Context, cfg config.DbConfig) (*Database, error) {
	// Vault transactions read their own writes across collections.
	clientOps := options.Client().
		ApplyURI(cfg.Address).
		SetReadConcern(readconcern.Majority()).
		SetWriteConcern(writeconcern.Majority())
	client, err := mongo.Connect(ctx, clientOps)
	if err != nil {
		return nil, err
	}

	return &Database{
		DbName: cfg.DbName,
		Client: client,
		cfg:    cfg,
		now:    time.Now,
	}, nil
}

func (db *Database) Ping(ctx context.Context) error {
	return db.Client.Ping(ctx, nil)
}

func (db *Database) Disconnect(ctx context.Context) error {
	return db.Client.Disconnect(ctx)
}

func (db *Database) collection(name string) *mongo.Collection {
	return db.Client.Database(db.DbName).Collection(name)
}

// toResultMapWithPaginationToken sets a token only when a full page came back,
// a short page means the caller reached the end.
func toResultMapWithPaginationToken[T any](
	cfg config.DbConfig, result []T, paginationKeyBuilder func(T) (string, error),
) (*DbResultMap[T], error) {
	page := &DbResultMap[T]{Data: result}
	if len(result) == 0 || int64(len(result)) < cfg.MaxPaginationLimit {
		return page, nil
	}
	token, err := paginationKeyBuilder(result[len(result)-1])
	if err != nil {
		return nil, err
	}
	page.PaginationToken = token
	return page, nil
}
