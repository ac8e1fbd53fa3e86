package db

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/babylonchain/staking-vault-service/internal/db/model"
	"github.com/babylonchain/staking-vault-service/internal/vault"
)

// LoadPool returns the pool accumulators. Before the pool document is first
// written every accumulator reads as zero.
func (db *Database) LoadPool(ctx context.Context) (*vault.PoolState, error) {
	client := db.collection(model.PoolCollection)
	var document model.PoolDocument
	err := client.FindOne(ctx, bson.M{"_id": model.PoolDocumentID}).Decode(&document)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return vault.NewPoolState(), nil
		}
		return nil, err
	}
	return document.ToPoolState()
}

func (db *Database) SavePool(ctx context.Context, pool *vault.PoolState) error {
	client := db.collection(model.PoolCollection)
	document := model.NewPoolDocument(pool, db.now().UnixMilli())
	_, err := client.ReplaceOne(
		ctx, bson.M{"_id": model.PoolDocumentID}, document, options.Replace().SetUpsert(true),
	)
	return err
}
