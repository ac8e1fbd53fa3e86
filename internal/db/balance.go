package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/holiman/uint256"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/babylonchain/staking-vault-service/internal/db/model"
	"github.com/babylonchain/staking-vault-service/internal/vault"
)

// Balance returns zero for accounts without a balance document.
func (db *Database) Balance(ctx context.Context, account vault.Account) (*uint256.Int, error) {
	client := db.collection(model.BalanceCollection)
	var document model.BalanceDocument
	err := client.FindOne(ctx, bson.M{"_id": account.String()}).Decode(&document)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return new(uint256.Int), nil
		}
		return nil, err
	}
	balance, err := uint256.FromDecimal(document.Balance)
	if err != nil {
		return nil, fmt.Errorf("corrupted balance of %s: %w", account, err)
	}
	return balance, nil
}

// SetBalance stores the claimable balance of account. A zero balance removes
// the document so that only funded accounts are counted as participants.
func (db *Database) SetBalance(ctx context.Context, account vault.Account, amount *uint256.Int) error {
	client := db.collection(model.BalanceCollection)
	filter := bson.M{"_id": account.String()}
	if amount.IsZero() {
		_, err := client.DeleteOne(ctx, filter)
		return err
	}
	document := model.BalanceDocument{
		Account:   account.String(),
		Balance:   amount.Dec(),
		UpdatedAt: db.now().UnixMilli(),
	}
	_, err := client.ReplaceOne(ctx, filter, document, options.Replace().SetUpsert(true))
	return err
}

func (db *Database) CountParticipants(ctx context.Context) (uint64, error) {
	client := db.collection(model.BalanceCollection)
	count, err := client.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, err
	}
	return uint64(count), nil
}
