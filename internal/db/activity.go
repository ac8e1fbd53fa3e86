package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/babylonchain/staking-vault-service/internal/db/model"
	"github.com/babylonchain/staking-vault-service/internal/vault"
)

func (db *Database) RecordActivity(ctx context.Context, activity vault.Activity) error {
	client := db.collection(model.ActivityCollection)
	_, err := client.InsertOne(ctx, model.NewActivityDocument(activity))
	return err
}

// FindActivities returns the history of an account, newest first.
func (db *Database) FindActivities(
	ctx context.Context, account vault.Account, paginationToken string,
) (*DbResultMap[model.ActivityDocument], error) {
	client := db.collection(model.ActivityCollection)

	filter := bson.M{"account": account.String()}
	options := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}, {Key: "_id", Value: -1}}).
		SetLimit(db.cfg.MaxPaginationLimit)

	// Decode the pagination token first if it exist
	if paginationToken != "" {
		page, lastID, err := model.DecodeActivityPaginationToken(paginationToken)
		if err != nil {
			return nil, &InvalidPaginationTokenError{
				Message: "Invalid pagination token",
			}
		}
		filter = bson.M{
			"account": account.String(),
			"$or": []bson.M{
				{"timestamp": bson.M{"$lt": page.Timestamp}},
				{"timestamp": page.Timestamp, "_id": bson.M{"$lt": lastID}},
			},
		}
	}

	cursor, err := client.Find(ctx, filter, options)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var activities []model.ActivityDocument
	if err = cursor.All(ctx, &activities); err != nil {
		return nil, err
	}

	return toResultMapWithPaginationToken(db.cfg, activities, model.BuildActivityPaginationToken)
}
