package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/babylonchain/staking-vault-service/internal/db/model"
)

func (db *Database) SaveUnpublishedEvent(ctx context.Context, eventType, messageBody string) error {
	client := db.collection(model.UnpublishedEventCollection)

	_, err := client.InsertOne(ctx, model.NewUnpublishedEventDocument(eventType, messageBody, db.now().UnixMilli()))
	if err != nil {
		return err
	}

	return nil
}

// FindUnpublishedEvents returns the stored events oldest first.
func (db *Database) FindUnpublishedEvents(ctx context.Context) ([]model.UnpublishedEventDocument, error) {
	client := db.collection(model.UnpublishedEventCollection)
	filter := bson.M{}
	options := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "_id", Value: 1}})

	cursor, err := client.Find(ctx, filter, options)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []model.UnpublishedEventDocument
	if err = cursor.All(ctx, &events); err != nil {
		return nil, err
	}

	return events, nil
}

func (db *Database) DeleteUnpublishedEvent(ctx context.Context, id interface{}) error {
	client := db.collection(model.UnpublishedEventCollection)
	filter := bson.M{"_id": id}
	_, err := client.DeleteOne(ctx, filter)
	return err
}
