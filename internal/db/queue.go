package db

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/babylonchain/staking-vault-service/internal/db/model"
	"github.com/babylonchain/staking-vault-service/internal/vault"
)

func (db *Database) loadQueueCursor(ctx context.Context) (*model.QueueCursorDocument, error) {
	client := db.collection(model.QueueCursorCollection)
	var cursor model.QueueCursorDocument
	err := client.FindOne(ctx, bson.M{"_id": model.UnstakeQueueCursorID}).Decode(&cursor)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return &model.QueueCursorDocument{ID: model.UnstakeQueueCursorID, Head: 1, Tail: 0}, nil
		}
		return nil, err
	}
	return &cursor, nil
}

// PushRequest assigns the next sequence number by advancing the tail of the
// cursor and inserts the request under it.
func (db *Database) PushRequest(ctx context.Context, request vault.UnstakeRequest) (vault.UnstakeRequest, error) {
	cursors := db.collection(model.QueueCursorCollection)
	var cursor model.QueueCursorDocument
	err := cursors.FindOneAndUpdate(
		ctx,
		bson.M{"_id": model.UnstakeQueueCursorID},
		bson.M{"$inc": bson.M{"tail": 1}, "$setOnInsert": bson.M{"head": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&cursor)
	if err != nil {
		return vault.UnstakeRequest{}, err
	}

	request.Seq = cursor.Tail
	request.Amount = request.Amount.Clone()
	_, err = db.collection(model.UnstakeQueueCollection).InsertOne(ctx, model.NewUnstakeRequestDocument(request))
	if err != nil {
		var writeErr mongo.WriteException
		if errors.As(err, &writeErr) {
			for _, e := range writeErr.WriteErrors {
				if mongo.IsDuplicateKeyError(e) {
					return vault.UnstakeRequest{}, &DuplicateKeyError{
						Key:     fmt.Sprint(request.Seq),
						Message: "unstake request sequence already used",
					}
				}
			}
		}
		return vault.UnstakeRequest{}, err
	}
	return request, nil
}

// PeekRequest returns the request at the head of the queue, nil when the
// queue is empty.
func (db *Database) PeekRequest(ctx context.Context) (*vault.UnstakeRequest, error) {
	cursor, err := db.loadQueueCursor(ctx)
	if err != nil {
		return nil, err
	}
	if cursor.Length() == 0 {
		return nil, nil
	}

	var document model.UnstakeRequestDocument
	err = db.collection(model.UnstakeQueueCollection).FindOne(ctx, bson.M{"_id": cursor.Head}).Decode(&document)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     fmt.Sprint(cursor.Head),
				Message: "unstake request at the head of the queue is missing",
			}
		}
		return nil, err
	}
	return document.ToUnstakeRequest()
}

// PopRequest deletes the head request and advances the head. The cursor
// update is conditional on seq being the head.
func (db *Database) PopRequest(ctx context.Context, seq uint64) error {
	result, err := db.collection(model.QueueCursorCollection).UpdateOne(
		ctx,
		bson.M{"_id": model.UnstakeQueueCursorID, "head": seq, "tail": bson.M{"$gte": seq}},
		bson.M{"$inc": bson.M{"head": 1}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return &NotFoundError{
			Key:     fmt.Sprint(seq),
			Message: "unstake request is not at the head of the queue",
		}
	}

	deleted, err := db.collection(model.UnstakeQueueCollection).DeleteOne(ctx, bson.M{"_id": seq})
	if err != nil {
		return err
	}
	if deleted.DeletedCount == 0 {
		return &NotFoundError{
			Key:     fmt.Sprint(seq),
			Message: "unstake request not found",
		}
	}
	return nil
}

func (db *Database) QueueLength(ctx context.Context) (uint64, error) {
	cursor, err := db.loadQueueCursor(ctx)
	if err != nil {
		return 0, err
	}
	return cursor.Length(), nil
}
