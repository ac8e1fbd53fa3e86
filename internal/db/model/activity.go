package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/babylonchain/staking-vault-service/internal/vault"
)

type ActivityDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Account     string             `bson:"account"`
	Type        string             `bson:"type"`
	Amount      string             `bson:"amount"`
	RequestSeq  uint64             `bson:"request_seq,omitempty"`
	OperationID string             `bson:"operation_id"`
	Timestamp   int64              `bson:"timestamp"`
}

type ActivityPagination struct {
	Timestamp int64  `json:"timestamp"`
	ID        string `json:"id"`
}

func NewActivityDocument(activity vault.Activity) *ActivityDocument {
	return &ActivityDocument{
		Account:     activity.Account.String(),
		Type:        activity.Type.ToString(),
		Amount:      encodeAmount(activity.Amount),
		RequestSeq:  activity.RequestSeq,
		OperationID: activity.OperationID,
		Timestamp:   activity.Timestamp.UnixMilli(),
	}
}

func (d *ActivityDocument) ToActivity() (*vault.Activity, error) {
	amount, err := decodeAmount("amount", d.Amount)
	if err != nil {
		return nil, err
	}
	return &vault.Activity{
		Account:     vault.Account(d.Account),
		Type:        vault.ActivityType(d.Type),
		Amount:      amount,
		RequestSeq:  d.RequestSeq,
		OperationID: d.OperationID,
		Timestamp:   unixMilli(d.Timestamp),
	}, nil
}

func BuildActivityPaginationToken(d ActivityDocument) (string, error) {
	page := &ActivityPagination{
		Timestamp: d.Timestamp,
		ID:        d.ID.Hex(),
	}
	return EncodePageToken(page)
}

func DecodeActivityPaginationToken(token string) (*ActivityPagination, primitive.ObjectID, error) {
	page, err := DecodePageToken[ActivityPagination](token)
	if err != nil {
		return nil, primitive.NilObjectID, err
	}
	id, err := primitive.ObjectIDFromHex(page.ID)
	if err != nil {
		return nil, primitive.NilObjectID, err
	}
	return page, id, nil
}

func unixMilli(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}
