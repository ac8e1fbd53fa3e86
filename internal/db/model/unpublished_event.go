package model

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// UnpublishedEventDocument keeps an event the broker did not accept so that
// it can be replayed later.
type UnpublishedEventDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	EventType   string             `bson:"event_type"`
	MessageBody string             `bson:"message_body"`
	CreatedAt   int64              `bson:"created_at"`
}

func NewUnpublishedEventDocument(eventType, messageBody string, createdAt int64) *UnpublishedEventDocument {
	return &UnpublishedEventDocument{
		EventType:   eventType,
		MessageBody: messageBody,
		CreatedAt:   createdAt,
	}
}
