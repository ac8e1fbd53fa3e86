package client

import "context"

// A common interface for queue clients regardless if it's a RabbitMQ, SQS, etc.
type QueueClient interface {
	// Publish returns once the broker has confirmed the message.
	Publish(ctx context.Context, routingKey string, body []byte) error
	IsConnectionHealthy() error
	Close() error
}
