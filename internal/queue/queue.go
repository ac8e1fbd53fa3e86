package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/babylonchain/staking-vault-service/internal/config"
	"github.com/babylonchain/staking-vault-service/internal/observability/metrics"
	"github.com/babylonchain/staking-vault-service/internal/queue/client"
	"github.com/babylonchain/staking-vault-service/internal/vault"
)

// UnpublishedEventStore keeps events the broker did not accept.
type UnpublishedEventStore interface {
	SaveUnpublishedEvent(ctx context.Context, eventType, messageBody string) error
}

// Publisher delivers vault events to the broker. It implements
// vault.EventSink: failures never reach the caller, the event is stored for
// replay instead.
type Publisher struct {
	client         client.QueueClient
	store          UnpublishedEventStore
	routingKey     string
	publishTimeout time.Duration
}

func New(cfg *config.QueueConfig, store UnpublishedEventStore) (*Publisher, error) {
	queueClient, err := client.NewRabbitMqClient(cfg.AmqpURI(), cfg.Exchange)
	if err != nil {
		return nil, err
	}
	return NewPublisher(queueClient, store, cfg.RoutingKey, cfg.PublishTimeout), nil
}

func NewPublisher(
	queueClient client.QueueClient, store UnpublishedEventStore, routingKey string, publishTimeout time.Duration,
) *Publisher {
	return &Publisher{
		client:         queueClient,
		store:          store,
		routingKey:     routingKey,
		publishTimeout: publishTimeout,
	}
}

func (p *Publisher) Publish(ctx context.Context, event vault.Event) {
	// The operation that emitted the event has committed, a cancelled request
	// must not drop it.
	ctx = context.WithoutCancel(ctx)
	eventType := event.Type.ToString()

	body, err := json.Marshal(client.VaultEventMessage{
		EventType:   eventType,
		Account:     event.Account.String(),
		Amount:      event.Amount.Dec(),
		OperationID: event.OperationID,
		Timestamp:   event.Timestamp.UnixMilli(),
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("event_type", eventType).Msg("failed to marshal vault event")
		return
	}

	if err := p.PublishMessage(ctx, eventType, body); err != nil {
		metrics.RecordEventPublishFailure(eventType)
		log.Ctx(ctx).Warn().Err(err).Str("event_type", eventType).
			Str("operation_id", event.OperationID).Msg("failed to publish vault event, storing it for replay")
		if saveErr := p.store.SaveUnpublishedEvent(ctx, eventType, string(body)); saveErr != nil {
			log.Ctx(ctx).Error().Err(saveErr).Str("event_type", eventType).
				Str("message_body", string(body)).Msg("failed to store unpublished vault event")
		}
	}
}

// PublishMessage sends an already encoded event.
func (p *Publisher) PublishMessage(ctx context.Context, eventType string, body []byte) error {
	ctx, cancel := context.WithTimeout(ctx, p.publishTimeout)
	defer cancel()
	return p.client.Publish(ctx, p.routingKeyFor(eventType), body)
}

func (p *Publisher) routingKeyFor(eventType string) string {
	if p.routingKey == "" {
		return eventType
	}
	return fmt.Sprintf("%s.%s", p.routingKey, eventType)
}

func (p *Publisher) IsConnectionHealthy() error {
	return p.client.IsConnectionHealthy()
}

func (p *Publisher) Close() {
	if err := p.client.Close(); err != nil {
		log.Error().Err(err).Msg("error while closing the queue client")
	}
}
