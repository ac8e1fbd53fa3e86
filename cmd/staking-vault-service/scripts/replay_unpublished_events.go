package scripts

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/babylonchain/staking-vault-service/internal/db"
)

// MessagePublisher sends an encoded vault event to the broker.
type MessagePublisher interface {
	PublishMessage(ctx context.Context, eventType string, body []byte) error
}

// ReplayUnpublishedEvents republishes the events the broker rejected earlier,
// oldest first, and deletes each one once it is accepted.
func ReplayUnpublishedEvents(ctx context.Context, publisher MessagePublisher, db db.DBClient) (err error) {
	unpublishedEvents, err := db.FindUnpublishedEvents(ctx)
	if err != nil {
		return errors.New("failed to retrieve unpublished events")
	}

	eventCount := len(unpublishedEvents)
	fmt.Printf("There are %d unpublished events.\n", eventCount)
	if eventCount == 0 {
		return errors.New("no unpublished events to replay")
	}

	for _, event := range unpublishedEvents {
		if err := publisher.PublishMessage(ctx, event.EventType, []byte(event.MessageBody)); err != nil {
			log.Error().Err(err).Str("event_type", event.EventType).Msg("failed to republish event")
			return fmt.Errorf("failed to publish %s event: %w", event.EventType, err)
		}

		if err := db.DeleteUnpublishedEvent(ctx, event.ID); err != nil {
			return errors.New("failed to delete unpublished event")
		}
	}

	log.Info().Int("events", eventCount).Msg("Replay of unpublished events completed.")
	return
}
