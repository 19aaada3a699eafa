package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// WatermillPublisher publishes events over an in-process gochannel pubsub.
// This is a single-instance system; consumers subscribe within the same
// process.
type WatermillPublisher struct {
	pubsub *gochannel.GoChannel
	logger *slog.Logger
}

func NewWatermillPublisher(logger *slog.Logger) *WatermillPublisher {
	pubsub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 64},
		watermill.NewSlogLogger(logger),
	)
	return &WatermillPublisher{
		pubsub: pubsub,
		logger: logger,
	}
}

func (p *WatermillPublisher) Publish(ctx context.Context, eventType string, data interface{}) error {
	event := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Source:    Source,
		Version:   Version,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(event.ID, payload)
	msg.SetContext(ctx)
	msg.Metadata.Set("event_type", eventType)

	if err := p.pubsub.Publish(eventType, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug("event published", "event_type", eventType, "event_id", event.ID)
	return nil
}

// Subscribe returns the message stream for an event type.
func (p *WatermillPublisher) Subscribe(ctx context.Context, eventType string) (<-chan *message.Message, error) {
	return p.pubsub.Subscribe(ctx, eventType)
}

func (p *WatermillPublisher) Close() error {
	return p.pubsub.Close()
}
