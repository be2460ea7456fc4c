package events

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	"github.com/tutorlane/marketplace-service/internal/utils"
)

// Publisher emits domain events onto a single topic. Publishing is best
// effort: failures are logged and never surfaced to the caller, so a broker
// outage cannot fail a request. A nil inner publisher disables publishing.
type Publisher struct {
	inner  message.Publisher
	topic  string
	logger utils.Logger
}

func NewPublisher(inner message.Publisher, topic string, logger utils.Logger) *Publisher {
	return &Publisher{
		inner:  inner,
		topic:  topic,
		logger: logger,
	}
}

// NewKafkaPublisher builds the Kafka-backed message publisher used in
// production. Returns nil when no brokers are configured.
func NewKafkaPublisher(brokers []string, logger *slog.Logger) (message.Publisher, error) {
	if len(brokers) == 0 {
		return nil, nil
	}

	return kafka.NewPublisher(
		kafka.PublisherConfig{
			Brokers:   brokers,
			Marshaler: kafka.DefaultMarshaler{},
		},
		watermill.NewSlogLogger(logger),
	)
}

// Publish serializes the payload and emits it with the event type in the
// message metadata.
func (p *Publisher) Publish(ctx context.Context, eventType string, payload interface{}) {
	if p == nil || p.inner == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		p.logger.Error("failed to marshal event payload", "event_type", eventType, "error", err)
		return
	}

	msg := message.NewMessage(uuid.NewString(), data)
	msg.Metadata.Set(MetadataEventType, eventType)
	msg.SetContext(ctx)

	if err := p.inner.Publish(p.topic, msg); err != nil {
		p.logger.Error("failed to publish event", "event_type", eventType, "error", err)
	}
}

// Close shuts the inner publisher down.
func (p *Publisher) Close() error {
	if p == nil || p.inner == nil {
		return nil
	}
	return p.inner.Close()
}
