package kafka_client

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

// Handler consumes messages from one subscribed topic until ctx ends.
type Handler func(context.Context, *kafka.Consumer)

var consumerRegistry = make(map[string]Handler)

// RegisterConsumer binds a handler to a topic. Each binary registers the
// handlers it owns before calling StartConsumer.
func RegisterConsumer(topic string, handler Handler) {
	consumerRegistry[topic] = handler
}

// StartConsumer creates a consumer for cfg.Topic and runs its registered
// handler until the context is cancelled.
func StartConsumer(ctx context.Context, cfg KafkaConfig) error {
	handler, ok := consumerRegistry[cfg.Topic]
	if !ok {
		return fmt.Errorf("no handler registered for topic %s", cfg.Topic)
	}

	consumer, err := NewConsumer(cfg)
	if err != nil {
		return fmt.Errorf("initialize consumer for %s: %w", cfg.Topic, err)
	}
	defer consumer.Close()

	slog.Info("[ConsumerFactory] Starting consumer",
		slog.String("topic", cfg.Topic),
		slog.String("group_id", cfg.GroupID))
	handler(ctx, consumer)

	return nil
}
