package kafka_client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/feedsight/feedsight/internal/utils"
)

// ErrMalformedMessage marks a message whose value failed to decode. The raw
// message is still returned so the caller can commit past the poison record.
var ErrMalformedMessage = errors.New("malformed message payload")

// MessageIterator reads one topic and decodes every value into T, retrying
// transient broker errors between reads.
type MessageIterator[T any] struct {
	ctx      context.Context
	consumer *kafka.Consumer
}

func NewMessageIterator[T any](ctx context.Context, consumer *kafka.Consumer) *MessageIterator[T] {
	return &MessageIterator[T]{
		ctx:      ctx,
		consumer: consumer,
	}
}

// Next blocks until a message arrives and decodes it. On ErrMalformedMessage
// the raw message is returned alongside the error.
func (it *MessageIterator[T]) Next() (*kafka.Message, T, error) {
	var decoded T
	if it.consumer == nil {
		return nil, decoded, errors.New("[MessageIterator] Kafka consumer has not been initialized")
	}

	for attempt := 1; attempt <= MAX_RETRIES; attempt++ {
		select {
		case <-it.ctx.Done():
			slog.Warn("[MessageIterator] Context cancelled, stopping iterator")
			return nil, decoded, it.ctx.Err()
		default:
		}

		msg, err := it.consumer.ReadMessage(-1)
		if err != nil {
			if kafkaErr, ok := err.(kafka.Error); ok && kafkaErr.Code() == kafka.ErrAllBrokersDown {
				slog.Error("[MessageIterator] All Kafka brokers are down. Aborting")
				return nil, decoded, err
			}
			slog.Warn("[MessageIterator] Failed to read message, retrying...",
				slog.Int("attempt", attempt),
				slog.Int("max_retries", MAX_RETRIES),
				slog.String("error", err.Error()))
			time.Sleep(RETRY_DELAY)
			continue
		}

		if err := utils.DeserializeFromJSON(msg.Value, &decoded); err != nil {
			return msg, decoded, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
		}
		return msg, decoded, nil
	}
	return nil, decoded, fmt.Errorf("failed to read message after %d retries", MAX_RETRIES)
}
