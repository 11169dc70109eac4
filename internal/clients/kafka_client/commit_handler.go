package kafka_client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"
)

// CommitHandler commits offsets for one consumer, labelled with the owning
// component so intake and report commits are distinguishable in logs.
type CommitHandler struct {
	ctx       context.Context
	consumer  *kafka.Consumer
	component string
}

func NewCommitHandler(ctx context.Context, consumer *kafka.Consumer, component string) *CommitHandler {
	return &CommitHandler{
		ctx:       ctx,
		consumer:  consumer,
		component: component,
	}
}

func (ch *CommitHandler) Commit(msg *kafka.Message) error {
	if ch.consumer == nil {
		return errors.New("[CommitHandler] Kafka consumer has not been initialized")
	}

	for attempt := 1; attempt <= MAX_RETRIES; attempt++ {
		select {
		case <-ch.ctx.Done():
			slog.Warn("[CommitHandler] Context canceled, stopping commit",
				slog.String("component", ch.component))
			return ch.ctx.Err()
		default:
		}

		_, err := ch.consumer.CommitMessage(msg)
		if err == nil {
			slog.Debug("[CommitHandler] Committed offset",
				slog.String("component", ch.component),
				slog.Int("partition", int(msg.TopicPartition.Partition)),
				slog.Int64("offset", int64(msg.TopicPartition.Offset)))
			return nil
		}

		if kafkaErr, ok := err.(kafka.Error); ok && kafkaErr.Code() == kafka.ErrAllBrokersDown {
			slog.Error("[CommitHandler] All Kafka brokers are down. Aborting commit",
				slog.String("component", ch.component))
			return err
		}

		slog.Warn("[CommitHandler] Failed to commit offset, retrying...",
			slog.String("component", ch.component),
			slog.Int("attempt", attempt),
			slog.Int("partition", int(msg.TopicPartition.Partition)),
			slog.Int64("offset", int64(msg.TopicPartition.Offset)),
			slog.String("error", err.Error()))
		time.Sleep(RETRY_DELAY)
	}

	return fmt.Errorf("failed to commit offset after %d retries", MAX_RETRIES)
}
