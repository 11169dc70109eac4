package consumers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/confluentinc/confluent-kafka-go/kafka"

	"github.com/feedsight/feedsight/internal/clients"
	"github.com/feedsight/feedsight/internal/clients/kafka_client"
	"github.com/feedsight/feedsight/internal/db"
	"github.com/feedsight/feedsight/internal/models"
	"github.com/feedsight/feedsight/internal/textprep"
	"github.com/feedsight/feedsight/internal/utils"
)

var feedbackBuffer = utils.NewBatchBuffer[models.Feedback]()

// StartFeedbackIntakeConsumer drains the intake topic: dedupes submissions,
// gates text quality, and batches accepted feedback into DynamoDB. Offsets
// commit only after the batch containing the message is stored.
func StartFeedbackIntakeConsumer(ctx context.Context, consumer *kafka.Consumer) {
	iterator := kafka_client.NewMessageIterator[models.FeedbackEvent](ctx, consumer)
	committer := kafka_client.NewCommitHandler(ctx, consumer, "IntakeConsumer")
	valkey := clients.GetValkeyClient()

	flushTicker := time.NewTicker(utils.BATCH_TIMEOUT)
	defer flushTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Warn("[IntakeConsumer] Consumer shutting down...")
			flushFeedback(ctx, committer)
			return
		case <-flushTicker.C:
			if feedbackBuffer.HasData() {
				feedbackBuffer.LogBatchProcessing("feedback")
				flushFeedback(ctx, committer)
			}
		default:
			msg, event, err := iterator.Next()
			if err != nil {
				utils.HandleConsumerError(err)
				if errors.Is(err, kafka_client.ErrMalformedMessage) {
					_ = committer.Commit(msg)
				}
				continue
			}

			if valkey.IsSeen(ctx, event.EventID, event.ID) {
				slog.Debug("[IntakeConsumer] Duplicate feedback, skipping",
					slog.String("feedback_id", event.ID))
				_ = committer.Commit(msg)
				continue
			}

			decision := textprep.QualityCheck(event.Text)
			if decision == models.QualityReject {
				slog.Info("[IntakeConsumer] Rejected low-quality feedback",
					slog.String("feedback_id", event.ID))
				_ = valkey.MarkSeen(ctx, event.EventID, event.ID)
				_ = committer.Commit(msg)
				continue
			}

			fb := event.Feedback
			fb.Quality = decision
			if fb.SubmittedAt.IsZero() {
				fb.SubmittedAt = time.Now().UTC()
			}

			utils.TrackMessage(fb.ID, msg)
			feedbackBuffer.Add(fb)
			if err := valkey.MarkSeen(ctx, fb.EventID, fb.ID); err != nil {
				slog.Warn("[IntakeConsumer] Failed to mark feedback as seen",
					slog.String("feedback_id", fb.ID),
					slog.String("error", err.Error()))
			}

			if feedbackBuffer.Size() >= utils.BATCH_SIZE {
				flushFeedback(ctx, committer)
			}
		}
	}
}

func flushFeedback(ctx context.Context, committer *kafka_client.CommitHandler) {
	batch := feedbackBuffer.GetAndClear()
	if len(batch) == 0 {
		return
	}

	var err error
	for i := 0; i < 3; i++ {
		err = db.StoreFeedbackBatch(ctx, batch)
		if err == nil {
			break
		}
		slog.Warn("[IntakeConsumer] Batch store failed",
			slog.Int("attempt", i+1),
			slog.String("error", err.Error()))
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		slog.Error("[IntakeConsumer] Dropping batch after repeated store failures",
			slog.Int("batch_size", len(batch)),
			slog.String("error", err.Error()))
		return
	}

	for _, fb := range batch {
		if trackedMsg, found := utils.GetMessageForFeedback(fb.ID); found {
			if err := committer.Commit(trackedMsg); err != nil {
				slog.Warn("[IntakeConsumer] Failed to commit offset",
					slog.String("feedback_id", fb.ID),
					slog.String("error", err.Error()))
			}
		}
	}
}
