package consumers

import (
	"context"
	"errors"
	"log/slog"

	"github.com/confluentinc/confluent-kafka-go/kafka"
	"github.com/google/uuid"

	"github.com/feedsight/feedsight/internal/classify"
	"github.com/feedsight/feedsight/internal/clients/kafka_client"
	"github.com/feedsight/feedsight/internal/consensus"
	"github.com/feedsight/feedsight/internal/db"
	"github.com/feedsight/feedsight/internal/models"
	"github.com/feedsight/feedsight/internal/summarize"
	"github.com/feedsight/feedsight/internal/textprep"
	"github.com/feedsight/feedsight/internal/utils"
)

// FeedbackSource loads the stored feedback for an event.
type FeedbackSource interface {
	GetEventFeedback(ctx context.Context, eventID string) ([]models.Feedback, error)
}

// ReportWorker handles report-request messages end to end: load feedback,
// classify, aggregate, summarize, persist.
type ReportWorker struct {
	source     FeedbackSource
	classifier *classify.Classifier
	pipeline   *consensus.Pipeline
	summarizer *summarize.Summarizer
	logger     *slog.Logger
}

func NewReportWorker(source FeedbackSource, classifier *classify.Classifier, pipeline *consensus.Pipeline, summarizer *summarize.Summarizer, logger *slog.Logger) *ReportWorker {
	return &ReportWorker{
		source:     source,
		classifier: classifier,
		pipeline:   pipeline,
		summarizer: summarizer,
		logger:     logger,
	}
}

// ReportCompletion is the report-completed topic payload.
type ReportCompletion struct {
	RunID     string                `json:"run_id"`
	EventID   string                `json:"event_id"`
	Status    models.ReportStatus   `json:"status"`
	Analytics models.EventAnalytics `json:"analytics"`
}

func (w *ReportWorker) Start(ctx context.Context, consumer *kafka.Consumer) {
	iterator := kafka_client.NewMessageIterator[models.ReportRequest](ctx, consumer)
	committer := kafka_client.NewCommitHandler(ctx, consumer, "ReportWorker")

	for {
		select {
		case <-ctx.Done():
			w.logger.Warn("[ReportWorker] Consumer shutting down...")
			return
		default:
			msg, req, err := iterator.Next()
			if err != nil {
				utils.HandleConsumerError(err)
				if errors.Is(err, kafka_client.ErrMalformedMessage) {
					_ = committer.Commit(msg)
				}
				continue
			}

			report, analytics := w.Generate(ctx, req)

			if err := db.StoreReport(ctx, report); err != nil {
				w.logger.Error("[ReportWorker] Failed to store report",
					slog.String("run_id", report.RunID),
					slog.String("error", err.Error()))
				// Leave the offset uncommitted so the request is retried.
				continue
			}

			completion := ReportCompletion{
				RunID:     report.RunID,
				EventID:   report.EventID,
				Status:    report.Status,
				Analytics: analytics,
			}
			if err := kafka_client.PublishToKafka(kafka_client.KAFKA_TOPIC_REPORT_COMPLETED, report.EventID, completion); err != nil {
				w.logger.Warn("[ReportWorker] Failed to publish completion",
					slog.String("run_id", report.RunID),
					slog.String("error", err.Error()))
			}

			_ = committer.Commit(msg)
		}
	}
}

// Generate runs one report lifecycle. It always returns a storable report;
// failures are encoded in the report status and failure kind rather than
// lost, so callers can tell "not enough feedback" from "retry later" from
// "this is a bug".
func (w *ReportWorker) Generate(ctx context.Context, req models.ReportRequest) (models.Report, models.EventAnalytics) {
	cat := req.Category
	if cat == "" {
		cat = models.CategoryFeedbackRetrospective
	}

	report := models.Report{
		RunID:      uuid.NewString(),
		EventID:    req.EventID,
		EventTitle: req.EventTitle,
		Category:   cat,
		Status:     models.ReportRunning,
	}

	feedback, err := w.source.GetEventFeedback(ctx, req.EventID)
	if err != nil {
		w.logger.Error("[ReportWorker] Failed to load feedback",
			slog.String("event_id", req.EventID),
			slog.String("error", err.Error()))
		report.Status = models.ReportFailed
		report.FailureKind = models.FailureTransient
		return report, models.EventAnalytics{}
	}

	kept := make([]models.Feedback, 0, len(feedback))
	for _, fb := range feedback {
		if fb.Quality == models.QualityReject {
			continue
		}
		kept = append(kept, fb)
	}
	report.FeedbackCount = len(kept)

	items, err := w.classifier.ClassifyAll(ctx, cat, req.EventTitle, kept)
	if err != nil {
		if errors.Is(err, consensus.ErrInsufficientFeedback) {
			w.logger.Info("[ReportWorker] Not enough feedback to report",
				slog.String("event_id", req.EventID),
				slog.Int("feedback_count", len(kept)))
			report.Status = models.ReportInsufficient
		} else {
			w.logger.Error("[ReportWorker] Classification failed",
				slog.String("event_id", req.EventID),
				slog.String("error", err.Error()))
			report.Status = models.ReportFailed
			report.FailureKind = failureKindFor(err)
		}
		return report, models.EventAnalytics{}
	}

	for _, it := range items {
		if !textprep.SentimentAgrees(it.Sentiment, it.Text) {
			w.logger.Debug("[ReportWorker] Classifier and VADER disagree on sentiment",
				slog.String("item_id", it.ID),
				slog.String("classified", string(it.Sentiment)))
		}
	}

	analytics := consensus.BuildAnalytics(req.EventID, items)

	result, err := w.pipeline.Run(cat, items)
	if err != nil {
		w.logger.Error("[ReportWorker] Aggregation failed",
			slog.String("event_id", req.EventID),
			slog.String("error", err.Error()))
		report.Status = models.ReportFailed
		report.FailureKind = failureKindFor(err)
		return report, analytics
	}

	summary, err := w.summarizer.Summarize(ctx, result.Payload)
	if err != nil {
		w.logger.Error("[ReportWorker] Summarization failed, using fallback report",
			slog.String("event_id", req.EventID),
			slog.String("error", err.Error()))
		summary = summarize.FallbackSummary(result)
		report.SummaryFallback = true
		report.FailureKind = failureKindFor(err)
	}

	report.Summary = summary
	report.WhatWeAgreeOn = bulletTexts(result.Bullets.Agree)
	report.WhereWeDisagree = bulletTexts(result.Bullets.Disagree)
	report.WhatToDecideNext = bulletTexts(result.Bullets.Next)
	report.Status = models.ReportCompleted
	return report, analytics
}

// failureKindFor maps an error to retry guidance. Contract violations are
// bugs and will fail again; everything else is assumed transient.
func failureKindFor(err error) models.FailureKind {
	var vErr *consensus.ValidationError
	if errors.Is(err, consensus.ErrSummaryContract) || errors.As(err, &vErr) {
		return models.FailureContract
	}
	return models.FailureTransient
}

func bulletTexts(bullets []consensus.Bullet) []string {
	texts := make([]string, 0, len(bullets))
	for _, b := range bullets {
		texts = append(texts, b.Text)
	}
	return texts
}
