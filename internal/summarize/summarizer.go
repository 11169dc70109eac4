package summarize

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/feedsight/feedsight/internal/classify"
	"github.com/feedsight/feedsight/internal/consensus"
	"github.com/feedsight/feedsight/internal/models"
)

var summarySchema = classify.GenerateSchema[models.Summary]()

const summaryInstructions = `You write an executive summary of aggregated event feedback.

The input is a JSON document with two sections:
- summary.agreed_topics / summary.disagreed_topics: pre-ranked bullet lines.
- evidence: weighted verbatim feedback quotes.

Produce:
- main_summary: 2-4 sentences capturing what attendees agreed on.
- conflicting_statement: 1-2 sentences on where opinions split. If nothing
  split, say so plainly.
- top_weighted_points: 3-5 entries, each a verbatim substring of one of the
  provided evidence texts. Do not paraphrase these.`

// Summarizer turns an assembled report payload into the three-part summary
// via the external text-generation capability.
type Summarizer struct {
	invoker classify.Invoker
	logger  *slog.Logger
}

func NewSummarizer(invoker classify.Invoker, logger *slog.Logger) *Summarizer {
	return &Summarizer{invoker: invoker, logger: logger}
}

// Summarize serializes the payload, invokes the capability, and enforces the
// three-key response contract. Any failure here is non-recoverable for the
// run; callers fall back to a templated report.
func (s *Summarizer) Summarize(ctx context.Context, payload models.ReportPayload) (models.Summary, error) {
	input, err := json.Marshal(payload)
	if err != nil {
		return models.Summary{}, fmt.Errorf("marshal payload: %w", err)
	}

	out, err := s.invoker.Invoke(ctx, classify.InvokeRequest{
		Instructions: summaryInstructions,
		Input:        string(input),
		SchemaName:   "FeedbackSummary",
		Schema:       summarySchema,
		MaxTokens:    1200,
	})
	if err != nil {
		return models.Summary{}, fmt.Errorf("summarization call: %w", err)
	}

	summary, err := consensus.ParseSummary([]byte(out))
	if err != nil {
		return models.Summary{}, err
	}
	consensus.LogNonVerbatimPoints(s.logger, summary, payload)
	return summary, nil
}
