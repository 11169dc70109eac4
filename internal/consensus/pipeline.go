package consensus

import (
	"fmt"
	"log/slog"

	"github.com/feedsight/feedsight/internal/models"
)

// Pipeline runs the deterministic aggregation stages in order over one
// snapshot of classified items. It holds no mutable state across runs.
type Pipeline struct {
	cfg    Config
	logger *slog.Logger
}

func NewPipeline(cfg Config, logger *slog.Logger) *Pipeline {
	return &Pipeline{cfg: cfg, logger: logger}
}

// Run weighs, clusters, scores, and packages the items. Zero items is not an
// error: it yields a fully-populated zero-valued result. Invalid input data
// aborts the run with a ValidationError.
func (p *Pipeline) Run(cat models.Category, items []models.ClassifiedItem) (Result, error) {
	field, ok := FieldForCategory(cat)
	if !ok {
		return Result{}, &ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", cat)}
	}
	if err := validateItems(cat, items); err != nil {
		return Result{}, err
	}

	weighted := ComputeWeights(items)
	clusters := ClusterThemes(weighted, p.cfg.SimilarityThreshold, p.cfg.TopKClusters)
	panels := BuildSignalPanels(clusters, field, p.cfg)
	dissent := DetectDissent(clusters, field, p.cfg)
	bullets := BuildBullets(panels, dissent, cat, p.cfg)
	boards := BuildBoards(panels, p.cfg)

	kept := make([]WeightedItem, 0, len(weighted))
	for _, c := range clusters {
		kept = append(kept, c.Items...)
	}

	result := Result{
		Category:  cat,
		ItemCount: len(items),
		Clusters:  clusters,
		Panels:    panels,
		Dissent:   dissent,
		Bullets:   bullets,
		Boards:    boards,
		Payload:   BuildPayload(bullets, boards, kept),
	}

	p.logger.Debug("[Consensus] aggregation complete",
		slog.String("category", string(cat)),
		slog.Int("items", len(items)),
		slog.Int("clusters", len(clusters)))
	return result, nil
}

// validateItems enforces the classification data contract before any stage
// runs. Bad enum values are upstream bugs, not recoverable states.
func validateItems(cat models.Category, items []models.ClassifiedItem) error {
	for _, it := range items {
		if it.Theme == "" {
			return &ValidationError{Field: "theme", Reason: fmt.Sprintf("item %s has no theme", it.ID)}
		}
		if !it.Sentiment.Valid() {
			return &ValidationError{Field: "sentiment", Reason: fmt.Sprintf("item %s: %q", it.ID, it.Sentiment)}
		}
		if !it.Emotion.Valid() {
			return &ValidationError{Field: "emotion", Reason: fmt.Sprintf("item %s: %q", it.ID, it.Emotion)}
		}
		if !it.Stance.Valid() {
			return &ValidationError{Field: "is_against", Reason: fmt.Sprintf("item %s: %q", it.ID, it.Stance)}
		}
		if it.Option != "" && !ValidOption(cat, it.Option) {
			return &ValidationError{Field: "option", Reason: fmt.Sprintf("item %s: %q not allowed for %s", it.ID, it.Option, cat)}
		}
	}
	return nil
}
