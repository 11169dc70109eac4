package classify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/feedsight/feedsight/internal/consensus"
	"github.com/feedsight/feedsight/internal/models"
)

// Options tune the classification stage.
type Options struct {
	Workers      int
	MinRelevancy int
	MinItems     int
}

func DefaultOptions() Options {
	return Options{Workers: 10, MinRelevancy: 60, MinItems: 3}
}

// Classifier fans feedback out to the classification capability and
// validates each structured result against the data contract.
type Classifier struct {
	invoker Invoker
	opts    Options
	logger  *slog.Logger
}

func NewClassifier(invoker Invoker, opts Options, logger *slog.Logger) *Classifier {
	if opts.Workers <= 0 {
		opts.Workers = DefaultOptions().Workers
	}
	return &Classifier{invoker: invoker, opts: opts, logger: logger}
}

type classificationResponse struct {
	Theme             string  `json:"theme"`
	Sentiment         string  `json:"sentiment"`
	Emotion           string  `json:"emotion"`
	IsCriticalOpinion bool    `json:"is_critical_opinion"`
	RiskFlag          bool    `json:"risk_flag"`
	Confidence        float64 `json:"confidence"`
	Relevancy         int     `json:"relevancy"`
	IsAgainst         string  `json:"is_against"`
	EvidenceType      string  `json:"evidence_type"`
	Option            string  `json:"option"`
}

var baseSchema = GenerateSchema[classificationResponse]()

// schemaForCategory clones the base schema and surfaces the category
// dimension under its declared field name with its declared value set.
func schemaForCategory(field consensus.CategoryField) map[string]interface{} {
	raw, err := json.Marshal(baseSchema)
	if err != nil {
		panic(err)
	}
	var schema map[string]interface{}
	if err := json.Unmarshal(raw, &schema); err != nil {
		panic(err)
	}
	// The required list round-trips as []interface{}; normalize it so
	// renameProperty can keep it consistent.
	if req, ok := schema[requiredKey].([]interface{}); ok {
		names := make([]string, 0, len(req))
		for _, r := range req {
			if s, ok := r.(string); ok {
				names = append(names, s)
			}
		}
		schema[requiredKey] = names
	}
	renameProperty(schema, "option", field.FieldName, field.Options)
	return schema
}

// ClassifyAll classifies every feedback item concurrently. Per-item failures
// are logged and excluded rather than failing the run; if fewer than
// MinItems survive, ErrInsufficientFeedback is returned.
func (c *Classifier) ClassifyAll(ctx context.Context, cat models.Category, topic string, feedback []models.Feedback) ([]models.ClassifiedItem, error) {
	field, ok := consensus.FieldForCategory(cat)
	if !ok {
		return nil, fmt.Errorf("unknown category %q", cat)
	}
	schema := schemaForCategory(field)
	instructions := classificationInstructions(cat, field, topic)

	results := make([]*models.ClassifiedItem, len(feedback))
	var mu sync.Mutex
	failed := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Workers)
	for i, fb := range feedback {
		g.Go(func() error {
			item, err := c.classifyOne(gctx, fb, field, schema, instructions)
			if err != nil {
				c.logger.Warn("[Classifier] item classification failed",
					slog.String("feedback_id", fb.ID),
					slog.String("error", err.Error()))
				mu.Lock()
				failed++
				mu.Unlock()
				return nil
			}
			results[i] = item
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	items := make([]models.ClassifiedItem, 0, len(feedback))
	for _, item := range results {
		if item == nil {
			continue
		}
		if item.RiskFlag {
			c.logger.Info("[Classifier] dropping risk-flagged item", slog.String("id", item.ID))
			continue
		}
		if item.Relevancy < c.opts.MinRelevancy {
			continue
		}
		items = append(items, *item)
	}

	c.logger.Info("[Classifier] classification complete",
		slog.Int("submitted", len(feedback)),
		slog.Int("failed", failed),
		slog.Int("kept", len(items)))

	if len(items) < c.opts.MinItems {
		return nil, fmt.Errorf("%w: %d items after filtering, need %d",
			consensus.ErrInsufficientFeedback, len(items), c.opts.MinItems)
	}
	return items, nil
}

func (c *Classifier) classifyOne(ctx context.Context, fb models.Feedback, field consensus.CategoryField, schema map[string]interface{}, instructions string) (*models.ClassifiedItem, error) {
	out, err := c.invoker.Invoke(ctx, InvokeRequest{
		Instructions: instructions,
		Input:        fb.Text,
		SchemaName:   "FeedbackClassification",
		Schema:       schema,
		MaxTokens:    600,
	})
	if err != nil {
		return nil, err
	}

	var raw map[string]json.RawMessage
	if err := decodeModelJSON(out, &raw); err != nil {
		return nil, err
	}
	// Move the category dimension back under its canonical key.
	if v, ok := raw[field.FieldName]; ok {
		raw["option"] = v
		delete(raw, field.FieldName)
	}
	normalized, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var resp classificationResponse
	if err := json.Unmarshal(normalized, &resp); err != nil {
		return nil, err
	}

	item := models.ClassifiedItem{
		ID:                fb.ID,
		Theme:             resp.Theme,
		Sentiment:         models.Sentiment(resp.Sentiment),
		Emotion:           models.Emotion(resp.Emotion),
		IsCriticalOpinion: resp.IsCriticalOpinion,
		RiskFlag:          resp.RiskFlag,
		Confidence:        resp.Confidence,
		Relevancy:         resp.Relevancy,
		Stance:            models.Stance(resp.IsAgainst),
		EvidenceType:      models.EvidenceType(resp.EvidenceType),
		Option:            resp.Option,
		Text:              fb.Text,
	}
	if err := validateItem(item, field); err != nil {
		return nil, err
	}
	return &item, nil
}

// validateItem rejects any result whose enum values or numeric ranges fall
// outside the declared domains. Violations are classification failures, not
// values to coerce.
func validateItem(item models.ClassifiedItem, field consensus.CategoryField) error {
	if item.Theme == "" {
		return fmt.Errorf("empty theme")
	}
	if !item.Sentiment.Valid() {
		return fmt.Errorf("sentiment %q outside domain", item.Sentiment)
	}
	if !item.Emotion.Valid() {
		return fmt.Errorf("emotion %q outside domain", item.Emotion)
	}
	if !item.Stance.Valid() {
		return fmt.Errorf("is_against %q outside domain", item.Stance)
	}
	if !item.EvidenceType.Valid() {
		return fmt.Errorf("evidence_type %q outside domain", item.EvidenceType)
	}
	if item.Confidence < 0 || item.Confidence > 1 {
		return fmt.Errorf("confidence %.3f outside [0,1]", item.Confidence)
	}
	if item.Relevancy < 0 || item.Relevancy > 100 {
		return fmt.Errorf("relevancy %d outside [0,100]", item.Relevancy)
	}
	valid := false
	for _, opt := range field.Options {
		if item.Option == opt {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("%s %q outside declared option set", field.FieldName, item.Option)
	}
	return nil
}
