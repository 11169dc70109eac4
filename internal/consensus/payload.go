package consensus

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/feedsight/feedsight/internal/models"
)

// BuildPayload assembles the exact structure handed to the summarizer. Every
// field is plain strings and native numbers so it serializes cleanly.
func BuildPayload(bullets Bullets, boards Boards, items []WeightedItem) models.ReportPayload {
	payload := models.ReportPayload{
		Summary: models.PayloadSummary{
			AgreedTopics:    bulletTexts(bullets.Agree),
			DisagreedTopics: bulletTexts(bullets.Disagree),
		},
		Evidence: models.PayloadEvidence{
			Top10WeightedTexts: evidenceRecords(boards.Evidence, 10),
			AgainstTop7:        againstRecords(items, 7),
			HighlightsTop3:     evidenceRecords(boards.Evidence, 3),
		},
	}
	return payload
}

func bulletTexts(bullets []Bullet) []string {
	texts := make([]string, 0, len(bullets))
	for _, b := range bullets {
		texts = append(texts, b.Text)
	}
	return texts
}

func evidenceRecords(entries []EvidenceEntry, limit int) []models.EvidenceRecord {
	if len(entries) > limit {
		entries = entries[:limit]
	}
	records := make([]models.EvidenceRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, models.EvidenceRecord{
			ThemeLabel:   e.ThemeLabel,
			EvidenceType: string(e.EvidenceType),
			Score:        e.Score,
			Weight:       e.Weight,
			Text:         e.Text,
		})
	}
	return records
}

// againstRecords picks the heaviest opposing-stance items, trimmed down to
// the four fields the summarizer needs.
func againstRecords(items []WeightedItem, limit int) []models.AgainstRecord {
	var against []WeightedItem
	for _, it := range items {
		if it.Stance == models.StanceYes {
			against = append(against, it)
		}
	}
	sort.SliceStable(against, func(i, j int) bool {
		return against[i].Weight > against[j].Weight
	})
	if len(against) > limit {
		against = against[:limit]
	}
	records := make([]models.AgainstRecord, 0, len(against))
	for _, it := range against {
		records = append(records, models.AgainstRecord{
			Weight:    it.Weight,
			Text:      it.Text,
			IsAgainst: string(it.Stance),
			Sentiment: string(it.Sentiment),
		})
	}
	return records
}

// ParseSummary decodes the summarizer's structured response and enforces the
// response contract: main_summary, conflicting_statement, and
// top_weighted_points must all be present. A missing key is a hard error,
// never defaulted.
func ParseSummary(data []byte) (models.Summary, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return models.Summary{}, fmt.Errorf("%w: %v", ErrSummaryContract, err)
	}
	for _, key := range []string{"main_summary", "conflicting_statement", "top_weighted_points"} {
		if _, ok := raw[key]; !ok {
			return models.Summary{}, fmt.Errorf("%w: missing key %q", ErrSummaryContract, key)
		}
	}
	var summary models.Summary
	if err := json.Unmarshal(data, &summary); err != nil {
		return models.Summary{}, fmt.Errorf("%w: %v", ErrSummaryContract, err)
	}
	return summary, nil
}

// LogNonVerbatimPoints warns when a top weighted point is not a verbatim
// substring of any supplied evidence text. This is advisory only; the
// contract is not enforced.
func LogNonVerbatimPoints(logger *slog.Logger, summary models.Summary, payload models.ReportPayload) {
	var texts []string
	for _, r := range payload.Evidence.Top10WeightedTexts {
		texts = append(texts, r.Text)
	}
	for _, r := range payload.Evidence.AgainstTop7 {
		texts = append(texts, r.Text)
	}
	for _, r := range payload.Evidence.HighlightsTop3 {
		texts = append(texts, r.Text)
	}
	for _, point := range summary.TopWeightedPoints {
		found := false
		for _, t := range texts {
			if strings.Contains(t, point) {
				found = true
				break
			}
		}
		if !found {
			logger.Warn("[PayloadAssembler] summarizer point is not verbatim evidence",
				slog.String("point", point))
		}
	}
}
