package consensus

import (
	"math"
	"sort"

	"github.com/feedsight/feedsight/internal/models"
)

// optionStats is the share math shared by the scorer and the dissent
// detector.
type optionStats struct {
	totalWeight float64
	shares      map[string]float64
	dominant    string
	consensus   int
}

// computeOptionStats sums item weights per allowed option, normalizes to
// shares, and derives the dominant option and consensus score. Options not
// in the declared set are skipped. Zero total weight yields consensus 0 and
// no dominant option.
func computeOptionStats(items []WeightedItem, field CategoryField) optionStats {
	weights := make(map[string]float64, len(field.Options))
	var total float64
	for _, it := range items {
		for _, opt := range field.Options {
			if it.Option == opt {
				weights[opt] += it.Weight
				total += it.Weight
				break
			}
		}
	}

	stats := optionStats{totalWeight: total, shares: make(map[string]float64, len(weights))}
	if total <= 0 {
		return stats
	}
	for opt, w := range weights {
		stats.shares[opt] = w / total
	}

	// Declared option order breaks exact ties.
	best := -1.0
	for _, opt := range field.Options {
		if share, ok := stats.shares[opt]; ok && share > best {
			best = share
			stats.dominant = opt
		}
	}
	stats.consensus = consensusScore(best, len(field.Options))
	return stats
}

// consensusScore maps the dominant share p over m options onto [0,100]:
// unanimous agreement scores 100, a uniform spread scores 0.
func consensusScore(p float64, m int) int {
	if m <= 1 {
		return 100
	}
	raw := 100.0 * (p - 1.0/float64(m)) / (1.0 - 1.0/float64(m))
	score := int(math.Round(raw))
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

var sentimentValues = map[models.Sentiment]float64{
	models.SentimentPositive: 1,
	models.SentimentNeutral:  0,
	models.SentimentNegative: -1,
}

// BuildSignalPanels scores every cluster and returns the panel table sorted
// by total weight descending, then consensus descending.
func BuildSignalPanels(clusters []ThemeCluster, field CategoryField, cfg Config) []SignalPanel {
	panels := make([]SignalPanel, 0, len(clusters))
	for _, c := range clusters {
		panels = append(panels, scoreCluster(c, field, cfg))
	}
	sort.SliceStable(panels, func(i, j int) bool {
		if panels[i].TotalWeight != panels[j].TotalWeight {
			return panels[i].TotalWeight > panels[j].TotalWeight
		}
		return panels[i].Consensus > panels[j].Consensus
	})
	return panels
}

func scoreCluster(c ThemeCluster, field CategoryField, cfg Config) SignalPanel {
	stats := computeOptionStats(c.Items, field)

	var polaritySum, confidenceSum, emotionTotal float64
	emotions := make(map[string]float64)
	total := c.TotalWeight()
	for _, it := range c.Items {
		polaritySum += sentimentValues[it.Sentiment] * it.Weight
		confidenceSum += it.Confidence * it.Weight
		if it.Emotion != "" {
			emotions[string(it.Emotion)] += it.Weight
			emotionTotal += it.Weight
		}
	}

	panel := SignalPanel{
		ClusterID:           c.ClusterID,
		Label:               c.Label,
		ItemCount:           len(c.Items),
		TotalWeight:         total,
		Consensus:           stats.consensus,
		DominantOption:      stats.dominant,
		OptionShares:        stats.shares,
		EmotionDistribution: make(map[string]float64, len(emotions)),
		TopEvidence:         rankEvidence(c, cfg.EvidencePerCluster),
		Quotes:              topQuotes(c.Items, cfg.QuotesPerCluster),
	}
	if total > 0 {
		panel.Polarity = polaritySum / total
		panel.AvgConfidence = confidenceSum / total
		panel.HasConfidence = true
		for e, w := range emotions {
			panel.EmotionDistribution[e] = w / total
		}
	}
	return panel
}

// rankEvidence orders a cluster's items by evidence strength times weight.
// The sort is stable so equally-scored items keep their input order.
func rankEvidence(c ThemeCluster, limit int) []EvidenceEntry {
	entries := make([]EvidenceEntry, 0, len(c.Items))
	for _, it := range c.Items {
		entries = append(entries, EvidenceEntry{
			ThemeLabel:   c.Label,
			EvidenceType: it.EvidenceType,
			Score:        EvidenceFactor(it.EvidenceType) * it.Weight,
			Weight:       it.Weight,
			Text:         it.Text,
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

func topQuotes(items []WeightedItem, limit int) []string {
	ranked := make([]WeightedItem, len(items))
	copy(ranked, items)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Weight > ranked[j].Weight
	})
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	quotes := make([]string, 0, len(ranked))
	for _, it := range ranked {
		quotes = append(quotes, it.Text)
	}
	return quotes
}
