package consensus

import (
	"fmt"
	"sort"

	"github.com/feedsight/feedsight/internal/models"
)

// DetectDissent evaluates every cluster for disagreement: low consensus,
// stance/sentiment mismatch, or a bimodal split. Records are sorted dissent
// first, then consensus ascending.
func DetectDissent(clusters []ThemeCluster, field CategoryField, cfg Config) []DissentRecord {
	records := make([]DissentRecord, 0, len(clusters))
	for _, c := range clusters {
		records = append(records, detectClusterDissent(c, field, cfg))
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Dissent != records[j].Dissent {
			return records[i].Dissent
		}
		return records[i].Consensus < records[j].Consensus
	})
	return records
}

func detectClusterDissent(c ThemeCluster, field CategoryField, cfg Config) DissentRecord {
	stats := computeOptionStats(c.Items, field)

	rec := DissentRecord{
		ClusterID:      c.ClusterID,
		Label:          c.Label,
		Consensus:      stats.consensus,
		DominantOption: stats.dominant,
		OptionShares:   stats.shares,
		MismatchShare:  mismatchShare(c.Items),
	}

	rec.LowConsensus = rec.Consensus < cfg.LowConsensusThreshold
	rec.Mismatch = rec.MismatchShare >= cfg.MismatchThreshold
	rec.Bimodal = isBimodal(stats.shares, cfg.BimodalShare)
	rec.Dissent = rec.LowConsensus || rec.Mismatch || rec.Bimodal

	if rec.LowConsensus {
		rec.Reasons = append(rec.Reasons,
			fmt.Sprintf("Low consensus (%d < %d)", rec.Consensus, cfg.LowConsensusThreshold))
	}
	if rec.Mismatch {
		rec.Reasons = append(rec.Reasons,
			fmt.Sprintf("Stance/sentiment mismatch (%.0f%% >= %.0f%%)", rec.MismatchShare*100, cfg.MismatchThreshold*100))
	}
	if rec.Bimodal {
		rec.Reasons = append(rec.Reasons,
			fmt.Sprintf("Bimodal split (top two shares each >= %.0f%%)", cfg.BimodalShare*100))
	}
	return rec
}

// mismatchShare is the weighted share of items whose stance contradicts
// their sentiment: opposed but positive, or supportive but negative. Mixed
// stances are ignored.
func mismatchShare(items []WeightedItem) float64 {
	var total, mismatched float64
	for _, it := range items {
		total += it.Weight
		switch {
		case it.Stance == models.StanceYes && it.Sentiment == models.SentimentPositive:
			mismatched += it.Weight
		case it.Stance == models.StanceNo && it.Sentiment == models.SentimentNegative:
			mismatched += it.Weight
		}
	}
	if total <= 0 {
		return 0
	}
	return mismatched / total
}

func isBimodal(shares map[string]float64, minShare float64) bool {
	if len(shares) < 2 {
		return false
	}
	first, second := 0.0, 0.0
	for _, s := range shares {
		if s > first {
			first, second = s, first
		} else if s > second {
			second = s
		}
	}
	return first >= minShare && second >= minShare
}
