package consensus

import "github.com/feedsight/feedsight/internal/models"

const (
	minWeight = 0.2
	maxWeight = 2.0
)

var evidenceFactors = map[models.EvidenceType]float64{
	models.EvidenceData:          1.4,
	models.EvidenceBenchmark:     1.25,
	models.EvidenceCitation:      1.15,
	models.EvidenceExpertOpinion: 1.05,
	models.EvidenceAnecdote:      0.95,
	models.EvidenceAssumption:    0.85,
}

const unknownEvidenceFactor = 0.9

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// EvidenceFactor returns the multiplier for an evidence kind. Unknown kinds
// get a slightly sub-neutral factor instead of failing.
func EvidenceFactor(et models.EvidenceType) float64 {
	if f, ok := evidenceFactors[et]; ok {
		return f
	}
	return unknownEvidenceFactor
}

// Weight folds the four per-item quality signals into one scalar importance
// weight in [0.2, 2.0]. Out-of-range relevancy or confidence is clamped,
// never rejected.
func Weight(relevancy int, confidence float64, evidenceType models.EvidenceType, isCritical bool) float64 {
	relevancyFactor := 0.5 + 0.5*clamp(float64(relevancy)/100.0, 0, 1)
	confidenceFactor := clamp(0.6+0.8*confidence, 0, 1.4)
	criticalFactor := 0.9
	if isCritical {
		criticalFactor = 1.1
	}
	w := relevancyFactor * confidenceFactor * EvidenceFactor(evidenceType) * criticalFactor
	return clamp(w, minWeight, maxWeight)
}

// ComputeWeights wraps each classified item with its weight, preserving
// input order.
func ComputeWeights(items []models.ClassifiedItem) []WeightedItem {
	weighted := make([]WeightedItem, 0, len(items))
	for _, it := range items {
		weighted = append(weighted, WeightedItem{
			ClassifiedItem: it,
			Weight:         Weight(it.Relevancy, it.Confidence, it.EvidenceType, it.IsCriticalOpinion),
		})
	}
	return weighted
}
