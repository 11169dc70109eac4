package consensus

import "github.com/feedsight/feedsight/internal/models"

// WeightedItem is a classified item with its computed importance weight.
// Weight is set once by ComputeWeights and never changed afterwards.
type WeightedItem struct {
	models.ClassifiedItem
	Weight float64 `json:"weight"`
}

// ThemeCluster groups items whose theme strings were judged similar enough
// to merge. ClusterID is stable within a run only.
type ThemeCluster struct {
	ClusterID int            `json:"cluster_id"`
	Label     string         `json:"label"`
	Items     []WeightedItem `json:"items"`
}

// TotalWeight sums member weights.
func (c ThemeCluster) TotalWeight() float64 {
	var total float64
	for _, it := range c.Items {
		total += it.Weight
	}
	return total
}

// EvidenceEntry is one ranked evidence row within a cluster, scored by
// evidence strength times item weight.
type EvidenceEntry struct {
	ThemeLabel   string              `json:"theme_label"`
	EvidenceType models.EvidenceType `json:"evidence_type"`
	Score        float64             `json:"score"`
	Weight       float64             `json:"w"`
	Text         string              `json:"text"`
}

// SignalPanel is the scored view of one cluster.
type SignalPanel struct {
	ClusterID           int                `json:"cluster_id"`
	Label               string             `json:"label"`
	ItemCount           int                `json:"item_count"`
	TotalWeight         float64            `json:"total_weight"`
	Consensus           int                `json:"consensus"`
	DominantOption      string             `json:"dominant_option"`
	OptionShares        map[string]float64 `json:"option_shares"`
	Polarity            float64            `json:"polarity"`
	AvgConfidence       float64            `json:"avg_confidence"`
	HasConfidence       bool               `json:"has_confidence"`
	EmotionDistribution map[string]float64 `json:"emotion_distribution"`
	TopEvidence         []EvidenceEntry    `json:"top_evidence"`
	Quotes              []string           `json:"representative_quotes"`
}

// DissentRecord flags one cluster's disagreement signals.
type DissentRecord struct {
	ClusterID      int                `json:"cluster_id"`
	Label          string             `json:"label"`
	Consensus      int                `json:"consensus"`
	DominantOption string             `json:"dominant_option"`
	OptionShares   map[string]float64 `json:"option_shares"`
	MismatchShare  float64            `json:"mismatch_share"`
	LowConsensus   bool               `json:"low_consensus"`
	Mismatch       bool               `json:"mismatch"`
	Bimodal        bool               `json:"bimodal"`
	Dissent        bool               `json:"dissent"`
	Reasons        []string           `json:"reasons"`
}

// Bullet is one executive-summary line with its supporting numbers.
type Bullet struct {
	Label          string   `json:"label"`
	DominantOption string   `json:"dominant_option"`
	DominantShare  float64  `json:"dominant_share"`
	Consensus      int      `json:"consensus"`
	Polarity       float64  `json:"polarity"`
	AvgConfidence  float64  `json:"avg_confidence"`
	Action         string   `json:"action,omitempty"`
	Reasons        []string `json:"reasons,omitempty"`
	Text           string   `json:"text"`
}

// ThemeRow is one theme-leaderboard entry.
type ThemeRow struct {
	Label         string  `json:"label"`
	TotalWeight   float64 `json:"total_weight"`
	Consensus     int     `json:"consensus"`
	DominantShare float64 `json:"dominant_share"`
	ItemCount     int     `json:"item_count"`
}

// Boards holds the ranked leaderboards derived from the signal panels.
type Boards struct {
	Themes         []ThemeRow                    `json:"themes"`
	Evidence       []EvidenceEntry               `json:"evidence"`
	SentimentTable map[string]map[string]float64 `json:"sentiment_table"`
	EmotionTables  map[string]map[string]float64 `json:"emotion_tables"`
}

// Bullets are the three executive-summary lists.
type Bullets struct {
	Agree    []Bullet `json:"agree"`
	Disagree []Bullet `json:"disagree"`
	Next     []Bullet `json:"next"`
}

// Result is one full aggregation run over a snapshot of classified items.
type Result struct {
	Category  models.Category      `json:"category"`
	ItemCount int                  `json:"item_count"`
	Clusters  []ThemeCluster       `json:"clusters"`
	Panels    []SignalPanel        `json:"panels"`
	Dissent   []DissentRecord      `json:"dissent"`
	Bullets   Bullets              `json:"bullets"`
	Boards    Boards               `json:"boards"`
	Payload   models.ReportPayload `json:"payload"`
}
