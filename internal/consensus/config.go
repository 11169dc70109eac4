package consensus

// Config holds the pipeline's tunable thresholds and caps. The defaults are
// operational settings, not algorithmic constants; override per deployment.
type Config struct {
	SimilarityThreshold   float64
	TopKClusters          int // 0 keeps every cluster
	LowConsensusThreshold int
	MismatchThreshold     float64
	BimodalShare          float64
	AgreeConsensus        int
	NextConsensusFloor    int
	LowConfidence         float64
	AgreeCap              int
	DisagreeCap           int
	NextCap               int
	EvidencePerCluster    int
	QuotesPerCluster      int
	EvidenceBoardCap      int
	ThemeBoardTopK        int
	MinItems              int
}

// DefaultConfig returns the stock thresholds.
func DefaultConfig() Config {
	return Config{
		SimilarityThreshold:   0.35,
		TopKClusters:          0,
		LowConsensusThreshold: 20,
		MismatchThreshold:     0.10,
		BimodalShare:          0.30,
		AgreeConsensus:        70,
		NextConsensusFloor:    55,
		LowConfidence:         0.5,
		AgreeCap:              5,
		DisagreeCap:           3,
		NextCap:               3,
		EvidencePerCluster:    5,
		QuotesPerCluster:      3,
		EvidenceBoardCap:      15,
		ThemeBoardTopK:        10,
		MinItems:              3,
	}
}
