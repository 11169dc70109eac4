package consensus

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedsight/feedsight/internal/models"
)

func TestDissentBimodalFiftyFifty(t *testing.T) {
	cluster := ThemeCluster{
		Label: "schedule",
		Items: []WeightedItem{
			retroItem("1", models.ImpactHelped, 1.0, models.SentimentPositive),
			retroItem("2", models.ImpactHurt, 1.0, models.SentimentNegative),
		},
	}
	rec := detectClusterDissent(cluster, retroField(t), DefaultConfig())
	assert.True(t, rec.Bimodal)
	assert.True(t, rec.Dissent)
	require.NotEmpty(t, rec.Reasons)
	// Both top shares are 0.50, each >= 0.30.
	for _, share := range rec.OptionShares {
		assert.GreaterOrEqual(t, share, 0.30)
	}
}

func TestDissentSixFourSplit(t *testing.T) {
	var items []WeightedItem
	for i := 0; i < 6; i++ {
		items = append(items, retroItem("h", models.ImpactHelped, 1.0, models.SentimentPositive))
	}
	for i := 0; i < 4; i++ {
		items = append(items, retroItem("x", models.ImpactHurt, 1.0, models.SentimentNegative))
	}
	rec := detectClusterDissent(ThemeCluster{Label: "talks", Items: items}, retroField(t), DefaultConfig())

	assert.Equal(t, 40, rec.Consensus)
	assert.False(t, rec.LowConsensus, "40 is not below the threshold of 20")
	assert.True(t, rec.Bimodal, "0.6/0.4 are both >= 0.30")
	assert.True(t, rec.Dissent)

	found := false
	for _, reason := range rec.Reasons {
		if strings.Contains(strings.ToLower(reason), "bimodal") {
			found = true
		}
	}
	assert.True(t, found, "reasons should mention the bimodal split: %v", rec.Reasons)
}

func TestMismatchShare(t *testing.T) {
	items := []WeightedItem{
		// Opposed but positive: mismatch.
		{ClassifiedItem: models.ClassifiedItem{Stance: models.StanceYes, Sentiment: models.SentimentPositive}, Weight: 1.0},
		// Supportive and positive: fine.
		{ClassifiedItem: models.ClassifiedItem{Stance: models.StanceNo, Sentiment: models.SentimentPositive}, Weight: 1.0},
		// Mixed stance is ignored.
		{ClassifiedItem: models.ClassifiedItem{Stance: models.StanceMixed, Sentiment: models.SentimentNegative}, Weight: 2.0},
	}
	assert.InDelta(t, 0.25, mismatchShare(items), 1e-9)
}

func TestMismatchFlagThreshold(t *testing.T) {
	cluster := ThemeCluster{
		Label: "keynote",
		Items: []WeightedItem{
			{ClassifiedItem: models.ClassifiedItem{Stance: models.StanceYes, Sentiment: models.SentimentPositive, Option: models.ImpactHelped}, Weight: 1.0},
			{ClassifiedItem: models.ClassifiedItem{Stance: models.StanceNo, Sentiment: models.SentimentPositive, Option: models.ImpactHelped}, Weight: 5.0},
		},
	}
	rec := detectClusterDissent(cluster, retroField(t), DefaultConfig())
	assert.InDelta(t, 1.0/6.0, rec.MismatchShare, 1e-9)
	assert.True(t, rec.Mismatch)
	assert.True(t, rec.Dissent)
}

func TestDetectDissentSortOrder(t *testing.T) {
	clusters := []ThemeCluster{
		{ClusterID: 0, Label: "calm", Items: []WeightedItem{
			retroItem("1", models.ImpactHelped, 1.0, models.SentimentPositive),
			retroItem("2", models.ImpactHelped, 1.0, models.SentimentPositive),
		}},
		{ClusterID: 1, Label: "split", Items: []WeightedItem{
			retroItem("3", models.ImpactHelped, 1.0, models.SentimentPositive),
			retroItem("4", models.ImpactHurt, 1.0, models.SentimentNegative),
		}},
	}
	records := DetectDissent(clusters, retroField(t), DefaultConfig())
	require.Len(t, records, 2)
	assert.Equal(t, "split", records[0].Label, "dissenting clusters come first")
	assert.Equal(t, "calm", records[1].Label)
}

func TestIsBimodal(t *testing.T) {
	assert.True(t, isBimodal(map[string]float64{"A": 0.5, "B": 0.5}, 0.30))
	assert.True(t, isBimodal(map[string]float64{"A": 0.4, "B": 0.35, "C": 0.25}, 0.30))
	assert.False(t, isBimodal(map[string]float64{"A": 0.75, "B": 0.25}, 0.30))
	assert.False(t, isBimodal(map[string]float64{"A": 1.0}, 0.30))
	assert.False(t, isBimodal(nil, 0.30))
}
