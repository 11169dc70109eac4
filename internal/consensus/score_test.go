package consensus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedsight/feedsight/internal/models"
)

func retroField(t *testing.T) CategoryField {
	t.Helper()
	f, ok := FieldForCategory(models.CategoryFeedbackRetrospective)
	require.True(t, ok)
	return f
}

func retroItem(id, option string, weight float64, sentiment models.Sentiment) WeightedItem {
	return WeightedItem{
		ClassifiedItem: models.ClassifiedItem{
			ID:        id,
			Theme:     "venue",
			Sentiment: sentiment,
			Option:    option,
			Text:      "quote " + id,
		},
		Weight: weight,
	}
}

func TestConsensusScoreBounds(t *testing.T) {
	for m := 1; m <= 5; m++ {
		for p := 0.0; p <= 1.0; p += 0.05 {
			score := consensusScore(p, m)
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, 100)
		}
	}
}

func TestConsensusScoreUnanimous(t *testing.T) {
	assert.Equal(t, 100, consensusScore(1.0, 3))
	assert.Equal(t, 100, consensusScore(0.0, 1))
}

func TestConsensusScoreUniform(t *testing.T) {
	assert.Equal(t, 0, consensusScore(1.0/3.0, 3))
	assert.Equal(t, 0, consensusScore(0.25, 4))
}

func TestConsensusSixFourSplit(t *testing.T) {
	// 6 HELPED vs 4 HURT at weight 1.0 over 3 options: p=0.6,
	// round(100*(0.6-1/3)/(1-1/3)) = 40.
	var items []WeightedItem
	for i := 0; i < 6; i++ {
		items = append(items, retroItem("h", models.ImpactHelped, 1.0, models.SentimentPositive))
	}
	for i := 0; i < 4; i++ {
		items = append(items, retroItem("x", models.ImpactHurt, 1.0, models.SentimentNegative))
	}
	stats := computeOptionStats(items, retroField(t))
	assert.Equal(t, 40, stats.consensus)
	assert.Equal(t, models.ImpactHelped, stats.dominant)
	assert.InDelta(t, 0.6, stats.shares[models.ImpactHelped], 1e-9)
	assert.InDelta(t, 0.4, stats.shares[models.ImpactHurt], 1e-9)
}

func TestOptionStatsZeroWeight(t *testing.T) {
	stats := computeOptionStats(nil, retroField(t))
	assert.Equal(t, 0, stats.consensus)
	assert.Empty(t, stats.dominant)
	assert.Empty(t, stats.shares)
}

func TestOptionStatsTieBreaksByDeclaredOrder(t *testing.T) {
	items := []WeightedItem{
		retroItem("1", models.ImpactHurt, 1.0, models.SentimentNegative),
		retroItem("2", models.ImpactHelped, 1.0, models.SentimentPositive),
	}
	stats := computeOptionStats(items, retroField(t))
	// HELPED is declared before HURT, so it wins the exact tie.
	assert.Equal(t, models.ImpactHelped, stats.dominant)
}

func TestScoreClusterAggregates(t *testing.T) {
	cluster := ThemeCluster{
		ClusterID: 0,
		Label:     "audio issues",
		Items: []WeightedItem{
			{ClassifiedItem: models.ClassifiedItem{
				Sentiment: models.SentimentNegative, Emotion: models.EmotionAnger,
				Confidence: 0.9, Option: models.ImpactHurt, Text: "mic kept cutting out",
				EvidenceType: models.EvidenceAnecdote,
			}, Weight: 1.5},
			{ClassifiedItem: models.ClassifiedItem{
				Sentiment: models.SentimentNegative, Emotion: models.EmotionSadness,
				Confidence: 0.7, Option: models.ImpactHurt, Text: "could not hear the panel",
				EvidenceType: models.EvidenceAnecdote,
			}, Weight: 1.2},
		},
	}
	panel := scoreCluster(cluster, retroField(t), DefaultConfig())
	assert.Equal(t, 100, panel.Consensus)
	assert.Equal(t, models.ImpactHurt, panel.DominantOption)
	assert.InDelta(t, -1.0, panel.Polarity, 1e-9)
	assert.True(t, panel.HasConfidence)
	assert.InDelta(t, (0.9*1.5+0.7*1.2)/2.7, panel.AvgConfidence, 1e-9)
	assert.InDelta(t, 1.5/2.7, panel.EmotionDistribution[string(models.EmotionAnger)], 1e-9)
	assert.Equal(t, "mic kept cutting out", panel.Quotes[0])
}

func TestBuildSignalPanelsSortOrder(t *testing.T) {
	clusters := []ThemeCluster{
		{ClusterID: 0, Label: "light", Items: []WeightedItem{retroItem("1", models.ImpactHelped, 0.5, models.SentimentPositive)}},
		{ClusterID: 1, Label: "heavy", Items: []WeightedItem{retroItem("2", models.ImpactHelped, 2.0, models.SentimentPositive)}},
	}
	panels := BuildSignalPanels(clusters, retroField(t), DefaultConfig())
	require.Len(t, panels, 2)
	assert.Equal(t, "heavy", panels[0].Label)
	assert.Equal(t, "light", panels[1].Label)
}

func TestRankEvidenceStable(t *testing.T) {
	cluster := ThemeCluster{
		Label: "venue",
		Items: []WeightedItem{
			{ClassifiedItem: models.ClassifiedItem{EvidenceType: models.EvidenceAnecdote, Text: "first"}, Weight: 1.0},
			{ClassifiedItem: models.ClassifiedItem{EvidenceType: models.EvidenceAnecdote, Text: "second"}, Weight: 1.0},
			{ClassifiedItem: models.ClassifiedItem{EvidenceType: models.EvidenceData, Text: "third"}, Weight: 1.0},
		},
	}
	entries := rankEvidence(cluster, 0)
	require.Len(t, entries, 3)
	assert.Equal(t, "third", entries[0].Text)
	// Identical scores keep input order.
	assert.Equal(t, "first", entries[1].Text)
	assert.Equal(t, "second", entries[2].Text)
}
