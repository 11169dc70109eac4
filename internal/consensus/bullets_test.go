package consensus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedsight/feedsight/internal/models"
)

func panelFixture(id int, label, option string, consensus int, weight, confidence float64) SignalPanel {
	return SignalPanel{
		ClusterID:      id,
		Label:          label,
		TotalWeight:    weight,
		Consensus:      consensus,
		DominantOption: option,
		OptionShares:   map[string]float64{option: 0.8},
		AvgConfidence:  confidence,
		HasConfidence:  true,
	}
}

func TestAgreeBulletsFilterAndOrder(t *testing.T) {
	panels := []SignalPanel{
		panelFixture(0, "great talks", models.ImpactHelped, 85, 3.0, 0.9),
		panelFixture(1, "venue", models.ImpactHelped, 92, 1.0, 0.8),
		panelFixture(2, "audio issues", models.ImpactHurt, 95, 2.0, 0.9),
		panelFixture(3, "catering", models.ImpactHelped, 60, 2.0, 0.9),
	}
	bullets := agreeBullets(panels, models.CategoryFeedbackRetrospective, DefaultConfig())
	require.Len(t, bullets, 2, "HURT and sub-threshold clusters excluded")
	assert.Equal(t, "venue", bullets[0].Label, "highest consensus first")
	assert.Equal(t, "great talks", bullets[1].Label)
}

func TestAgreeBulletsCap(t *testing.T) {
	var panels []SignalPanel
	for i := 0; i < 8; i++ {
		panels = append(panels, panelFixture(i, "theme", models.ImpactHelped, 80+i, 1.0, 0.9))
	}
	bullets := agreeBullets(panels, models.CategoryFeedbackRetrospective, DefaultConfig())
	assert.Len(t, bullets, 5)
}

func TestDisagreeBulletsUseDissentRecords(t *testing.T) {
	panels := []SignalPanel{
		panelFixture(0, "schedule", models.ImpactHelped, 10, 2.0, 0.9),
		panelFixture(1, "venue", models.ImpactHelped, 90, 1.0, 0.9),
	}
	dissent := map[int]DissentRecord{
		0: {ClusterID: 0, Dissent: true, Reasons: []string{"Low consensus (10 < 20)", "a", "b", "c"}},
		1: {ClusterID: 1, Dissent: false},
	}
	bullets := disagreeBullets(panels, dissent, DefaultConfig())
	require.Len(t, bullets, 1)
	assert.Equal(t, "schedule", bullets[0].Label)
	assert.Len(t, bullets[0].Reasons, 3, "reasons capped at three")
}

func TestNextBulletsSelection(t *testing.T) {
	panels := []SignalPanel{
		panelFixture(0, "borderline", models.ImpactHelped, 60, 1.0, 0.9), // consensus in [55,70)
		panelFixture(1, "shaky", models.ImpactHelped, 90, 1.0, 0.3),      // low confidence
		panelFixture(2, "settled", models.ImpactHelped, 90, 1.0, 0.9),
	}
	bullets := nextBullets(panels, DefaultConfig())
	require.Len(t, bullets, 2)
	assert.Equal(t, "shaky", bullets[0].Label, "lowest confidence first")
	assert.Equal(t, "clarify before deciding", bullets[0].Action)
	assert.Equal(t, "borderline", bullets[1].Label)
	assert.Equal(t, "finalize decision", bullets[1].Action)
}

func TestNextActionWeakEvidence(t *testing.T) {
	p := panelFixture(0, "pricing", models.ImpactHelped, 60, 1.0, 0.9)
	p.TopEvidence = []EvidenceEntry{
		{EvidenceType: models.EvidenceAssumption},
		{EvidenceType: models.EvidenceAnecdote},
		{EvidenceType: models.EvidenceData},
	}
	assert.Equal(t, "clarify before deciding", nextAction(p, DefaultConfig()))

	p.TopEvidence = []EvidenceEntry{
		{EvidenceType: models.EvidenceData},
		{EvidenceType: models.EvidenceBenchmark},
		{EvidenceType: models.EvidenceAnecdote},
	}
	assert.Equal(t, "finalize decision", nextAction(p, DefaultConfig()))
}

func TestBuildBoards(t *testing.T) {
	panels := []SignalPanel{
		{
			ClusterID: 0, Label: "audio issues", TotalWeight: 2.7, Consensus: 100,
			DominantOption: models.ImpactHurt, OptionShares: map[string]float64{models.ImpactHurt: 1.0},
			Polarity: -1.0, ItemCount: 2,
			EmotionDistribution: map[string]float64{"ANGER": 0.6, "SADNESS": 0.3},
			TopEvidence: []EvidenceEntry{
				{ThemeLabel: "audio issues", Score: 1.4, Weight: 1.0, Text: "a"},
			},
		},
		{
			ClusterID: 1, Label: "venue", TotalWeight: 1.0, Consensus: 80,
			DominantOption: models.ImpactHelped, OptionShares: map[string]float64{models.ImpactHelped: 0.9},
			Polarity: 0.8, ItemCount: 1,
			TopEvidence: []EvidenceEntry{
				{ThemeLabel: "venue", Score: 2.0, Weight: 1.5, Text: "b"},
			},
		},
	}
	boards := BuildBoards(panels, DefaultConfig())

	require.Len(t, boards.Themes, 2)
	assert.Equal(t, "audio issues", boards.Themes[0].Label)
	assert.InDelta(t, 1.0, boards.Themes[0].DominantShare, 1e-9)

	require.Len(t, boards.Evidence, 2)
	assert.Equal(t, "b", boards.Evidence[0].Text, "evidence board sorted by score")

	assert.InDelta(t, 1.0, boards.SentimentTable["audio issues"]["NEGATIVE"], 1e-9)
	assert.InDelta(t, 1.0, boards.SentimentTable["venue"]["POSITIVE"], 1e-9)

	// Per-cluster emotion tables renormalize to sum 1.
	audio := boards.EmotionTables["audio issues"]
	require.NotNil(t, audio)
	assert.InDelta(t, 1.0, audio["ANGER"]+audio["SADNESS"], 1e-9)
}

func TestSentimentBanding(t *testing.T) {
	panels := []SignalPanel{
		{Label: "audio", Polarity: -0.25},
		{Label: "venue", Polarity: 0.25},
		{Label: "food", Polarity: 0.0},
		{Label: "talks", Polarity: -0.24},
	}
	table := sentimentTable(panels)
	require.Len(t, table, 4)
	assert.InDelta(t, 1.0, table["audio"]["NEGATIVE"], 1e-9)
	assert.InDelta(t, 1.0, table["venue"]["POSITIVE"], 1e-9)
	assert.InDelta(t, 1.0, table["food"]["NEUTRAL"], 1e-9)
	assert.InDelta(t, 1.0, table["talks"]["NEUTRAL"], 1e-9)
}
