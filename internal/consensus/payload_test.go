package consensus

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedsight/feedsight/internal/models"
)

func TestBuildPayloadShape(t *testing.T) {
	bullets := Bullets{
		Agree:    []Bullet{{Text: "venue: HELPED"}},
		Disagree: []Bullet{{Text: "schedule: split"}},
	}
	boards := Boards{
		Evidence: []EvidenceEntry{
			{ThemeLabel: "venue", EvidenceType: models.EvidenceData, Score: 2.0, Weight: 1.5, Text: "great acoustics"},
			{ThemeLabel: "schedule", EvidenceType: models.EvidenceAnecdote, Score: 1.0, Weight: 1.0, Text: "ran long"},
		},
	}
	items := []WeightedItem{
		{ClassifiedItem: models.ClassifiedItem{Stance: models.StanceYes, Sentiment: models.SentimentNegative, Text: "not worth it"}, Weight: 1.4},
		{ClassifiedItem: models.ClassifiedItem{Stance: models.StanceNo, Sentiment: models.SentimentPositive, Text: "loved it"}, Weight: 1.8},
	}

	payload := BuildPayload(bullets, boards, items)
	assert.Equal(t, []string{"venue: HELPED"}, payload.Summary.AgreedTopics)
	assert.Equal(t, []string{"schedule: split"}, payload.Summary.DisagreedTopics)
	require.Len(t, payload.Evidence.Top10WeightedTexts, 2)
	require.Len(t, payload.Evidence.HighlightsTop3, 2)

	require.Len(t, payload.Evidence.AgainstTop7, 1, "only opposing-stance items qualify")
	against := payload.Evidence.AgainstTop7[0]
	assert.Equal(t, "not worth it", against.Text)
	assert.Equal(t, "YES", against.IsAgainst)
	assert.Equal(t, "NEGATIVE", against.Sentiment)
	assert.InDelta(t, 1.4, against.Weight, 1e-9)
}

func TestBuildPayloadSerializesToPrimitives(t *testing.T) {
	payload := BuildPayload(Bullets{}, Boards{}, nil)
	data, err := json.Marshal(payload)
	require.NoError(t, err)

	var roundTrip map[string]any
	require.NoError(t, json.Unmarshal(data, &roundTrip))
	assert.Contains(t, roundTrip, "summary")
	assert.Contains(t, roundTrip, "evidence")
}

func TestAgainstRecordsRankedByWeight(t *testing.T) {
	items := []WeightedItem{
		{ClassifiedItem: models.ClassifiedItem{Stance: models.StanceYes, Text: "light"}, Weight: 0.5},
		{ClassifiedItem: models.ClassifiedItem{Stance: models.StanceYes, Text: "heavy"}, Weight: 1.9},
	}
	records := againstRecords(items, 7)
	require.Len(t, records, 2)
	assert.Equal(t, "heavy", records[0].Text)
}

func TestParseSummaryValid(t *testing.T) {
	data := []byte(`{
		"main_summary": "Attendees praised the venue.",
		"conflicting_statement": "Opinions split on the schedule.",
		"top_weighted_points": ["great acoustics", "ran long"]
	}`)
	summary, err := ParseSummary(data)
	require.NoError(t, err)
	assert.Equal(t, "Attendees praised the venue.", summary.MainSummary)
	assert.Len(t, summary.TopWeightedPoints, 2)
}

func TestParseSummaryMissingKey(t *testing.T) {
	data := []byte(`{"main_summary": "x", "conflicting_statement": "y"}`)
	_, err := ParseSummary(data)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSummaryContract)
}

func TestParseSummaryMalformed(t *testing.T) {
	_, err := ParseSummary([]byte(`not json`))
	assert.ErrorIs(t, err, ErrSummaryContract)
}

func TestLogNonVerbatimPoints(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	payload := models.ReportPayload{
		Evidence: models.PayloadEvidence{
			Top10WeightedTexts: []models.EvidenceRecord{{Text: "the audio kept cutting out"}},
		},
	}
	summary := models.Summary{
		TopWeightedPoints: []string{"audio kept cutting", "entirely invented point"},
	}
	LogNonVerbatimPoints(logger, summary, payload)

	out := buf.String()
	assert.NotContains(t, out, "audio kept cutting\"")
	assert.Contains(t, out, "entirely invented point")
}
