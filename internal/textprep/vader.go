package textprep

import (
	"github.com/jonreiter/govader"

	"github.com/feedsight/feedsight/internal/models"
)

var analyzer = govader.NewSentimentIntensityAnalyzer()

// VaderSentiment scores text with VADER and bands the compound score into a
// sentiment label. Used as a cheap cross-check against the classifier's
// sentiment, not as the source of truth.
func VaderSentiment(text string) (float64, models.Sentiment) {
	plain := MarkdownToText(text)
	score := analyzer.PolarityScores(plain).Compound

	var label models.Sentiment
	switch {
	case score >= 0.20:
		label = models.SentimentPositive
	case score <= -0.20:
		label = models.SentimentNegative
	default:
		label = models.SentimentNeutral
	}
	return score, label
}

// SentimentAgrees reports whether the classifier's sentiment matches what
// VADER reads off the raw text. Neutral never counts as a disagreement.
func SentimentAgrees(classified models.Sentiment, text string) bool {
	_, vaderLabel := VaderSentiment(text)
	if classified == models.SentimentNeutral || vaderLabel == models.SentimentNeutral {
		return true
	}
	return classified == vaderLabel
}
