package consensus

import (
	"sort"

	"github.com/feedsight/feedsight/internal/models"
)

const (
	quoteMinConfidence  = 0.7
	maxQuotes           = 2
	maxEvidencePerPoint = 2
	maxPoints           = 5
)

// BuildAnalytics derives flat per-event counts from classified items,
// independent of the clustering pipeline. Used for dashboards and as raw
// material for the fallback report.
func BuildAnalytics(eventID string, items []models.ClassifiedItem) models.EventAnalytics {
	analytics := models.EventAnalytics{
		EventID:               eventID,
		TotalFeedback:         len(items),
		SentimentDistribution: make(map[string]float64),
	}
	if len(items) == 0 {
		return analytics
	}

	strengths := make(map[string]*themeTally)
	issues := make(map[string]*themeTally)

	for _, it := range items {
		switch it.Sentiment {
		case models.SentimentPositive:
			analytics.PositiveCount++
			tallyTheme(strengths, it)
		case models.SentimentNegative:
			analytics.NegativeCount++
			tallyTheme(issues, it)
		default:
			analytics.MixedCount++
		}
		if it.Confidence >= quoteMinConfidence && len(analytics.RepresentativeQuotes) < maxQuotes {
			analytics.RepresentativeQuotes = append(analytics.RepresentativeQuotes, models.AnalyticsQuote{
				Text:       it.Text,
				Confidence: it.Confidence,
			})
		}
	}

	total := float64(len(items))
	analytics.SatisfactionScore = 100.0 * (float64(analytics.PositiveCount) + 0.5*float64(analytics.MixedCount)) / total
	analytics.SentimentDistribution[string(models.SentimentPositive)] = 100.0 * float64(analytics.PositiveCount) / total
	analytics.SentimentDistribution[string(models.SentimentNegative)] = 100.0 * float64(analytics.NegativeCount) / total
	analytics.SentimentDistribution[string(models.SentimentNeutral)] = 100.0 * float64(analytics.MixedCount) / total

	analytics.SpecificStrengths = topPoints(strengths)
	analytics.SpecificIssues = topPoints(issues)
	return analytics
}

func tallyTheme(tallies map[string]*themeTally, it models.ClassifiedItem) {
	t, ok := tallies[it.Theme]
	if !ok {
		t = &themeTally{theme: it.Theme}
		tallies[it.Theme] = t
	}
	t.mentions++
	if len(t.evidence) < maxEvidencePerPoint {
		t.evidence = append(t.evidence, it.Text)
	}
}

type themeTally struct {
	theme    string
	mentions int
	evidence []string
}

func topPoints(tallies map[string]*themeTally) []models.AnalyticsPoint {
	points := make([]models.AnalyticsPoint, 0, len(tallies))
	for _, t := range tallies {
		points = append(points, models.AnalyticsPoint{
			Theme:    t.theme,
			Mentions: t.mentions,
			Evidence: t.evidence,
		})
	}
	sort.SliceStable(points, func(i, j int) bool {
		if points[i].Mentions != points[j].Mentions {
			return points[i].Mentions > points[j].Mentions
		}
		return points[i].Theme < points[j].Theme
	})
	if len(points) > maxPoints {
		points = points[:maxPoints]
	}
	return points
}
