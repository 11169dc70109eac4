package models

// AnalyticsQuote pairs a quoted remark with the confidence the classifier
// assigned to the item it came from.
type AnalyticsQuote struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

// AnalyticsPoint is one strength or issue with up to two supporting quotes.
type AnalyticsPoint struct {
	Theme    string   `json:"theme"`
	Mentions int      `json:"mentions"`
	Evidence []string `json:"evidence"`
}

// EventAnalytics holds aggregate counts derived from classified feedback,
// independent of the consensus pipeline.
type EventAnalytics struct {
	EventID               string             `json:"event_id"`
	TotalFeedback         int                `json:"total_feedback"`
	PositiveCount         int                `json:"positive_count"`
	NegativeCount         int                `json:"negative_count"`
	MixedCount            int                `json:"mixed_count"`
	SatisfactionScore     float64            `json:"satisfaction_score"`
	SpecificStrengths     []AnalyticsPoint   `json:"specific_strengths"`
	SpecificIssues        []AnalyticsPoint   `json:"specific_issues"`
	RepresentativeQuotes  []AnalyticsQuote   `json:"representative_quotes"`
	SentimentDistribution map[string]float64 `json:"sentiment_distribution"`
}
