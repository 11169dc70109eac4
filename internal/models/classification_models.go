package models

// Category determines which category-specific dimension a run classifies
// against. Event feedback defaults to CategoryFeedbackRetrospective.
type Category string

const (
	CategoryBinaryProposal        Category = "BINARY_PROPOSAL"
	CategoryPrioritizationRanking Category = "PRIORITIZATION_RANKING"
	CategoryBrainstormingIdeation Category = "BRAINSTORMING_IDEATION"
	CategoryFeedbackRetrospective Category = "FEEDBACK_RETROSPECTIVE"
	CategoryForecastingPlanning   Category = "FORECASTING_PLANNING"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryBinaryProposal, CategoryPrioritizationRanking,
		CategoryBrainstormingIdeation, CategoryFeedbackRetrospective,
		CategoryForecastingPlanning:
		return true
	}
	return false
}

type Sentiment string

const (
	SentimentPositive Sentiment = "POSITIVE"
	SentimentNeutral  Sentiment = "NEUTRAL"
	SentimentNegative Sentiment = "NEGATIVE"
)

func (s Sentiment) Valid() bool {
	return s == SentimentPositive || s == SentimentNeutral || s == SentimentNegative
}

// Emotion labels follow Plutchik's eight basic emotions. Empty means the
// classifier found no dominant emotion.
type Emotion string

const (
	EmotionAnticipation Emotion = "ANTICIPATION"
	EmotionJoy          Emotion = "JOY"
	EmotionTrust        Emotion = "TRUST"
	EmotionSurprise     Emotion = "SURPRISE"
	EmotionAnger        Emotion = "ANGER"
	EmotionFear         Emotion = "FEAR"
	EmotionSadness      Emotion = "SADNESS"
	EmotionDisgust      Emotion = "DISGUST"
)

func (e Emotion) Valid() bool {
	switch e {
	case "", EmotionAnticipation, EmotionJoy, EmotionTrust, EmotionSurprise,
		EmotionAnger, EmotionFear, EmotionSadness, EmotionDisgust:
		return true
	}
	return false
}

// EvidenceType ranks how well-substantiated a claim is, strongest first.
type EvidenceType string

const (
	EvidenceData          EvidenceType = "DATA"
	EvidenceBenchmark     EvidenceType = "BENCHMARK"
	EvidenceCitation      EvidenceType = "CITATION"
	EvidenceExpertOpinion EvidenceType = "EXPERT_OPINION"
	EvidenceAnecdote      EvidenceType = "ANECDOTE"
	EvidenceAssumption    EvidenceType = "ASSUMPTION"
)

func (e EvidenceType) Valid() bool {
	switch e {
	case EvidenceData, EvidenceBenchmark, EvidenceCitation,
		EvidenceExpertOpinion, EvidenceAnecdote, EvidenceAssumption:
		return true
	}
	return false
}

// Stance is the opposition stance toward the event/speaker/aspect.
type Stance string

const (
	StanceYes   Stance = "YES"
	StanceNo    Stance = "NO"
	StanceMixed Stance = "MIXED"
)

func (s Stance) Valid() bool {
	return s == StanceYes || s == StanceNo || s == StanceMixed
}

// Category-specific option values.
const (
	// BINARY_PROPOSAL is_agreeing
	AgreeYes   = "YES"
	AgreeNo    = "NO"
	AgreeMaybe = "MAYBE"

	// PRIORITIZATION_RANKING priority_class (MoSCoW)
	PriorityMust   = "MUST"
	PriorityShould = "SHOULD"
	PriorityCould  = "COULD"
	PriorityWont   = "WONT"

	// BRAINSTORMING_IDEATION actionability
	ActionQuickWin      = "QUICK_WIN"
	ActionNeedsResearch = "NEEDS_RESEARCH"
	ActionBigBet        = "BIG_BET"
	ActionNotUseful     = "NOT_USEFUL"

	// FEEDBACK_RETROSPECTIVE impact_direction
	ImpactHelped  = "HELPED"
	ImpactNeutral = "NEUTRAL"
	ImpactHurt    = "HURT"

	// FORECASTING_PLANNING delivery_status
	DeliveryAhead   = "AHEAD"
	DeliveryOnTrack = "ON_TRACK"
	DeliveryAtRisk  = "AT_RISK"
	DeliveryBlocked = "BLOCKED"
)

// ClassifiedItem is one feedback message after classification. Option holds
// the category-specific dimension value; its domain depends on the run's
// category.
type ClassifiedItem struct {
	ID                string       `json:"id"`
	Theme             string       `json:"theme"`
	Sentiment         Sentiment    `json:"sentiment"`
	Emotion           Emotion      `json:"emotion,omitempty"`
	IsCriticalOpinion bool         `json:"is_critical_opinion"`
	RiskFlag          bool         `json:"risk_flag"`
	Confidence        float64      `json:"confidence"`
	Relevancy         int          `json:"relevancy"`
	Stance            Stance       `json:"is_against"`
	EvidenceType      EvidenceType `json:"evidence_type"`
	Option            string       `json:"option"`
	Text              string       `json:"text"`
}
