package models

// Summary is the summarizer's structured response.
type Summary struct {
	MainSummary          string   `json:"main_summary"`
	ConflictingStatement string   `json:"conflicting_statement"`
	TopWeightedPoints    []string `json:"top_weighted_points"`
}

// EvidenceRecord is a flattened evidence-board row handed to the summarizer.
type EvidenceRecord struct {
	ThemeLabel   string  `json:"theme_label"`
	EvidenceType string  `json:"evidence_type"`
	Score        float64 `json:"score"`
	Weight       float64 `json:"w"`
	Text         string  `json:"text"`
}

// AgainstRecord is a weighted opposing-stance quote handed to the summarizer.
type AgainstRecord struct {
	Weight    float64 `json:"weight"`
	Text      string  `json:"text"`
	IsAgainst string  `json:"is_against"`
	Sentiment string  `json:"sentiment"`
}

// ReportPayload is the exact structure the summarizer consumes. Every field
// bottoms out in JSON-native primitives.
type ReportPayload struct {
	Summary  PayloadSummary  `json:"summary"`
	Evidence PayloadEvidence `json:"evidence"`
}

type PayloadSummary struct {
	AgreedTopics    []string `json:"agreed_topics"`
	DisagreedTopics []string `json:"disagreed_topics"`
}

type PayloadEvidence struct {
	Top10WeightedTexts []EvidenceRecord `json:"top10_weighted_texts"`
	AgainstTop7        []AgainstRecord  `json:"against_top7"`
	HighlightsTop3     []EvidenceRecord `json:"highlights_top3"`
}

type ReportStatus string

const (
	ReportPending   ReportStatus = "PENDING"
	ReportRunning   ReportStatus = "RUNNING"
	ReportCompleted ReportStatus = "COMPLETED"
	ReportFailed    ReportStatus = "FAILED"
	// ReportInsufficient distinguishes "not enough feedback yet" from a
	// transient or contract failure; callers show different guidance.
	ReportInsufficient ReportStatus = "INSUFFICIENT_FEEDBACK"
)

// FailureKind records why a run failed or degraded, so callers can decide
// whether retrying is worthwhile.
type FailureKind string

const (
	// FailureTransient covers external-capability outages. A retry may
	// succeed.
	FailureTransient FailureKind = "TRANSIENT"
	// FailureContract covers data-contract violations. A retry will hit the
	// same bug.
	FailureContract FailureKind = "CONTRACT"
)

// Report is the organizer-facing result of one analysis run.
type Report struct {
	RunID            string       `json:"run_id"`
	EventID          string       `json:"event_id"`
	EventTitle       string       `json:"event_title"`
	Category         Category     `json:"category"`
	Status           ReportStatus `json:"status"`
	FeedbackCount    int          `json:"feedback_count"`
	Summary          Summary      `json:"summary"`
	SummaryFallback  bool         `json:"summary_fallback"`
	FailureKind      FailureKind  `json:"failure_kind,omitempty"`
	WhatWeAgreeOn    []string     `json:"what_we_agree_on"`
	WhereWeDisagree  []string     `json:"where_we_disagree"`
	WhatToDecideNext []string     `json:"what_to_decide_next"`
}
