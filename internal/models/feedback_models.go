package models

import "time"

type InputType string

const (
	InputTypeText  InputType = "text"
	InputTypeAudio InputType = "audio"
)

type QualityDecision string

const (
	QualityAccept  QualityDecision = "ACCEPT"
	QualityFlagged QualityDecision = "FLAGGED"
	QualityReject  QualityDecision = "REJECT"
)

type Feedback struct {
	ID          string          `json:"id"`
	EventID     string          `json:"event_id"`
	Text        string          `json:"text"`
	InputType   InputType       `json:"input_type"`
	Quality     QualityDecision `json:"quality_decision,omitempty"`
	SubmittedAt time.Time       `json:"submitted_at"`
}

// FeedbackEvent is the intake topic payload.
type FeedbackEvent struct {
	Feedback
	EventTitle string `json:"event_title"`
}

// ReportRequest is the report-request topic payload.
type ReportRequest struct {
	EventID     string   `json:"event_id"`
	EventTitle  string   `json:"event_title"`
	Description string   `json:"description,omitempty"`
	Category    Category `json:"category,omitempty"`
}
