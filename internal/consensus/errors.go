package consensus

import (
	"errors"
	"fmt"
)

// ErrInsufficientFeedback is returned when too few items survive filtering
// and classification for aggregation to say anything meaningful.
var ErrInsufficientFeedback = errors.New("not enough classified feedback to aggregate")

// ErrSummaryContract is returned when the summarizer's structured response
// is missing one of its required keys.
var ErrSummaryContract = errors.New("summarizer response violates the response contract")

// ValidationError marks a data-contract violation in pipeline input. It is a
// bug or bad upstream data, never retried.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
