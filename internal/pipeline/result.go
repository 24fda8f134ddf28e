package pipeline

import (
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/vibematch/internal/matching"
)

// Outcome is how a run ended.
type Outcome string

// Run outcomes.
const (
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFallback  Outcome = "fallback"
	OutcomeFailed    Outcome = "failed"
)

// Result is the answer for one prediction run. Label is empty when the run
// failed or the fallback passed an unparseable reply through.
type Result struct {
	ID          uuid.UUID `json:"id"`
	Label       string    `json:"label,omitempty"`
	Explanation string    `json:"explanation,omitempty"`
	Raw         string    `json:"raw"`
	Outcome     Outcome   `json:"outcome"`
	Attempts    int       `json:"attempts"`
	CompletedAt time.Time `json:"completed_at"`
}

func resultFromReport(id uuid.UUID, report *matching.Report) *Result {
	r := &Result{
		ID:          id,
		Label:       report.Label,
		Explanation: report.Explanation,
		Raw:         report.Raw,
		Attempts:    report.Calls(),
		CompletedAt: time.Now().UTC(),
	}

	switch report.State {
	case matching.StateSucceeded:
		r.Outcome = OutcomeSucceeded
	case matching.StateFallback:
		r.Outcome = OutcomeFallback
	default:
		r.Outcome = OutcomeFailed
	}

	return r
}
