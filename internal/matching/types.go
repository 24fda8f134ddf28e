package matching

// Candidate is what the parser extracted from a single model reply.
// An empty Label means no label could be extracted.
type Candidate struct {
	Label       string `json:"label"`
	Explanation string `json:"explanation"`
	Raw         string `json:"raw"`
}

// HasLabel reports whether the parser found any candidate label.
func (c Candidate) HasLabel() bool {
	return c.Label != ""
}

// Reason explains why an outcome is invalid.
type Reason string

// Invalid outcome reasons.
const (
	ReasonNoMatch Reason = "no-match"
	ReasonRefusal Reason = "refusal"
)

// Outcome is the validation verdict for one candidate. Valid outcomes carry a
// canonical label; invalid ones carry a Reason.
type Outcome struct {
	Valid  bool   `json:"valid"`
	Label  string `json:"label,omitempty"`
	Reason Reason `json:"reason,omitempty"`
	Raw    string `json:"raw"`
}

// Attempt records a single inference round within one run.
type Attempt struct {
	Number         int     `json:"number"`
	Outcome        Outcome `json:"outcome"`
	TransportError bool    `json:"transport_error"`
}

// State is a terminal state of the retry orchestrator.
type State string

// Terminal orchestrator states.
const (
	StateSucceeded State = "succeeded"
	StateFallback  State = "fallback"
	StateFailed    State = "failed"
)

// Report is the orchestrator's answer for one run. Label is empty when the
// fallback had to pass the raw reply through unchanged, and for failed runs.
type Report struct {
	State       State     `json:"state"`
	Label       string    `json:"label,omitempty"`
	Explanation string    `json:"explanation"`
	Raw         string    `json:"raw"`
	Attempts    []Attempt `json:"attempts"`
}

// Calls returns the number of inference calls made during the run.
func (r *Report) Calls() int {
	return len(r.Attempts)
}
