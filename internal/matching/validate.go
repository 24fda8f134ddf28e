package matching

import (
	"strings"

	"github.com/JaimeStill/vibematch/internal/vocabulary"
)

// refusalMarker flags a reply in which the model declined to answer.
const refusalMarker = "sorry"

// Validator maps candidates onto the vocabulary.
type Validator struct {
	reg *vocabulary.Registry
}

// NewValidator creates a Validator backed by reg.
func NewValidator(reg *vocabulary.Registry) *Validator {
	return &Validator{reg: reg}
}

// Validate returns a Valid outcome only when the reply is not a refusal and
// its candidate canonicalizes. A refusal is rejected even when it happens to
// name a real animal.
func (v *Validator) Validate(c Candidate) Outcome {
	if IsRefusal(c.Raw) {
		return Outcome{Reason: ReasonRefusal, Raw: c.Raw}
	}

	if !c.HasLabel() {
		return Outcome{Reason: ReasonNoMatch, Raw: c.Raw}
	}

	label, ok := v.reg.Canonicalize(c.Label)
	if !ok {
		return Outcome{Reason: ReasonNoMatch, Raw: c.Raw}
	}

	return Outcome{Valid: true, Label: label, Raw: c.Raw}
}

// IsRefusal reports whether raw contains the refusal marker in any case.
func IsRefusal(raw string) bool {
	return strings.Contains(strings.ToLower(raw), refusalMarker)
}
