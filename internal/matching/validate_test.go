package matching_test

import (
	"testing"

	"github.com/JaimeStill/vibematch/internal/matching"
	"github.com/JaimeStill/vibematch/internal/vocabulary"
)

func TestValidate(t *testing.T) {
	v := matching.NewValidator(vocabulary.Default())

	tests := []struct {
		name   string
		raw    string
		valid  bool
		label  string
		reason matching.Reason
	}{
		{"structured valid", "**animal:** lion\n**Explanation:** regal", true, "lion", ""},
		{"synonym resolves", "**animal:** Kitten\n**Explanation:** playful", true, "cat", ""},
		{"first line valid", "lion\nThis represents...", true, "lion", ""},
		{"out of vocabulary", "**animal:** invalid_animal\n**Explanation:** ...", false, "", matching.ReasonNoMatch},
		{"random text", "Some random text without animal", false, "", matching.ReasonNoMatch},
		{"empty reply", "", false, "", matching.ReasonNoMatch},
		{"refusal", "I'm sorry, but I can't help with that.", false, "", matching.ReasonRefusal},
		{"refusal naming a label", "**animal:** lion\nSorry, I cannot judge people.", false, "", matching.ReasonRefusal},
		{"refusal upper case", "**animal:** tiger\nSORRY", false, "", matching.ReasonRefusal},
		{"refusal mid word", "**animal:** owl\nNo need to feel sorrylike.", false, "", matching.ReasonRefusal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := v.Validate(matching.Parse(tt.raw))

			if got.Valid != tt.valid {
				t.Fatalf("Valid = %v, want %v (outcome %+v)", got.Valid, tt.valid, got)
			}
			if got.Label != tt.label {
				t.Errorf("Label = %q, want %q", got.Label, tt.label)
			}
			if got.Reason != tt.reason {
				t.Errorf("Reason = %q, want %q", got.Reason, tt.reason)
			}
			if got.Raw != tt.raw {
				t.Errorf("Raw = %q, want %q", got.Raw, tt.raw)
			}
		})
	}
}

func TestIsRefusal(t *testing.T) {
	if !matching.IsRefusal("So SoRrY") {
		t.Error("mixed case refusal not detected")
	}
	if matching.IsRefusal("**animal:** lion") {
		t.Error("plain reply flagged as refusal")
	}
}
