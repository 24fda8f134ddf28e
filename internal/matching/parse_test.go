package matching_test

import (
	"testing"

	"github.com/JaimeStill/vibematch/internal/matching"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		raw         string
		label       string
		explanation string
	}{
		{
			name:        "structured bold format",
			raw:         "**animal:** lion\n**Explanation:** x",
			label:       "lion",
			explanation: "**Explanation:** x",
		},
		{
			name:        "plain key",
			raw:         "animal: tiger\nExplanation: This shows...",
			label:       "tiger",
			explanation: "Explanation: This shows...",
		},
		{
			name:  "capitalized key",
			raw:   "**Animal:** Cat",
			label: "Cat",
		},
		{
			name:        "marker after preamble",
			raw:         "Here is my answer.\n**animal:** owl\n**Explanation:** wise",
			label:       "owl",
			explanation: "Here is my answer.\n**Explanation:** wise",
		},
		{
			name:  "marker inside sentence",
			raw:   "Your vibe animal: fox",
			label: "fox",
		},
		{
			name:  "trailing punctuation",
			raw:   "**animal:** Dolphin.",
			label: "Dolphin",
		},
		{
			name:  "underscore label survives",
			raw:   "**animal:** tropical_fish",
			label: "tropical_fish",
		},
		{
			name:        "first line fallback",
			raw:         "lion\nsome text",
			label:       "lion",
			explanation: "some text",
		},
		{
			name:        "first line with emphasis",
			raw:         "\n\n**Panda**\nChill energy.",
			label:       "Panda",
			explanation: "Chill energy.",
		},
		{
			name:  "bracketed first line",
			raw:   "[ELEPHANT]\nBig calm energy.",
			label: "ELEPHANT",
		},
		{
			name:  "windows newlines",
			raw:   "**animal:** wolf\r\n**Explanation:** pack leader",
			label: "wolf",
		},
		{
			name:  "marker with empty value",
			raw:   "**animal:**\nlion",
			label: "",
		},
		{
			name:  "empty input",
			raw:   "",
			label: "",
		},
		{
			name:  "whitespace only",
			raw:   "  \n\t\n",
			label: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := matching.Parse(tt.raw)

			if got.Label != tt.label {
				t.Errorf("Label = %q, want %q", got.Label, tt.label)
			}
			if got.HasLabel() != (tt.label != "") {
				t.Errorf("HasLabel = %v, want %v", got.HasLabel(), tt.label != "")
			}
			if tt.explanation != "" && got.Explanation != tt.explanation {
				t.Errorf("Explanation = %q, want %q", got.Explanation, tt.explanation)
			}
			if got.Raw != tt.raw {
				t.Errorf("Raw = %q, want input unchanged", got.Raw)
			}
		})
	}
}
