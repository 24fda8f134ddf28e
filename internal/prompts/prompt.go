// Package prompts composes the instructional prompt sent with every image.
// A prompt is the fixed task instructions, optional operator guidance, and
// the fixed reply format, which carries the full animal vocabulary inline.
package prompts

import (
	"strings"

	"github.com/JaimeStill/vibematch/internal/vocabulary"
)

const guidanceHeading = "Additional guidance:\n"

// Compose builds the prompt for reg with guidance appended to the task
// instructions.
func Compose(guidance string, reg *vocabulary.Registry) string {
	var sb strings.Builder
	sb.WriteString(Effective(guidance))
	sb.WriteString("\n\n")
	sb.WriteString(Spec(reg.Labels()))

	return sb.String()
}

// Effective returns the task instructions followed by the trimmed guidance.
// Guidance can only add to the task statement, never replace it.
func Effective(guidance string) string {
	guidance = strings.TrimSpace(guidance)
	if guidance == "" {
		return Instructions()
	}
	return Instructions() + "\n\n" + guidanceHeading + guidance
}
