package prompts

import "strings"

const matchSpec = `Respond in exactly this format:

**animal:** <label>
**Explanation:** <one or two sentences on the vibe the image gives off>
**Connection:**
- <visual element> -> <why it fits the animal>
- <visual element> -> <why it fits the animal>

Format constraints:
- The first line must be the **animal:** line.
- <label> must be copied exactly from the allowed list below, lower case,
  with underscores where the list has them.
- Choose exactly one animal. Never answer with an animal outside the list.
- Always choose an animal, even when the image is unusual or abstract.

Allowed animals:
`

// Spec returns the immutable reply format, enumerating labels as the
// closed set the model must choose from.
func Spec(labels []string) string {
	var sb strings.Builder
	sb.WriteString(matchSpec)
	sb.WriteString(strings.Join(labels, ", "))
	return sb.String()
}
