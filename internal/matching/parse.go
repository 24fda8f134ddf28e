package matching

import (
	"regexp"
	"strings"

	"github.com/JaimeStill/vibematch/internal/vocabulary"
)

var labelMarker = regexp.MustCompile(`(?i)\banimal\s*:`)

// Parse extracts a candidate label and explanation from a raw model reply.
//
// The first pass looks for an "animal:" marker line, tolerating emphasis such
// as "**animal:** lion". When no marker exists the first non-empty line is
// taken as the label, which covers bare single-word replies. The explanation
// is every other non-empty line of the reply.
func Parse(raw string) Candidate {
	c := Candidate{Raw: raw}

	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")

	idx := markerLine(lines)
	if idx >= 0 {
		_, after, _ := strings.Cut(vocabulary.StripEmphasis(lines[idx]), ":")
		c.Label = cleanLabel(after)
	} else {
		idx = firstLine(lines)
		if idx >= 0 {
			c.Label = cleanLabel(lines[idx])
		}
	}

	if idx >= 0 {
		c.Explanation = explanation(lines, idx)
	}

	return c
}

func markerLine(lines []string) int {
	for i, line := range lines {
		if labelMarker.MatchString(vocabulary.StripEmphasis(line)) {
			return i
		}
	}
	return -1
}

func firstLine(lines []string) int {
	for i, line := range lines {
		if cleanLabel(line) != "" {
			return i
		}
	}
	return -1
}

func cleanLabel(s string) string {
	s = vocabulary.StripEmphasis(s)
	s = strings.Trim(s, " \t[]\"'.,;!")
	return vocabulary.StripEmphasis(s)
}

func explanation(lines []string, skip int) string {
	rest := make([]string, 0, len(lines))
	for i, line := range lines {
		if i != skip {
			rest = append(rest, line)
		}
	}
	return strings.TrimSpace(strings.Join(rest, "\n"))
}
