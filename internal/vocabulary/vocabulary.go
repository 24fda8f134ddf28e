// Package vocabulary holds the closed set of animal labels the matcher is
// allowed to return, together with the synonyms that resolve onto them.
package vocabulary

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Registry is an immutable label set with a synonym index.
// It is safe for concurrent use.
type Registry struct {
	canonical map[string]struct{}
	synonyms  map[string]string
	labels    []string
}

var defaultRegistry = mustNew(animals, synonyms)

// Default returns the process-wide animal registry.
func Default() *Registry {
	return defaultRegistry
}

// New builds a Registry from canonical labels and a synonym map.
// Every synonym must resolve to a label in the canonical set.
func New(labels []string, syns map[string]string) (*Registry, error) {
	r := &Registry{
		canonical: make(map[string]struct{}, len(labels)),
		synonyms:  make(map[string]string, len(syns)),
	}

	for _, l := range labels {
		key := Clean(l)
		if key == "" {
			return nil, fmt.Errorf("empty canonical label")
		}
		if key != l {
			return nil, fmt.Errorf("canonical label %q is not in normal form", l)
		}
		r.canonical[key] = struct{}{}
	}

	for s, target := range syns {
		if _, ok := r.canonical[target]; !ok {
			return nil, fmt.Errorf("synonym %q maps to unknown label %q", s, target)
		}
		r.synonyms[Clean(s)] = target
	}

	r.labels = make([]string, 0, len(r.canonical))
	for l := range r.canonical {
		r.labels = append(r.labels, l)
	}
	slices.Sort(r.labels)

	return r, nil
}

func mustNew(labels []string, syns map[string]string) *Registry {
	r, err := New(labels, syns)
	if err != nil {
		panic(err)
	}
	return r
}

// Canonicalize resolves name to a canonical label. Absence is reported
// through the boolean, never as an error.
func (r *Registry) Canonicalize(name string) (string, bool) {
	key := Clean(name)
	if key == "" {
		return "", false
	}
	if _, ok := r.canonical[key]; ok {
		return key, true
	}
	if target, ok := r.synonyms[key]; ok {
		return target, true
	}
	return "", false
}

// Contains reports whether label is a member of the canonical set.
func (r *Registry) Contains(label string) bool {
	_, ok := r.canonical[label]
	return ok
}

// Labels returns the canonical labels in sorted order.
func (r *Registry) Labels() []string {
	return slices.Clone(r.labels)
}

// Len returns the number of canonical labels.
func (r *Registry) Len() int {
	return len(r.labels)
}

// Clean applies NFKC normalization, trims whitespace, lower-cases, and strips
// markdown emphasis markers. Underscores inside a label are preserved.
func Clean(s string) string {
	s = norm.NFKC.String(s)
	s = StripEmphasis(s)
	return strings.ToLower(strings.TrimSpace(s))
}

// StripEmphasis removes bold, italic, and code markers. Underscores are only
// removed where they wrap the text, since canonical labels use them as separators.
func StripEmphasis(s string) string {
	s = strings.NewReplacer("*", "", "`", "").Replace(s)
	s = strings.TrimSpace(s)
	return strings.TrimSpace(strings.Trim(s, "_"))
}
