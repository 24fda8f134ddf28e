package vocabulary

import "testing"

func TestSynonymsResolveToCanonical(t *testing.T) {
	reg := Default()

	for variant, target := range synonyms {
		got, ok := reg.Canonicalize(variant)
		if !ok {
			t.Errorf("Canonicalize(%q) found no label", variant)
			continue
		}
		if got != target {
			t.Errorf("Canonicalize(%q) = %q, want %q", variant, got, target)
		}
		if !reg.Contains(got) {
			t.Errorf("Canonicalize(%q) = %q, not a canonical label", variant, got)
		}
	}
}

func TestSynonymsDoNotShadowLabels(t *testing.T) {
	for variant := range synonyms {
		if _, ok := defaultRegistry.canonical[Clean(variant)]; ok {
			t.Errorf("synonym %q is also a canonical label", variant)
		}
	}
}
