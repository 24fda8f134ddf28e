package pipeline_test

import (
	"testing"
	"time"

	"github.com/JaimeStill/vibematch/internal/pipeline"
)

func TestConfigFinalize(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		var cfg pipeline.Config
		if err := cfg.Finalize(nil); err != nil {
			t.Fatalf("Finalize: %v", err)
		}

		m := cfg.Matching()
		if m.MaxAttempts != 3 {
			t.Errorf("max attempts: got %d, want 3", m.MaxAttempts)
		}
		if m.Backoff != time.Second {
			t.Errorf("backoff: got %v, want 1s", m.Backoff)
		}
		if m.FallbackLabel != "cat" {
			t.Errorf("fallback label: got %s, want cat", m.FallbackLabel)
		}
		if cfg.Capacity != 3 {
			t.Errorf("capacity: got %d, want 3", cfg.Capacity)
		}
		if m.InferTimeout != time.Minute {
			t.Errorf("infer timeout: got %v, want 1m", m.InferTimeout)
		}
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("TEST_PIPELINE_CAPACITY", "8")
		t.Setenv("TEST_PIPELINE_BACKOFF", "250ms")

		var cfg pipeline.Config
		env := &pipeline.Env{Capacity: "TEST_PIPELINE_CAPACITY", Backoff: "TEST_PIPELINE_BACKOFF"}
		if err := cfg.Finalize(env); err != nil {
			t.Fatalf("Finalize: %v", err)
		}

		if cfg.Capacity != 8 {
			t.Errorf("capacity: got %d, want 8", cfg.Capacity)
		}
		if cfg.BackoffDuration() != 250*time.Millisecond {
			t.Errorf("backoff: got %v, want 250ms", cfg.BackoffDuration())
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		for _, cfg := range []pipeline.Config{
			{MaxAttempts: -1},
			{Capacity: -2},
			{Backoff: "soon"},
			{Backoff: "-1s"},
			{InferTimeout: "forever"},
			{InferTimeout: "-5s"},
		} {
			if err := cfg.Finalize(nil); err == nil {
				t.Errorf("expected error for %+v", cfg)
			}
		}
	})
}

func TestConfigMerge(t *testing.T) {
	base := pipeline.Config{MaxAttempts: 3, Backoff: "1s", Capacity: 3, FallbackLabel: "cat"}
	base.Merge(&pipeline.Config{Capacity: 10, FallbackLabel: "dog"})

	if base.Capacity != 10 || base.FallbackLabel != "dog" {
		t.Errorf("overlay not applied: %+v", base)
	}
	if base.MaxAttempts != 3 || base.Backoff != "1s" {
		t.Errorf("zero overlay fields overwrote base: %+v", base)
	}
}

func TestConfigRunBudget(t *testing.T) {
	tests := []struct {
		name string
		cfg  pipeline.Config
		want time.Duration
	}{
		{"defaults", pipeline.Config{}, 3*time.Minute + 2*time.Second},
		{"single attempt", pipeline.Config{MaxAttempts: 1, InferTimeout: "10s"}, 10 * time.Second},
		{"custom", pipeline.Config{MaxAttempts: 4, Backoff: "500ms", InferTimeout: "20s"}, 81500 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			if err := cfg.Finalize(nil); err != nil {
				t.Fatalf("Finalize: %v", err)
			}
			if got := cfg.RunBudget(); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
