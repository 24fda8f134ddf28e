package pipeline_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/JaimeStill/vibematch/internal/background"
	"github.com/JaimeStill/vibematch/internal/matching"
	"github.com/JaimeStill/vibematch/internal/pipeline"
)

func TestCoordinatorRun(t *testing.T) {
	t.Run("succeeded", func(t *testing.T) {
		client := &fakeClient{replies: []reply{{text: "**animal:** Tiger\n**Explanation:** Bold stripes."}}}
		remover := &fakeRemover{out: []byte("png")}
		c := pipeline.NewCoordinator(remover, newOrchestrator(t, client), discardLogger())

		result, err := c.Run(context.Background(), []byte("upload"))
		if err != nil {
			t.Fatalf("Run: %v", err)
		}

		if result.Outcome != pipeline.OutcomeSucceeded {
			t.Errorf("outcome: got %s, want succeeded", result.Outcome)
		}
		if result.Label != "tiger" {
			t.Errorf("label: got %s, want tiger", result.Label)
		}
		if result.Attempts != 1 {
			t.Errorf("attempts: got %d, want 1", result.Attempts)
		}
		if result.CompletedAt.IsZero() {
			t.Error("completed_at not set")
		}
	})

	t.Run("no scratch files", func(t *testing.T) {
		t.Setenv("TMPDIR", filepath.Join(t.TempDir(), "missing"))

		client := &fakeClient{replies: []reply{{text: "**animal:** owl"}}}
		remover := &fakeRemover{out: []byte("png")}
		c := pipeline.NewCoordinator(remover, newOrchestrator(t, client), discardLogger())

		result, err := c.Run(context.Background(), []byte("upload"))
		if err != nil {
			t.Fatalf("Run with unusable TMPDIR: %v", err)
		}
		if result.Label != "owl" {
			t.Errorf("label: got %s, want owl", result.Label)
		}
	})

	t.Run("fallback", func(t *testing.T) {
		client := &fakeClient{replies: []reply{{text: "**animal:** blue"}}}
		c := pipeline.NewCoordinator(&fakeRemover{}, newOrchestrator(t, client), discardLogger())

		result, err := c.Run(context.Background(), []byte("upload"))
		if err != nil {
			t.Fatalf("Run: %v", err)
		}

		if result.Outcome != pipeline.OutcomeFallback {
			t.Errorf("outcome: got %s, want fallback", result.Outcome)
		}
		if result.Label != "cat" {
			t.Errorf("label: got %s, want cat", result.Label)
		}
		if result.Attempts != 3 {
			t.Errorf("attempts: got %d, want 3", result.Attempts)
		}
	})

	t.Run("transport failure", func(t *testing.T) {
		client := &fakeClient{replies: []reply{{err: matching.ErrTransport}}}
		c := pipeline.NewCoordinator(&fakeRemover{}, newOrchestrator(t, client), discardLogger())

		result, err := c.Run(context.Background(), []byte("upload"))
		if !errors.Is(err, matching.ErrTransport) {
			t.Fatalf("got %v, want ErrTransport", err)
		}
		if result == nil || result.Outcome != pipeline.OutcomeFailed {
			t.Errorf("result: got %+v, want failed outcome", result)
		}
		if client.Calls() != 1 {
			t.Errorf("calls: got %d, want 1", client.Calls())
		}
	})
}

func TestCoordinatorRemoverFailure(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"unreadable", background.ErrUnreadableImage, background.ErrUnreadableImage},
		{"too large", background.ErrImageTooLarge, background.ErrImageTooLarge},
		{"transform", background.ErrTransform, background.ErrTransform},
		{"other", errors.New("model exploded"), background.ErrTransform},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
				client := &fakeClient{replies: []reply{{text: "**animal:** lion"}}}
			remover := &fakeRemover{err: tt.err}
			c := pipeline.NewCoordinator(remover, newOrchestrator(t, client), discardLogger())

			result, err := c.Run(context.Background(), []byte("upload"))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
			if result != nil {
				t.Errorf("expected nil result, got %+v", result)
			}
			if client.Calls() != 0 {
				t.Errorf("inference called %d times after remover failure", client.Calls())
			}
			})
	}
}
