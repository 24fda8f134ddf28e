package pipeline_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/JaimeStill/vibematch/internal/matching"
	"github.com/JaimeStill/vibematch/internal/pipeline"
	"github.com/JaimeStill/vibematch/internal/vocabulary"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type reply struct {
	text string
	err  error
}

// fakeClient replays scripted replies in order, repeating the last one.
type fakeClient struct {
	mu      sync.Mutex
	replies []reply
	calls   int
	gate    chan struct{}
	entered chan struct{}
}

func (c *fakeClient) Infer(ctx context.Context, image []byte) (string, error) {
	if c.entered != nil {
		c.entered <- struct{}{}
	}
	if c.gate != nil {
		<-c.gate
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	i := min(c.calls, len(c.replies)-1)
	c.calls++
	return c.replies[i].text, c.replies[i].err
}

func (c *fakeClient) Calls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

type fakeRemover struct {
	out   []byte
	err   error
	calls int
}

func (r *fakeRemover) Remove(ctx context.Context, input []byte) ([]byte, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	if r.out != nil {
		return r.out, nil
	}
	return input, nil
}

func testConfig(t *testing.T) *pipeline.Config {
	t.Helper()
	cfg := &pipeline.Config{
		Backoff: "1ms",
	}
	if err := cfg.Finalize(nil); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	return cfg
}

func newOrchestrator(t *testing.T, client matching.Client) *matching.Orchestrator {
	t.Helper()
	o, err := matching.NewOrchestrator(
		client,
		vocabulary.Default(),
		matching.Config{MaxAttempts: 3, Backoff: time.Millisecond, FallbackLabel: "cat"},
		discardLogger(),
	)
	if err != nil {
		t.Fatalf("NewOrchestrator: %v", err)
	}
	return o
}

func newSystem(t *testing.T, cfg *pipeline.Config, remover *fakeRemover, client *fakeClient) pipeline.System {
	t.Helper()
	sys, err := pipeline.New(cfg, remover, client, vocabulary.Default(), discardLogger())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return sys
}
