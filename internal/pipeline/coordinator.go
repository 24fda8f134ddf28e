package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/vibematch/internal/background"
	"github.com/JaimeStill/vibematch/internal/matching"
)

// Coordinator runs one image through background removal and matching. Image
// bytes stay in memory for the whole run; nothing is written to disk.
type Coordinator struct {
	remover      background.Remover
	orchestrator *matching.Orchestrator
	logger       *slog.Logger
}

// NewCoordinator creates a Coordinator.
func NewCoordinator(
	remover background.Remover,
	orchestrator *matching.Orchestrator,
	logger *slog.Logger,
) *Coordinator {
	return &Coordinator{
		remover:      remover,
		orchestrator: orchestrator,
		logger:       logger.With("system", "pipeline"),
	}
}

// Run removes the background from image and matches the result to an animal.
// A remover failure short-circuits the run before any inference call. Failed
// runs return both a Result and an error wrapping matching.ErrTransport.
func (c *Coordinator) Run(ctx context.Context, image []byte) (*Result, error) {
	id := uuid.New()
	logger := c.logger.With("run", id)
	start := time.Now()

	logger.InfoContext(ctx, "run started", "bytes", len(image))

	cleaned, err := c.remover.Remove(ctx, image)
	if err != nil {
		logger.ErrorContext(ctx, "background removal failed", "error", err)
		if errors.Is(err, background.ErrUnreadableImage) ||
			errors.Is(err, background.ErrImageTooLarge) ||
			errors.Is(err, background.ErrTransform) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", background.ErrTransform, err)
	}

	report, err := c.orchestrator.Run(ctx, cleaned)
	if report == nil {
		logger.ErrorContext(ctx, "run interrupted", "error", err)
		return nil, err
	}

	result := resultFromReport(id, report)

	logger.InfoContext(
		ctx, "run completed",
		"outcome", result.Outcome,
		"label", result.Label,
		"attempts", result.Attempts,
		"duration", time.Since(start),
	)

	return result, err
}
