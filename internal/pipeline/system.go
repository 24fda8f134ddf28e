// Package pipeline turns an uploaded image into an animal match: background
// removal, bounded retries against the vision model, and admission control
// around the whole run.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/JaimeStill/vibematch/internal/background"
	"github.com/JaimeStill/vibematch/internal/matching"
	"github.com/JaimeStill/vibematch/internal/vocabulary"
	"github.com/JaimeStill/vibematch/pkg/admission"
)

// System defines the public contract for prediction operations.
type System interface {
	Handler(maxUploadSize int64, root *os.Root) *Handler

	// Predict runs the pipeline for image, or returns ErrCapacityExceeded
	// without doing any work when every slot is taken.
	Predict(ctx context.Context, image []byte) (*Result, error)

	// Vocabulary returns the sorted canonical labels a run may produce.
	Vocabulary() []string
}

type system struct {
	coordinator *Coordinator
	admission   *admission.Controller
	registry    *vocabulary.Registry
	logger      *slog.Logger
}

// New creates the prediction system from its collaborators.
func New(
	cfg *Config,
	remover background.Remover,
	client matching.Client,
	reg *vocabulary.Registry,
	logger *slog.Logger,
) (System, error) {
	orchestrator, err := matching.NewOrchestrator(client, reg, cfg.Matching(), logger)
	if err != nil {
		return nil, fmt.Errorf("create orchestrator: %w", err)
	}

	return &system{
		coordinator: NewCoordinator(remover, orchestrator, logger),
		admission:   admission.New(cfg.Capacity),
		registry:    reg,
		logger:      logger.With("system", "predictions"),
	}, nil
}

func (s *system) Handler(maxUploadSize int64, root *os.Root) *Handler {
	return NewHandler(s, s.logger, maxUploadSize, root)
}

func (s *system) Predict(ctx context.Context, image []byte) (*Result, error) {
	var result *Result

	err := s.admission.Do(func() error {
		var err error
		result, err = s.coordinator.Run(ctx, image)
		return err
	})

	if errors.Is(err, ErrCapacityExceeded) {
		s.logger.WarnContext(
			ctx, "prediction rejected",
			"active", s.admission.Active(),
			"capacity", s.admission.Capacity(),
		)
	}

	return result, err
}

func (s *system) Vocabulary() []string {
	return s.registry.Labels()
}
