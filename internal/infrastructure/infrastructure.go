// Package infrastructure provides core service initialization for application startup.
// It assembles the shared dependencies (lifecycle, logging, agent settings, and the
// background remover) that domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/JaimeStill/vibematch/internal/background"
	"github.com/JaimeStill/vibematch/internal/config"
	"github.com/JaimeStill/vibematch/pkg/lifecycle"
)

// Infrastructure holds the core systems required by all domain modules.
type Infrastructure struct {
	Agent      gaconfig.AgentConfig
	Lifecycle  *lifecycle.Coordinator
	Logger     *slog.Logger
	Background background.System
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) (*Infrastructure, error) {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	bg, err := background.New(&cfg.Background, logger)
	if err != nil {
		return nil, fmt.Errorf("background init failed: %w", err)
	}

	return &Infrastructure{
		Agent:      cfg.Agent,
		Lifecycle:  lc,
		Logger:     logger,
		Background: bg,
	}, nil
}

// Start registers all infrastructure systems with the lifecycle coordinator.
// The background remover loads its model here and releases it on shutdown.
func (i *Infrastructure) Start() error {
	if err := i.Background.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("background start failed: %w", err)
	}
	return nil
}
