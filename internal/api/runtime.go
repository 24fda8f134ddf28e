package api

import (
	"github.com/JaimeStill/vibematch/internal/config"
	"github.com/JaimeStill/vibematch/internal/infrastructure"
	"github.com/JaimeStill/vibematch/internal/pipeline"
	"github.com/JaimeStill/vibematch/internal/vocabulary"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pipeline   pipeline.Config
	Vocabulary *vocabulary.Registry
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Agent:      infra.Agent,
			Lifecycle:  infra.Lifecycle,
			Logger:     infra.Logger.With("module", "api"),
			Background: infra.Background,
		},
		Pipeline:   cfg.Pipeline,
		Vocabulary: vocabulary.Default(),
	}
}
