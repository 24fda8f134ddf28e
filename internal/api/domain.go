package api

import (
	"github.com/JaimeStill/vibematch/internal/matching"
	"github.com/JaimeStill/vibematch/internal/pipeline"
	"github.com/JaimeStill/vibematch/internal/prompts"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Predictions pipeline.System
	Prompts     *prompts.Handler
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime) (*Domain, error) {
	prompt := prompts.Compose(runtime.Pipeline.Guidance, runtime.Vocabulary)
	client := matching.NewAgentClient(runtime.Agent, prompt, runtime.Logger)

	predictions, err := pipeline.New(
		&runtime.Pipeline,
		runtime.Background,
		client,
		runtime.Vocabulary,
		runtime.Logger,
	)
	if err != nil {
		return nil, err
	}

	return &Domain{
		Predictions: predictions,
		Prompts:     prompts.NewHandler(runtime.Pipeline.Guidance, runtime.Vocabulary, runtime.Logger),
	}, nil
}
