package matching

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/document-context/pkg/document"
	"github.com/JaimeStill/document-context/pkg/encoding"

	"github.com/JaimeStill/go-agents/pkg/agent"
	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

// Client performs one inference call for a PNG image and returns the raw
// reply text. Implementations never retry; failures wrap ErrTransport.
type Client interface {
	Infer(ctx context.Context, image []byte) (string, error)
}

// AgentClient sends the image to a go-agents vision provider.
type AgentClient struct {
	cfg    gaconfig.AgentConfig
	prompt string
	logger *slog.Logger
}

// NewAgentClient creates a client that pairs every image with prompt.
func NewAgentClient(cfg gaconfig.AgentConfig, prompt string, logger *slog.Logger) *AgentClient {
	return &AgentClient{
		cfg:    cfg,
		prompt: prompt,
		logger: logger.With("system", "inference"),
	}
}

// Infer encodes image as a data URI and issues a single Vision call.
func (c *AgentClient) Infer(ctx context.Context, image []byte) (string, error) {
	dataURI, err := encoding.EncodeImageDataURI(image, document.PNG)
	if err != nil {
		return "", fmt.Errorf("%w: encode image: %w", ErrTransport, err)
	}

	a, err := agent.New(&c.cfg)
	if err != nil {
		return "", fmt.Errorf("%w: create agent: %w", ErrTransport, err)
	}

	resp, err := a.Vision(ctx, c.prompt, []string{dataURI})
	if err != nil {
		return "", fmt.Errorf("%w: vision call: %w", ErrTransport, err)
	}

	content := resp.Content()

	c.logger.DebugContext(
		ctx, "vision reply received",
		"bytes", len(image),
		"reply_length", len(content),
	)

	return content, nil
}
