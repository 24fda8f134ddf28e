// Package background removes image backgrounds before inference. Every
// provider returns an opaque PNG with the subject composited over white.
package background

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/JaimeStill/vibematch/pkg/lifecycle"
)

// Remover transforms an uploaded image into a background-free PNG.
type Remover interface {
	// Remove returns PNG bytes. Undecodable input yields ErrUnreadableImage,
	// oversized input yields ErrImageTooLarge, and any later failure yields
	// ErrTransform.
	Remove(ctx context.Context, input []byte) ([]byte, error)
}

// System is a Remover with lifecycle coordination.
type System interface {
	Remover
	// Start loads provider resources and registers their teardown.
	Start(lc *lifecycle.Coordinator) error
}

// New creates the provider named by cfg.Provider. Model resources are not
// loaded until Start is called.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	switch cfg.Provider {
	case ProviderONNX:
		return newONNX(cfg, logger.With("system", "background", "provider", cfg.Provider)), nil
	case ProviderNone:
		return NewFlattener(cfg.MaxPixels, logger), nil
	default:
		return nil, fmt.Errorf("unknown background provider %q", cfg.Provider)
	}
}

type flattener struct {
	maxPixels int
	logger    *slog.Logger
}

// NewFlattener returns a Remover that keeps the whole frame, only decoding
// the input and flattening any transparency onto white. Inputs declaring more
// than maxPixels are refused; zero uses DefaultMaxPixels.
func NewFlattener(maxPixels int, logger *slog.Logger) System {
	return &flattener{
		maxPixels: maxPixels,
		logger:    logger.With("system", "background", "provider", ProviderNone),
	}
}

func (f *flattener) Start(lc *lifecycle.Coordinator) error {
	f.logger.Info("background removal disabled, images are flattened only")
	return nil
}

func (f *flattener) Remove(ctx context.Context, input []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, err := decode(input, f.maxPixels)
	if err != nil {
		return nil, err
	}

	out, err := encodePNG(composite(img, nil))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransform, err)
	}
	return out, nil
}
