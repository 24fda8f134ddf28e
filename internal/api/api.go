// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"fmt"
	"net/http"
	"os"

	"github.com/JaimeStill/vibematch/internal/config"
	"github.com/JaimeStill/vibematch/internal/infrastructure"
	"github.com/JaimeStill/vibematch/pkg/middleware"
	"github.com/JaimeStill/vibematch/pkg/module"
)

// NewModule creates the API module with all domain handlers and middleware.
// When an image root is configured it is opened here and closed on shutdown.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)

	domain, err := NewDomain(runtime)
	if err != nil {
		return nil, fmt.Errorf("create domain: %w", err)
	}

	root, err := openImageRoot(cfg.API.ImageRoot, runtime)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	patterns := registerRoutes(mux, domain, cfg, root)
	runtime.Logger.Debug("api routes registered", "base", cfg.API.BasePath, "routes", patterns)

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Infrastructure.Logger))

	return m, nil
}

func openImageRoot(dir string, runtime *Runtime) (*os.Root, error) {
	if dir == "" {
		return nil, nil
	}

	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("open image root %s: %w", dir, err)
	}

	runtime.Logger.Info("path predictions enabled", "image_root", dir)

	runtime.Lifecycle.Closer(root.Close, func(err error) {
		runtime.Logger.Error("image root close failed", "error", err)
	})

	return root, nil
}
