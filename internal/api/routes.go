package api

import (
	"net/http"
	"os"

	"github.com/JaimeStill/vibematch/internal/config"
	"github.com/JaimeStill/vibematch/pkg/routes"
)

// registerRoutes mounts the domain handlers on mux and returns the
// registered patterns.
func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	root *os.Root,
) []string {
	predictions := domain.Predictions.Handler(cfg.API.MaxUploadSizeBytes(), root)

	groups := []routes.Group{
		predictions.Routes(),
		predictions.VocabularyRoutes(),
		domain.Prompts.Routes(),
	}

	routes.Register(mux, groups...)
	return routes.Patterns(groups...)
}
