package prompts

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/JaimeStill/vibematch/internal/vocabulary"
	"github.com/JaimeStill/vibematch/pkg/handlers"
	"github.com/JaimeStill/vibematch/pkg/routes"
)

// Handler exposes the effective prompt read-only.
type Handler struct {
	guidance     string
	instructions string
	spec         string
	prompt       string
	logger       *slog.Logger
}

// Content is the response type for single-part endpoints.
type Content struct {
	Content string `json:"content"`
}

// PromptResponse is the composed prompt with its parts.
type PromptResponse struct {
	Instructions string `json:"instructions"`
	Guidance     string `json:"guidance,omitempty"`
	Spec         string `json:"spec"`
	Prompt       string `json:"prompt"`
}

// NewHandler creates a Handler for the prompt built from guidance and reg.
func NewHandler(guidance string, reg *vocabulary.Registry, logger *slog.Logger) *Handler {
	return &Handler{
		guidance:     strings.TrimSpace(guidance),
		instructions: Effective(guidance),
		spec:         Spec(reg.Labels()),
		prompt:       Compose(guidance, reg),
		logger:       logger.With("handler", "prompts"),
	}
}

// Routes returns the route group definition for prompt endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/prompts",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Prompt},
			{Method: "GET", Pattern: "/instructions", Handler: h.Instructions},
			{Method: "GET", Pattern: "/spec", Handler: h.Spec},
		},
	}
}

// Prompt returns the full prompt sent with every image.
func (h *Handler) Prompt(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, PromptResponse{
		Instructions: h.instructions,
		Guidance:     h.guidance,
		Spec:         h.spec,
		Prompt:       h.prompt,
	})
}

// Instructions returns the task instructions in effect, guidance included.
func (h *Handler) Instructions(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, Content{Content: h.instructions})
}

// Spec returns the fixed reply format.
func (h *Handler) Spec(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, Content{Content: h.spec})
}
