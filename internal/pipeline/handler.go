package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/JaimeStill/vibematch/pkg/handlers"
	"github.com/JaimeStill/vibematch/pkg/routes"
)

// AllowedExtensions lists the accepted image file extensions.
var AllowedExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp"}

const retryAfterSeconds = "1"

// Handler provides HTTP endpoints for prediction operations.
type Handler struct {
	sys           System
	logger        *slog.Logger
	maxUploadSize int64
	root          *os.Root
}

// PredictResponse is the body returned for a completed prediction.
type PredictResponse struct {
	Success     bool      `json:"success"`
	ID          uuid.UUID `json:"id"`
	Result      string    `json:"result"`
	Label       string    `json:"label,omitempty"`
	Explanation string    `json:"explanation,omitempty"`
	Outcome     Outcome   `json:"outcome"`
	Attempts    int       `json:"attempts"`
	Message     string    `json:"message"`
}

// PathRequest names an image on the server relative to the configured image root.
type PathRequest struct {
	ImagePath string `json:"image_path"`
}

// VocabularyResponse lists the labels a prediction may return.
type VocabularyResponse struct {
	Labels []string `json:"labels"`
	Count  int      `json:"count"`
}

// NewHandler creates a Handler. A nil root disables path-based prediction.
func NewHandler(sys System, logger *slog.Logger, maxUploadSize int64, root *os.Root) *Handler {
	return &Handler{
		sys:           sys,
		logger:        logger.With("handler", "predictions"),
		maxUploadSize: maxUploadSize,
		root:          root,
	}
}

// Routes returns the route group definition for prediction endpoints.
func (h *Handler) Routes() routes.Group {
	group := routes.Group{
		Prefix: "/predict",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Predict},
		},
	}

	if h.root != nil {
		group.Routes = append(group.Routes, routes.Route{
			Method: "POST", Pattern: "/path", Handler: h.PredictPath,
		})
	}

	return group
}

// VocabularyRoutes returns the route group for the vocabulary listing.
func (h *Handler) VocabularyRoutes() routes.Group {
	return routes.Group{
		Prefix: "/vocabulary",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.Vocabulary},
		},
	}
}

// Predict accepts a multipart upload with an image field and returns its animal match.
func (h *Handler) Predict(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)

	if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) || errors.Is(err, multipart.ErrMessageTooLarge) {
			h.fail(w, ErrFileTooLarge)
			return
		}
		h.fail(w, fmt.Errorf("%w: %w", ErrInvalidImage, err))
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		h.fail(w, fmt.Errorf("%w: no image file provided", ErrInvalidImage))
		return
	}
	defer file.Close()

	if header.Filename == "" {
		h.fail(w, fmt.Errorf("%w: no image file selected", ErrInvalidImage))
		return
	}

	if err := checkExtension(header.Filename); err != nil {
		h.fail(w, err)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		h.fail(w, fmt.Errorf("%w: %w", ErrInvalidImage, err))
		return
	}

	h.predict(w, r, data)
}

// PredictPath reads an image from the configured image root and returns its animal match.
func (h *Handler) PredictPath(w http.ResponseWriter, r *http.Request) {
	var req PathRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.fail(w, fmt.Errorf("%w: %w", ErrInvalidImage, err))
		return
	}

	if req.ImagePath == "" {
		h.fail(w, fmt.Errorf("%w: no image path provided", ErrInvalidImage))
		return
	}

	if err := checkExtension(req.ImagePath); err != nil {
		h.fail(w, err)
		return
	}

	data, err := h.readRooted(req.ImagePath)
	if err != nil {
		h.fail(w, err)
		return
	}

	h.predict(w, r, data)
}

// Vocabulary returns the canonical animal labels.
func (h *Handler) Vocabulary(w http.ResponseWriter, r *http.Request) {
	labels := h.sys.Vocabulary()
	handlers.RespondJSON(w, http.StatusOK, VocabularyResponse{
		Labels: labels,
		Count:  len(labels),
	})
}

func (h *Handler) predict(w http.ResponseWriter, r *http.Request, data []byte) {
	result, err := h.sys.Predict(r.Context(), data)
	if err != nil {
		h.fail(w, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, PredictResponse{
		Success:     true,
		ID:          result.ID,
		Result:      result.Raw,
		Label:       result.Label,
		Explanation: result.Explanation,
		Outcome:     result.Outcome,
		Attempts:    result.Attempts,
		Message:     "Prediction completed successfully",
	})
}

func (h *Handler) readRooted(name string) ([]byte, error) {
	f, err := h.root.Open(filepath.Clean(name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidImage, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, h.maxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if int64(len(data)) > h.maxUploadSize {
		return nil, ErrFileTooLarge
	}

	return data, nil
}

func (h *Handler) fail(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrCapacityExceeded) {
		w.Header().Set("Retry-After", retryAfterSeconds)
	}
	handlers.RespondFailure(w, h.logger, MapHTTPStatus(err), Kind(err), err)
}

func checkExtension(name string) error {
	ext := strings.ToLower(filepath.Ext(name))
	if !slices.Contains(AllowedExtensions, ext) {
		return fmt.Errorf(
			"%w: file type %q not allowed, allowed types: %s",
			ErrInvalidImage, ext, strings.Join(AllowedExtensions, ", "),
		)
	}
	return nil
}
