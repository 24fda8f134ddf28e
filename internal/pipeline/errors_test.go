package pipeline_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/JaimeStill/vibematch/internal/background"
	"github.com/JaimeStill/vibematch/internal/matching"
	"github.com/JaimeStill/vibematch/internal/pipeline"
)

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantKind   string
	}{
		{"capacity", pipeline.ErrCapacityExceeded, http.StatusTooManyRequests, pipeline.KindCapacityExceeded},
		{"transport wrapped", fmt.Errorf("%w: dial tcp", matching.ErrTransport), http.StatusBadGateway, pipeline.KindTransport},
		{"transform", background.ErrTransform, http.StatusInternalServerError, pipeline.KindTransform},
		{"unreadable", background.ErrUnreadableImage, http.StatusUnprocessableEntity, pipeline.KindUnreadableImage},
		{"invalid", pipeline.ErrInvalidImage, http.StatusBadRequest, pipeline.KindInvalidRequest},
		{"too large", pipeline.ErrFileTooLarge, http.StatusRequestEntityTooLarge, pipeline.KindTooLarge},
		{"oversized dimensions", fmt.Errorf("%w: png 100000x100000", background.ErrImageTooLarge), http.StatusRequestEntityTooLarge, pipeline.KindTooLarge},
		{"not found", pipeline.ErrNotFound, http.StatusNotFound, pipeline.KindNotFound},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, pipeline.KindInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pipeline.MapHTTPStatus(tt.err); got != tt.wantStatus {
				t.Errorf("status: got %d, want %d", got, tt.wantStatus)
			}
			if got := pipeline.Kind(tt.err); got != tt.wantKind {
				t.Errorf("kind: got %s, want %s", got, tt.wantKind)
			}
		})
	}
}
