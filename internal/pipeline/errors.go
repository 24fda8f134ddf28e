package pipeline

import (
	"errors"
	"net/http"

	"github.com/JaimeStill/vibematch/internal/background"
	"github.com/JaimeStill/vibematch/internal/matching"
	"github.com/JaimeStill/vibematch/pkg/admission"
)

// Domain errors for prediction requests.
var (
	ErrCapacityExceeded = admission.ErrCapacityExceeded
	ErrInvalidImage     = errors.New("invalid image")
	ErrFileTooLarge     = errors.New("file exceeds maximum upload size")
	ErrNotFound         = errors.New("image not found")
)

// Failure kinds reported in error bodies.
const (
	KindCapacityExceeded = "capacity_exceeded"
	KindTransport        = "transport"
	KindTransform        = "transform"
	KindUnreadableImage  = "unreadable_image"
	KindInvalidRequest   = "invalid_request"
	KindTooLarge         = "too_large"
	KindNotFound         = "not_found"
	KindInternal         = "internal"
)

// MapHTTPStatus maps prediction errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch Kind(err) {
	case KindCapacityExceeded:
		return http.StatusTooManyRequests
	case KindTransport:
		return http.StatusBadGateway
	case KindUnreadableImage:
		return http.StatusUnprocessableEntity
	case KindInvalidRequest:
		return http.StatusBadRequest
	case KindTooLarge:
		return http.StatusRequestEntityTooLarge
	case KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Kind labels err with the failure kind clients see in the error field.
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrCapacityExceeded):
		return KindCapacityExceeded
	case errors.Is(err, matching.ErrTransport):
		return KindTransport
	case errors.Is(err, background.ErrUnreadableImage):
		return KindUnreadableImage
	case errors.Is(err, background.ErrTransform):
		return KindTransform
	case errors.Is(err, ErrInvalidImage):
		return KindInvalidRequest
	case errors.Is(err, ErrFileTooLarge), errors.Is(err, background.ErrImageTooLarge):
		return KindTooLarge
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	default:
		return KindInternal
	}
}
