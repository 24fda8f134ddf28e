// Package handlers provides JSON response helpers shared by HTTP handlers.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// Failure is the body written for labeled failures: a stable machine-readable
// kind plus a human-readable message.
type Failure struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// RespondJSON writes data as JSON with the given status code.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondFailure logs err and writes a Failure body labeled with kind.
func RespondFailure(w http.ResponseWriter, logger *slog.Logger, status int, kind string, err error) {
	logger.Error("request failed", "kind", kind, "error", err, "status", status)
	RespondJSON(w, status, Failure{Error: kind, Message: err.Error()})
}
