package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/MikeSquared-Agency/Decide/internal/decision"
	"github.com/MikeSquared-Agency/Decide/internal/report"
	"github.com/MikeSquared-Agency/Decide/internal/scoring"
	"github.com/MikeSquared-Agency/Decide/internal/store"
)

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// writeJSON encodes v before writing the header, so an unencodable value
// becomes a 500 instead of a truncated success body.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		slog.Default().Error("failed to encode response", "status", status, "error", err)
		status = http.StatusInternalServerError
		body = []byte(`{"error":"internal error","code":"internal"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(append(body, '\n'))
}

// writeError maps domain errors to status codes. Storage details stay in the
// log; the client only sees that storage failed.
func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	if ve, ok := scoring.AsValidation(err); ok {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: ve.Error(), Code: ve.Code()})
		return
	}
	var se *decision.StorageError
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "decision not found", Code: "not_found"})
	case errors.Is(err, report.ErrNoResults):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: err.Error(), Code: "not_scored"})
	case errors.As(err, &se):
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "storage unavailable", Code: "storage_error"})
	default:
		logger.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error", Code: "internal"})
	}
}
