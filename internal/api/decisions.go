package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/Decide/internal/decision"
	"github.com/MikeSquared-Agency/Decide/internal/scoring"
)

type DecisionsHandler struct {
	svc    *decision.Service
	logger *slog.Logger
}

func NewDecisionsHandler(svc *decision.Service, logger *slog.Logger) *DecisionsHandler {
	return &DecisionsHandler{svc: svc, logger: logger}
}

type scoreResponse struct {
	DecisionName string                 `json:"decisionName"`
	Results      []scoring.ScoredOption `json:"results"`
	Explanations []scoring.Explanation  `json:"explanations"`
}

// Score ranks a draft without saving it.
// POST /api/v1/score
func (h *DecisionsHandler) Score(w http.ResponseWriter, r *http.Request) {
	d, ok := decodeDraft(w, r)
	if !ok {
		return
	}
	results, err := h.svc.Score(r.Context(), d)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	explanations, err := h.svc.Explain(d)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, scoreResponse{
		DecisionName: d.DecisionName,
		Results:      results,
		Explanations: explanations,
	})
}

// Create scores a draft and saves the snapshot.
// POST /api/v1/decisions
func (h *DecisionsHandler) Create(w http.ResponseWriter, r *http.Request) {
	d, ok := decodeDraft(w, r)
	if !ok {
		return
	}
	snap, err := h.svc.ScoreAndSave(r.Context(), d)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

// GET /api/v1/decisions
func (h *DecisionsHandler) List(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.List(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// GET /api/v1/decisions/{id}
func (h *DecisionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

// Delete is idempotent: deleting an unknown id reports already_deleted.
// DELETE /api/v1/decisions/{id}
func (h *DecisionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	deleted, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	status := "deleted"
	if !deleted {
		status = "already_deleted"
	}
	writeJSON(w, http.StatusOK, map[string]string{"id": id, "status": status})
}
