package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/Decide/internal/decision"
	"github.com/MikeSquared-Agency/Decide/internal/scoring"
)

type ExplainHandler struct {
	svc    *decision.Service
	logger *slog.Logger
}

func NewExplainHandler(svc *decision.Service, logger *slog.Logger) *ExplainHandler {
	return &ExplainHandler{svc: svc, logger: logger}
}

// Explain returns the scoring breakdown for a saved decision, recomputed
// from its stored inputs with the server's current clamp policy.
// GET /api/v1/decisions/{id}/explain
func (h *ExplainHandler) Explain(w http.ResponseWriter, r *http.Request) {
	d, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	engine := h.svc.Engine()
	resp := map[string]interface{}{
		"decision_id":   d.ID,
		"decision_name": d.DecisionName,
		"clamp_policy":  engine.Policy().String(),
		"total_weight":  scoring.TotalWeight(d.Criteria),
		"weight_shares": scoring.WeightShares(d.Criteria),
		"explanations":  engine.ExplainAll(d.Criteria, d.Options),
	}
	writeJSON(w, http.StatusOK, resp)
}
