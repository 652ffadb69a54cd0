package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MikeSquared-Agency/Decide/internal/decision"
	"github.com/MikeSquared-Agency/Decide/internal/metrics"
	"github.com/MikeSquared-Agency/Decide/internal/report"
)

type ReportsHandler struct {
	svc     *decision.Service
	opts    report.Options
	metrics *metrics.Collector
	logger  *slog.Logger
	now     func() time.Time
}

func NewReportsHandler(svc *decision.Service, opts report.Options, m *metrics.Collector, logger *slog.Logger) *ReportsHandler {
	return &ReportsHandler{svc: svc, opts: opts, metrics: m, logger: logger, now: time.Now}
}

// Saved renders the report for a stored decision.
// GET /api/v1/decisions/{id}/report?format=html|md|pdf
func (h *ReportsHandler) Saved(w http.ResponseWriter, r *http.Request) {
	renderer, ok := h.renderer(w, r)
	if !ok {
		return
	}
	d, err := h.svc.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.render(w, r, renderer, report.Input{
		DecisionName: d.DecisionName,
		Criteria:     d.Criteria,
		Options:      d.Options,
		Results:      d.Results,
		GeneratedAt:  h.now(),
	})
}

// Draft scores an unsaved decision and renders its report.
// POST /api/v1/report?format=html|md|pdf
func (h *ReportsHandler) Draft(w http.ResponseWriter, r *http.Request) {
	renderer, ok := h.renderer(w, r)
	if !ok {
		return
	}
	d, ok := decodeDraft(w, r)
	if !ok {
		return
	}
	results, err := h.svc.Score(r.Context(), d)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.render(w, r, renderer, report.Input{
		DecisionName: d.DecisionName,
		Criteria:     d.Criteria,
		Options:      d.Options,
		Results:      results,
		GeneratedAt:  h.now(),
	})
}

func (h *ReportsHandler) renderer(w http.ResponseWriter, r *http.Request) (report.Renderer, bool) {
	renderer, err := report.ForFormat(r.URL.Query().Get("format"), h.opts)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: "invalid_format"})
		return nil, false
	}
	return renderer, true
}

func (h *ReportsHandler) render(w http.ResponseWriter, r *http.Request, renderer report.Renderer, in report.Input) {
	body, err := renderer.Render(r.Context(), in)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.metrics.ReportsRendered.WithLabelValues(renderer.Extension()).Inc()

	w.Header().Set("Content-Type", renderer.ContentType())
	if renderer.Extension() != "html" {
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="decision-report.%s"`, renderer.Extension()))
	}
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}
