package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/MikeSquared-Agency/Decide/internal/config"
	"github.com/MikeSquared-Agency/Decide/internal/decision"
	"github.com/MikeSquared-Agency/Decide/internal/metrics"
	"github.com/MikeSquared-Agency/Decide/internal/report"
)

func NewRouter(svc *decision.Service, m *metrics.Collector, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(MetricsMiddleware(m))
	r.Use(RateLimitMiddleware(cfg.Server.RateLimitPerMinute))

	decisions := NewDecisionsHandler(svc, logger)
	explain := NewExplainHandler(svc, logger)
	reports := NewReportsHandler(svc, report.Options{
		ChromePath: cfg.Report.ChromePath,
		PDFTimeout: cfg.PDFTimeout(),
	}, m, logger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/score", decisions.Score)
		r.Post("/report", reports.Draft)

		r.Post("/decisions", decisions.Create)
		r.Get("/decisions", decisions.List)
		r.Get("/decisions/{id}", decisions.Get)
		r.Get("/decisions/{id}/explain", explain.Explain)
		r.Get("/decisions/{id}/report", reports.Saved)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.Server.AdminToken))
			r.Delete("/decisions/{id}", decisions.Delete)
		})
	})

	return r
}

func NewMetricsRouter(m *metrics.Collector) http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", m.Handler())
	return r
}
