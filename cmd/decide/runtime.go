package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/Decide/internal/config"
	"github.com/MikeSquared-Agency/Decide/internal/decision"
	"github.com/MikeSquared-Agency/Decide/internal/hermes"
	"github.com/MikeSquared-Agency/Decide/internal/metrics"
	"github.com/MikeSquared-Agency/Decide/internal/scoring"
	"github.com/MikeSquared-Agency/Decide/internal/store"
	"github.com/MikeSquared-Agency/Decide/internal/tracing"
)

func newLogger(cfg config.LoggingConfig, w io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}
	if strings.EqualFold(cfg.Format, "text") {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

func clampPolicy(cfg *config.Config) scoring.ClampPolicy {
	if cfg.Scoring.ClampOutOfRange {
		return scoring.ClampUnit
	}
	return scoring.Unclamped
}

// app is the set of long-lived dependencies every command that touches
// history needs.
type app struct {
	cfg     *config.Config
	logger  *slog.Logger
	store   store.Store
	events  hermes.Client
	tracing *tracing.Provider
	metrics *metrics.Collector
	svc     *decision.Service
}

func newApp(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*app, error) {
	tp, err := tracing.Init(ctx, cfg.Tracing)
	if err != nil {
		return nil, err
	}

	db, err := store.Open(ctx, cfg.Database)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return nil, fmt.Errorf("open store: %w", err)
	}
	logger.Info("store ready", "driver", cfg.Database.Driver)
	if tp.Enabled() {
		db = store.Traced(db, tp.Tracer())
	}

	// Hermes (optional)
	var events hermes.Client
	if cfg.Hermes.URL != "" {
		hc, err := hermes.NewNATSClient(ctx, cfg.Hermes.URL, logger)
		if err != nil {
			logger.Warn("failed to connect to hermes, running without events", "error", err)
		} else {
			events = hc
			logger.Info("connected to hermes")
		}
	}

	m := metrics.NewCollector()
	return &app{
		cfg:     cfg,
		logger:  logger,
		store:   db,
		events:  events,
		tracing: tp,
		metrics: m,
		svc:     decision.NewService(db, scoring.NewEngine(clampPolicy(cfg)), events, m, logger),
	}, nil
}

func (a *app) Close(ctx context.Context) {
	if a.events != nil {
		a.events.Close()
	}
	if err := a.store.Close(); err != nil {
		a.logger.Warn("failed to close store", "error", err)
	}
	if err := a.tracing.Shutdown(ctx); err != nil {
		a.logger.Warn("failed to flush traces", "error", err)
	}
}

// loadCLI reads config and builds a stderr logger for one-shot commands.
// The default info level is lowered to warn so stdout output stays readable.
func loadCLI() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Logging.Level == "info" {
		cfg.Logging.Level = "warn"
	}
	return cfg, newLogger(cfg.Logging, os.Stderr), nil
}

// loadDraft reads a YAML decision file through a Workspace, so the draft
// carries fresh ids.
func loadDraft(path string) (decision.Draft, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return decision.Draft{}, fmt.Errorf("read decision file: %w", err)
	}
	var d decision.Draft
	if err := yaml.Unmarshal(data, &d); err != nil {
		return decision.Draft{}, fmt.Errorf("parse decision file: %w", err)
	}
	return decision.WorkspaceFromDraft(d).Snapshot(), nil
}
