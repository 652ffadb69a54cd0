package decision

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/MikeSquared-Agency/Decide/internal/hermes"
	"github.com/MikeSquared-Agency/Decide/internal/metrics"
	"github.com/MikeSquared-Agency/Decide/internal/scoring"
	"github.com/MikeSquared-Agency/Decide/internal/store"
)

// StorageError wraps a failure from the persistence layer. It is logged once
// and returned as is; nothing retries it.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// Service runs the decision lifecycle: score a draft, save the snapshot,
// list, fetch and delete history.
type Service struct {
	store   store.Store
	engine  *scoring.Engine
	events  hermes.Client
	metrics *metrics.Collector
	logger  *slog.Logger
	now     func() time.Time
}

// NewService wires a Service. events may be nil to run without Hermes, and a
// nil collector gets a private one.
func NewService(s store.Store, engine *scoring.Engine, events hermes.Client, m *metrics.Collector, logger *slog.Logger) *Service {
	if engine == nil {
		engine = scoring.NewEngine(scoring.Unclamped)
	}
	if m == nil {
		m = metrics.NewCollector()
	}
	return &Service{
		store:   s,
		engine:  engine,
		events:  events,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

func (s *Service) Engine() *scoring.Engine { return s.engine }

// Score ranks the draft's options. Nothing is persisted.
func (s *Service) Score(ctx context.Context, d Draft) ([]scoring.ScoredOption, error) {
	results, err := s.engine.ComputeScores(d.DecisionName, d.Criteria, d.Options)
	if err != nil {
		code := "error"
		if ve, ok := scoring.AsValidation(err); ok {
			code = ve.Code()
		}
		s.metrics.ScoreComputations.WithLabelValues(code).Inc()
		return nil, err
	}
	s.metrics.ScoreComputations.WithLabelValues("ok").Inc()

	evt := hermes.DecisionScoredEvent{
		DecisionName: d.DecisionName,
		Criteria:     len(d.Criteria),
		Options:      len(d.Options),
		Timestamp:    s.now().UTC(),
	}
	if len(results) > 0 {
		evt.BestOption = results[0].Name
		evt.BestScore = results[0].Score
	}
	s.publish(ctx, hermes.SubjectDecisionScored, evt)
	return results, nil
}

// Explain returns the per-criterion breakdown for every option in d.
func (s *Service) Explain(d Draft) ([]scoring.Explanation, error) {
	if err := scoring.Validate(d.DecisionName, d.Criteria); err != nil {
		return nil, err
	}
	return s.engine.ExplainAll(d.Criteria, d.Options), nil
}

// Save persists d together with results from a prior Score call.
func (s *Service) Save(ctx context.Context, d Draft, results []scoring.ScoredOption) (*store.Decision, error) {
	if err := ValidateForSave(d, results); err != nil {
		return nil, err
	}

	snap := &store.Decision{
		DecisionName: d.DecisionName,
		Criteria:     scoring.CloneCriteria(d.Criteria),
		Options:      scoring.CloneOptions(d.Options),
		Results:      cloneResults(results),
	}
	if err := s.store.CreateDecision(ctx, snap); err != nil {
		return nil, s.storageFailure("create", err, "decision_name", d.DecisionName)
	}
	s.metrics.DecisionsSaved.Inc()
	s.logger.Info("decision saved", "decision_id", snap.ID, "decision_name", snap.DecisionName)

	event := hermes.DecisionSavedEvent{
		DecisionID:   snap.ID,
		DecisionName: snap.DecisionName,
		CreatedAt:    snap.CreatedAt.Time(),
	}
	if len(snap.Results) > 0 {
		event.BestOption = snap.Results[0].Name
		event.BestScore = snap.Results[0].Score
	}
	s.publish(ctx, hermes.SubjectDecisionSaved(snap.ID), event)
	return snap, nil
}

func (s *Service) ScoreAndSave(ctx context.Context, d Draft) (*store.Decision, error) {
	results, err := s.Score(ctx, d)
	if err != nil {
		return nil, err
	}
	return s.Save(ctx, d, results)
}

// List returns saved decisions, most recent first.
func (s *Service) List(ctx context.Context) ([]*store.Decision, error) {
	out, err := s.store.ListDecisions(ctx)
	if err != nil {
		return nil, s.storageFailure("list", err)
	}
	if out == nil {
		out = []*store.Decision{}
	}
	return out, nil
}

// Get returns store.ErrNotFound when no decision has the id.
func (s *Service) Get(ctx context.Context, id string) (*store.Decision, error) {
	d, err := s.store.GetDecision(ctx, id)
	if err != nil {
		return nil, s.storageFailure("get", err, "decision_id", id)
	}
	if d == nil {
		return nil, store.ErrNotFound
	}
	return d, nil
}

// Delete removes a decision. Deleting an id that does not exist succeeds with
// deleted=false.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	err := s.store.DeleteDecision(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		s.metrics.DecisionsDeleted.WithLabelValues("already_deleted").Inc()
		return false, nil
	}
	if err != nil {
		return false, s.storageFailure("delete", err, "decision_id", id)
	}
	s.metrics.DecisionsDeleted.WithLabelValues("deleted").Inc()
	s.logger.Info("decision deleted", "decision_id", id)

	s.publish(ctx, hermes.SubjectDecisionDeleted(id), hermes.DecisionDeletedEvent{
		DecisionID: id,
		Timestamp:  s.now().UTC(),
	})
	return true, nil
}

func (s *Service) storageFailure(op string, err error, attrs ...any) error {
	s.metrics.StorageErrors.WithLabelValues(op).Inc()
	s.logger.Error("storage operation failed", append([]any{"op", op, "error", err}, attrs...)...)
	return &StorageError{Op: op, Err: err}
}

func (s *Service) publish(ctx context.Context, subject string, event interface{}) {
	if s.events == nil {
		return
	}
	if err := s.events.Publish(ctx, subject, event); err != nil {
		s.logger.Warn("failed to publish event", "subject", subject, "error", err)
	}
}

func cloneResults(in []scoring.ScoredOption) []scoring.ScoredOption {
	out := make([]scoring.ScoredOption, len(in))
	for i, r := range in {
		out[i] = scoring.ScoredOption{Option: r.Option.Clone(), Score: r.Score}
	}
	return out
}
