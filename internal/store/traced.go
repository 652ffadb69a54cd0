package store

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Traced wraps s so every call runs inside a span named "store.<Method>".
func Traced(s Store, tracer trace.Tracer) Store {
	return &tracedStore{inner: s, tracer: tracer}
}

type tracedStore struct {
	inner  Store
	tracer trace.Tracer
}

func (t *tracedStore) CreateDecision(ctx context.Context, d *Decision) error {
	ctx, span := t.tracer.Start(ctx, "store.CreateDecision",
		trace.WithAttributes(
			attribute.String("decision.name", d.DecisionName),
			attribute.Int("decision.criteria", len(d.Criteria)),
			attribute.Int("decision.options", len(d.Options)),
		),
	)
	defer span.End()

	err := t.inner.CreateDecision(ctx, d)
	if err != nil {
		recordError(span, err)
		return err
	}
	span.SetAttributes(attribute.String("decision.id", d.ID))
	return nil
}

func (t *tracedStore) ListDecisions(ctx context.Context) ([]*Decision, error) {
	ctx, span := t.tracer.Start(ctx, "store.ListDecisions")
	defer span.End()

	out, err := t.inner.ListDecisions(ctx)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("decision.count", len(out)))
	return out, nil
}

func (t *tracedStore) GetDecision(ctx context.Context, id string) (*Decision, error) {
	ctx, span := t.tracer.Start(ctx, "store.GetDecision",
		trace.WithAttributes(attribute.String("decision.id", id)),
	)
	defer span.End()

	d, err := t.inner.GetDecision(ctx, id)
	if err != nil {
		recordError(span, err)
		return nil, err
	}
	span.SetAttributes(attribute.Bool("decision.found", d != nil))
	return d, nil
}

func (t *tracedStore) DeleteDecision(ctx context.Context, id string) error {
	ctx, span := t.tracer.Start(ctx, "store.DeleteDecision",
		trace.WithAttributes(attribute.String("decision.id", id)),
	)
	defer span.End()

	err := t.inner.DeleteDecision(ctx, id)
	// A missing row is an expected outcome, not a failed call.
	if err != nil && !errors.Is(err, ErrNotFound) {
		recordError(span, err)
	}
	return err
}

func (t *tracedStore) Close() error {
	return t.inner.Close()
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
