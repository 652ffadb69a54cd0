package store

import (
	"context"
	"errors"
	"time"

	"github.com/MikeSquared-Agency/Decide/internal/scoring"
)

// ErrNotFound is returned by DeleteDecision when no decision has the given id.
var ErrNotFound = errors.New("decision not found")

// Timestamp is a wall-clock time split into whole seconds and nanoseconds,
// the shape saved decisions carry on the wire.
type Timestamp struct {
	Seconds     int64 `json:"seconds"`
	Nanoseconds int32 `json:"nanoseconds"`
}

func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Seconds: t.Unix(), Nanoseconds: int32(t.Nanosecond())}
}

func (ts Timestamp) Time() time.Time {
	return time.Unix(ts.Seconds, int64(ts.Nanoseconds)).UTC()
}

func (ts Timestamp) IsZero() bool {
	return ts.Seconds == 0 && ts.Nanoseconds == 0
}

// Before orders timestamps by seconds, then nanoseconds.
func (ts Timestamp) Before(o Timestamp) bool {
	if ts.Seconds != o.Seconds {
		return ts.Seconds < o.Seconds
	}
	return ts.Nanoseconds < o.Nanoseconds
}

// Decision is a saved snapshot: the inputs of a decision together with the
// ranked results computed from them. It is never updated once created.
type Decision struct {
	ID           string                 `json:"id"`
	DecisionName string                 `json:"decisionName"`
	Criteria     []scoring.Criterion    `json:"criteria"`
	Options      []scoring.Option       `json:"options"`
	Results      []scoring.ScoredOption `json:"results"`
	CreatedAt    Timestamp              `json:"createdAt"`
}

// Store persists decision snapshots. Writes are append-only; there is no update.
type Store interface {
	// CreateDecision assigns ID and CreatedAt on d.
	CreateDecision(ctx context.Context, d *Decision) error
	// ListDecisions returns every decision, most recent first.
	ListDecisions(ctx context.Context) ([]*Decision, error)
	// GetDecision returns nil, nil when the id is unknown.
	GetDecision(ctx context.Context, id string) (*Decision, error)
	// DeleteDecision returns ErrNotFound when the id is unknown.
	DeleteDecision(ctx context.Context, id string) error

	Close() error
}
