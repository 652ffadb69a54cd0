package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

const postgresSchema = `
CREATE TABLE IF NOT EXISTS decisions (
	id            UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	decision_name TEXT NOT NULL,
	criteria      JSONB NOT NULL DEFAULT '[]',
	options       JSONB NOT NULL DEFAULT '[]',
	results       JSONB NOT NULL DEFAULT '[]',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS decisions_created_at_idx ON decisions (created_at DESC);
`

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// EnsureSchema creates the decisions table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, postgresSchema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

const decisionColumns = `id, decision_name, criteria, options, results, created_at`

func (s *PostgresStore) CreateDecision(ctx context.Context, d *Decision) error {
	criteriaJSON, optionsJSON, resultsJSON, err := marshalDocument(d)
	if err != nil {
		return err
	}

	var id uuid.UUID
	var createdAt time.Time
	err = s.pool.QueryRow(ctx, `
		INSERT INTO decisions (decision_name, criteria, options, results)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		d.DecisionName, criteriaJSON, optionsJSON, resultsJSON,
	).Scan(&id, &createdAt)
	if err != nil {
		return err
	}
	d.ID = id.String()
	d.CreatedAt = NewTimestamp(createdAt)
	return nil
}

func (s *PostgresStore) ListDecisions(ctx context.Context) ([]*Decision, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+decisionColumns+`
		FROM decisions
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Decision
	for rows.Next() {
		d, err := scanDecision(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *PostgresStore) GetDecision(ctx context.Context, id string) (*Decision, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		// Not a key this store could have issued.
		return nil, nil
	}
	d, err := scanDecision(s.pool.QueryRow(ctx, `
		SELECT `+decisionColumns+`
		FROM decisions WHERE id = $1`, uid))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (s *PostgresStore) DeleteDecision(ctx context.Context, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM decisions WHERE id = $1`, uid)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanDecision(row pgx.Row) (*Decision, error) {
	d := &Decision{}
	var id uuid.UUID
	var criteriaJSON, optionsJSON, resultsJSON []byte
	var createdAt time.Time
	if err := row.Scan(&id, &d.DecisionName, &criteriaJSON, &optionsJSON, &resultsJSON, &createdAt); err != nil {
		return nil, err
	}
	d.ID = id.String()
	d.CreatedAt = NewTimestamp(createdAt)
	if err := unmarshalDocument(d, criteriaJSON, optionsJSON, resultsJSON); err != nil {
		return nil, err
	}
	return d, nil
}

func marshalDocument(d *Decision) (criteria, options, results []byte, err error) {
	if criteria, err = json.Marshal(nonNil(d.Criteria)); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal criteria: %w", err)
	}
	if options, err = json.Marshal(nonNil(d.Options)); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal options: %w", err)
	}
	if results, err = json.Marshal(nonNil(d.Results)); err != nil {
		return nil, nil, nil, fmt.Errorf("marshal results: %w", err)
	}
	return criteria, options, results, nil
}

func unmarshalDocument(d *Decision, criteria, options, results []byte) error {
	if len(criteria) > 0 {
		if err := json.Unmarshal(criteria, &d.Criteria); err != nil {
			return fmt.Errorf("decode criteria: %w", err)
		}
	}
	if len(options) > 0 {
		if err := json.Unmarshal(options, &d.Options); err != nil {
			return fmt.Errorf("decode options: %w", err)
		}
	}
	if len(results) > 0 {
		if err := json.Unmarshal(results, &d.Results); err != nil {
			return fmt.Errorf("decode results: %w", err)
		}
	}
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
