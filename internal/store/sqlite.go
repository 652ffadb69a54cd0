package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLiteStore keeps decisions in a single SQLite file. JSON documents are
// stored as text; created_at is unix nanoseconds so ordering is exact.
type SQLiteStore struct {
	db  *sqlx.DB
	now func() time.Time
}

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS decisions (
	id            TEXT PRIMARY KEY,
	decision_name TEXT NOT NULL,
	criteria      TEXT NOT NULL DEFAULT '[]',
	options       TEXT NOT NULL DEFAULT '[]',
	results       TEXT NOT NULL DEFAULT '[]',
	created_at    INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS decisions_created_at_idx ON decisions (created_at DESC);
`

type sqliteDecisionRow struct {
	ID           string `db:"id"`
	DecisionName string `db:"decision_name"`
	Criteria     string `db:"criteria"`
	Options      string `db:"options"`
	Results      string `db:"results"`
	CreatedAt    int64  `db:"created_at"`
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteStore{db: db, now: time.Now}, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateDecision(ctx context.Context, d *Decision) error {
	criteriaJSON, optionsJSON, resultsJSON, err := marshalDocument(d)
	if err != nil {
		return err
	}

	id := uuid.NewString()
	createdAt := s.now().UTC()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO decisions (id, decision_name, criteria, options, results, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		id, d.DecisionName, string(criteriaJSON), string(optionsJSON), string(resultsJSON), createdAt.UnixNano(),
	)
	if err != nil {
		return err
	}
	d.ID = id
	d.CreatedAt = NewTimestamp(createdAt)
	return nil
}

func (s *SQLiteStore) ListDecisions(ctx context.Context) ([]*Decision, error) {
	var rows []sqliteDecisionRow
	if err := s.db.SelectContext(ctx, &rows, `
		SELECT id, decision_name, criteria, options, results, created_at
		FROM decisions
		ORDER BY created_at DESC, rowid DESC`); err != nil {
		return nil, err
	}

	out := make([]*Decision, 0, len(rows))
	for _, r := range rows {
		d, err := r.decision()
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *SQLiteStore) GetDecision(ctx context.Context, id string) (*Decision, error) {
	var r sqliteDecisionRow
	err := s.db.GetContext(ctx, &r, `
		SELECT id, decision_name, criteria, options, results, created_at
		FROM decisions WHERE id = ?`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return r.decision()
}

func (s *SQLiteStore) DeleteDecision(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM decisions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r sqliteDecisionRow) decision() (*Decision, error) {
	d := &Decision{
		ID:           r.ID,
		DecisionName: r.DecisionName,
		CreatedAt:    NewTimestamp(time.Unix(0, r.CreatedAt)),
	}
	if err := unmarshalDocument(d, []byte(r.Criteria), []byte(r.Options), []byte(r.Results)); err != nil {
		return nil, fmt.Errorf("decision %s: %w", r.ID, err)
	}
	return d, nil
}
