package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MikeSquared-Agency/Decide/internal/scoring"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore is an in-process Store for tests and throwaway servers.
// Stored decisions are deep copies, so callers cannot mutate them afterwards.
type MemoryStore struct {
	mu        sync.RWMutex
	decisions map[string]*Decision
	now       func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		decisions: make(map[string]*Decision),
		now:       time.Now,
	}
}

func (m *MemoryStore) CreateDecision(_ context.Context, d *Decision) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	d.ID = uuid.NewString()
	d.CreatedAt = NewTimestamp(m.now())
	m.decisions[d.ID] = cloneDecision(d)
	return nil
}

func (m *MemoryStore) ListDecisions(_ context.Context) ([]*Decision, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Decision, 0, len(m.decisions))
	for _, d := range m.decisions {
		out = append(out, cloneDecision(d))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt == out[j].CreatedAt {
			return out[i].ID > out[j].ID
		}
		return out[j].CreatedAt.Before(out[i].CreatedAt)
	})
	return out, nil
}

func (m *MemoryStore) GetDecision(_ context.Context, id string) (*Decision, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	d, ok := m.decisions[id]
	if !ok {
		return nil, nil
	}
	return cloneDecision(d), nil
}

func (m *MemoryStore) DeleteDecision(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.decisions[id]; !ok {
		return ErrNotFound
	}
	delete(m.decisions, id)
	return nil
}

func (m *MemoryStore) Close() error { return nil }

func cloneDecision(d *Decision) *Decision {
	out := *d
	out.Criteria = scoring.CloneCriteria(d.Criteria)
	out.Options = scoring.CloneOptions(d.Options)
	if d.Results != nil {
		out.Results = make([]scoring.ScoredOption, len(d.Results))
		for i, r := range d.Results {
			out.Results[i] = scoring.ScoredOption{Option: r.Option.Clone(), Score: r.Score}
		}
	}
	return &out
}
