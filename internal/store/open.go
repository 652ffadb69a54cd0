package store

import (
	"context"
	"fmt"

	"github.com/MikeSquared-Agency/Decide/internal/config"
)

// Open builds the Store selected by cfg.Driver. Postgres gets its schema
// applied before it is returned.
func Open(ctx context.Context, cfg config.DatabaseConfig) (Store, error) {
	switch cfg.Driver {
	case "postgres":
		pg, err := NewPostgresStore(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}
		if err := pg.EnsureSchema(ctx); err != nil {
			pg.Close()
			return nil, err
		}
		return pg, nil
	case "sqlite":
		return NewSQLiteStore(cfg.Path)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}
