// README: Launch event store backed by PostgreSQL.
package dispatch

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type PGStore struct {
	db *pgxpool.Pool
}

func NewPGStore(db *pgxpool.Pool) *PGStore {
	return &PGStore{db: db}
}

// EnsureSchema creates the launch event table if it does not exist yet.
func (s *PGStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, `
        CREATE TABLE IF NOT EXISTS launch_events (
            id          BIGSERIAL PRIMARY KEY,
            provider_id TEXT NOT NULL,
            outcome     TEXT NOT NULL,
            uri         TEXT NOT NULL DEFAULT '',
            created_at  TIMESTAMPTZ NOT NULL
        )`)
	return err
}

func (s *PGStore) Append(ctx context.Context, e Event) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO launch_events (provider_id, outcome, uri, created_at)
        VALUES ($1, $2, $3, $4)`,
		e.ProviderID,
		string(e.Outcome),
		e.URI,
		e.CreatedAt,
	)
	return err
}
