package eventstore

import (
	"context"
	"errors"
	"event-naming-service/internal/platform/db"
	"fmt"
)

// Initialize the Postgres event store schema.
func InitPostgresSchema(ctx context.Context, pool db.Pool) error {
	if pool == nil {
		return errors.New("init schema: pool is nil")
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	statements := []string{
		`CREATE TABLE IF NOT EXISTS events (
			event_id TEXT PRIMARY KEY,
			preferred_origin_id TEXT NOT NULL DEFAULT '',
			latitude DOUBLE PRECISION NOT NULL DEFAULT 0,
			longitude DOUBLE PRECISION NOT NULL DEFAULT 0,
			modified_at TIMESTAMPTZ
		)`,
		`CREATE TABLE IF NOT EXISTS event_descriptions (
			event_id TEXT NOT NULL REFERENCES events(event_id) ON DELETE CASCADE,
			type TEXT NOT NULL,
			text TEXT NOT NULL,
			PRIMARY KEY (event_id, type)
		)`,
		`CREATE TABLE IF NOT EXISTS event_comments (
			event_id TEXT NOT NULL REFERENCES events(event_id) ON DELETE CASCADE,
			comment_id TEXT NOT NULL,
			text TEXT NOT NULL,
			PRIMARY KEY (event_id, comment_id)
		)`,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
