package eventstore

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the SQLite event store schema.
func InitSqliteSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createEventsQuery := `
	CREATE TABLE IF NOT EXISTS events (
		event_id TEXT PRIMARY KEY,
		preferred_origin_id TEXT NOT NULL DEFAULT '',
		latitude REAL NOT NULL DEFAULT 0,
		longitude REAL NOT NULL DEFAULT 0,
		modified_at TEXT
	);
	`

	createDescriptionsQuery := `
	CREATE TABLE IF NOT EXISTS event_descriptions (
		event_id TEXT NOT NULL REFERENCES events(event_id) ON DELETE CASCADE,
		type TEXT NOT NULL,
		text TEXT NOT NULL,
		PRIMARY KEY (event_id, type)
	);
	`

	createCommentsQuery := `
	CREATE TABLE IF NOT EXISTS event_comments (
		event_id TEXT NOT NULL REFERENCES events(event_id) ON DELETE CASCADE,
		comment_id TEXT NOT NULL,
		text TEXT NOT NULL,
		PRIMARY KEY (event_id, comment_id)
	);
	`

	statements := []string{
		createEventsQuery,
		createDescriptionsQuery,
		createCommentsQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
