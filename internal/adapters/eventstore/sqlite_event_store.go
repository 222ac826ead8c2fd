package eventstore

import (
	"context"
	"database/sql"
	"errors"
	"event-naming-service/internal/domain"
	"fmt"
	"strings"
	"time"
)

// SQLite-backed implementation of the EventStore port.
type SqliteEventStore struct {
	DB *sql.DB
}

func NewSqliteEventStore(db *sql.DB) *SqliteEventStore {
	return &SqliteEventStore{DB: db}
}

// Load one event with its descriptions and comments.
func (s *SqliteEventStore) GetEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	if s.DB == nil {
		return nil, errors.New("sqlite event store: DB is nil")
	}

	ev := &domain.Event{EventID: eventID}
	var modified sql.NullString

	err := s.DB.QueryRowContext(ctx, `
	SELECT
		preferred_origin_id,
		latitude,
		longitude,
		modified_at
	FROM events
	WHERE event_id = ?;
	`, eventID).Scan(&ev.PreferredOriginID, &ev.Origin.Lat, &ev.Origin.Lon, &modified)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get event %q: %w", eventID, domain.ErrEventNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get event %q: query events table: %w", eventID, err)
	}

	if modified.Valid && modified.String != "" {
		ts, err := time.Parse(time.RFC3339Nano, modified.String)
		if err != nil {
			return nil, fmt.Errorf("get event %q: parse modified_at: %w", eventID, err)
		}
		ev.ModifiedAt = &ts
	}

	rows, err := s.DB.QueryContext(ctx, `
	SELECT
		type,
		text
	FROM event_descriptions
	WHERE event_id = ?
	ORDER BY type;
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event %q: query event_descriptions table: %w", eventID, err)
	}
	defer rows.Close()

	for rows.Next() {
		var typ, text string
		if err := rows.Scan(&typ, &text); err != nil {
			return nil, fmt.Errorf("get event %q: scan description: %w", eventID, err)
		}
		ev.Descriptions = append(ev.Descriptions, domain.EventDescription{Type: domain.DescriptionType(typ), Text: text})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get event %q: description iteration: %w", eventID, err)
	}

	crows, err := s.DB.QueryContext(ctx, `
	SELECT
		comment_id,
		text
	FROM event_comments
	WHERE event_id = ?
	ORDER BY comment_id;
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event %q: query event_comments table: %w", eventID, err)
	}
	defer crows.Close()

	for crows.Next() {
		var c domain.Comment
		if err := crows.Scan(&c.ID, &c.Text); err != nil {
			return nil, fmt.Errorf("get event %q: scan comment: %w", eventID, err)
		}
		ev.Comments = append(ev.Comments, c)
	}
	if err := crows.Err(); err != nil {
		return nil, fmt.Errorf("get event %q: comment iteration: %w", eventID, err)
	}

	return ev, nil
}

// Insert or replace descriptions and bump the event modification time.
func (s *SqliteEventStore) UpdateDescriptions(
	ctx context.Context,
	eventID string,
	descs []domain.EventDescription,
	modifiedAt time.Time,
) error {
	if s.DB == nil {
		return errors.New("sqlite event store: DB is nil")
	}

	if len(descs) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("update descriptions: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
	UPDATE events
	SET modified_at = ?
	WHERE event_id = ?;
	`, modifiedAt.UTC().Format(time.RFC3339Nano), eventID)
	if err != nil {
		return fmt.Errorf("update descriptions: touch event %q: %w", eventID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("update descriptions: %q: %w", eventID, domain.ErrEventNotFound)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT OR REPLACE INTO event_descriptions (
		event_id,
		type,
		text
	)
	VALUES (?, ?, ?);
	`)
	if err != nil {
		return fmt.Errorf("update descriptions: db prepare: %w", err)
	}
	defer stmt.Close()

	for _, d := range descs {
		if strings.TrimSpace(string(d.Type)) == "" {
			return fmt.Errorf("update descriptions: empty description type")
		}

		if _, err := stmt.ExecContext(ctx, eventID, string(d.Type), d.Text); err != nil {
			return fmt.Errorf("update descriptions: insert type=%q: %w", d.Type, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("update descriptions: commit: %w", err)
	}

	return nil
}

// Attach or replace a comment.
func (s *SqliteEventStore) AddComment(ctx context.Context, eventID string, comment domain.Comment) error {
	if s.DB == nil {
		return errors.New("sqlite event store: DB is nil")
	}

	_, err := s.DB.ExecContext(ctx, `
	INSERT OR REPLACE INTO event_comments (
		event_id,
		comment_id,
		text
	)
	VALUES (?, ?, ?);
	`, eventID, comment.ID, comment.Text)
	if err != nil {
		return fmt.Errorf("add comment %q to %q: %w", comment.ID, eventID, err)
	}

	return nil
}

// Insert or replace an event row together with its descriptions.
func (s *SqliteEventStore) SaveEvent(ctx context.Context, ev *domain.Event) error {
	if s.DB == nil {
		return errors.New("sqlite event store: DB is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save event: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var modified any
	if ev.ModifiedAt != nil {
		modified = ev.ModifiedAt.UTC().Format(time.RFC3339Nano)
	}

	_, err = tx.ExecContext(ctx, `
	INSERT INTO events (
		event_id,
		preferred_origin_id,
		latitude,
		longitude,
		modified_at
	)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT (event_id) DO UPDATE
	SET preferred_origin_id = excluded.preferred_origin_id,
		latitude = excluded.latitude,
		longitude = excluded.longitude,
		modified_at = excluded.modified_at;
	`, ev.EventID, ev.PreferredOriginID, ev.Origin.Lat, ev.Origin.Lon, modified)
	if err != nil {
		return fmt.Errorf("save event %q: %w", ev.EventID, err)
	}

	for _, d := range ev.Descriptions {
		if _, err := tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO event_descriptions (event_id, type, text)
		VALUES (?, ?, ?);
		`, ev.EventID, string(d.Type), d.Text); err != nil {
			return fmt.Errorf("save event %q: description %q: %w", ev.EventID, d.Type, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save event %q: commit: %w", ev.EventID, err)
	}

	return nil
}
