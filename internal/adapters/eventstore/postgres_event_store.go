package eventstore

import (
	"context"
	"errors"
	"event-naming-service/internal/domain"
	"event-naming-service/internal/platform/db"
	"event-naming-service/internal/platform/obs"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// PostgresEventStore implements the EventStore port on a pgx pool.
type PostgresEventStore struct {
	Pool   db.Pool
	Logger *zap.Logger
}

func NewPostgresEventStore(pool db.Pool, logger *zap.Logger) *PostgresEventStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PostgresEventStore{Pool: pool, Logger: logger}
}

// Load one event with its descriptions and comments.
func (s *PostgresEventStore) GetEvent(ctx context.Context, eventID string) (_ *domain.Event, err error) {
	defer obs.Time(ctx, s.Logger, "eventstore.pg.GetEvent")(&err)

	if s.Pool == nil {
		return nil, errors.New("postgres event store: pool is nil")
	}

	ev := &domain.Event{EventID: eventID}
	var modified *time.Time

	err = s.Pool.QueryRow(ctx, `
	SELECT preferred_origin_id, latitude, longitude, modified_at
	FROM events
	WHERE event_id = $1;
	`, eventID).Scan(&ev.PreferredOriginID, &ev.Origin.Lat, &ev.Origin.Lon, &modified)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get event %q: %w", eventID, domain.ErrEventNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get event %q: query events table: %w", eventID, err)
	}
	ev.ModifiedAt = modified

	rows, err := s.Pool.Query(ctx, `
	SELECT type, text
	FROM event_descriptions
	WHERE event_id = $1
	ORDER BY type;
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event %q: query event_descriptions table: %w", eventID, err)
	}
	for rows.Next() {
		var typ, text string
		if err := rows.Scan(&typ, &text); err != nil {
			rows.Close()
			return nil, fmt.Errorf("get event %q: scan description: %w", eventID, err)
		}
		ev.Descriptions = append(ev.Descriptions, domain.EventDescription{Type: domain.DescriptionType(typ), Text: text})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get event %q: description iteration: %w", eventID, err)
	}

	crows, err := s.Pool.Query(ctx, `
	SELECT comment_id, text
	FROM event_comments
	WHERE event_id = $1
	ORDER BY comment_id;
	`, eventID)
	if err != nil {
		return nil, fmt.Errorf("get event %q: query event_comments table: %w", eventID, err)
	}
	for crows.Next() {
		var c domain.Comment
		if err := crows.Scan(&c.ID, &c.Text); err != nil {
			crows.Close()
			return nil, fmt.Errorf("get event %q: scan comment: %w", eventID, err)
		}
		ev.Comments = append(ev.Comments, c)
	}
	crows.Close()
	if err := crows.Err(); err != nil {
		return nil, fmt.Errorf("get event %q: comment iteration: %w", eventID, err)
	}

	return ev, nil
}

// Upsert descriptions and bump the event modification time in one transaction.
func (s *PostgresEventStore) UpdateDescriptions(
	ctx context.Context,
	eventID string,
	descs []domain.EventDescription,
	modifiedAt time.Time,
) (err error) {
	defer obs.Time(ctx, s.Logger, "eventstore.pg.UpdateDescriptions")(&err)

	if s.Pool == nil {
		return errors.New("postgres event store: pool is nil")
	}

	if len(descs) == 0 {
		return nil
	}

	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("update descriptions: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx, `
	UPDATE events
	SET modified_at = $1
	WHERE event_id = $2;
	`, modifiedAt.UTC(), eventID)
	if err != nil {
		return fmt.Errorf("update descriptions: touch event %q: %w", eventID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update descriptions: %q: %w", eventID, domain.ErrEventNotFound)
	}

	for _, d := range descs {
		_, err := tx.Exec(ctx, `
		INSERT INTO event_descriptions (event_id, type, text)
		VALUES ($1, $2, $3)
		ON CONFLICT (event_id, type) DO UPDATE
		SET text = EXCLUDED.text;
		`, eventID, string(d.Type), d.Text)
		if err != nil {
			return fmt.Errorf("update descriptions: upsert type=%q: %w", d.Type, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("update descriptions: commit: %w", err)
	}

	return nil
}

// Attach or replace a comment.
func (s *PostgresEventStore) AddComment(ctx context.Context, eventID string, comment domain.Comment) error {
	if s.Pool == nil {
		return errors.New("postgres event store: pool is nil")
	}

	_, err := s.Pool.Exec(ctx, `
	INSERT INTO event_comments (event_id, comment_id, text)
	VALUES ($1, $2, $3)
	ON CONFLICT (event_id, comment_id) DO UPDATE
	SET text = EXCLUDED.text;
	`, eventID, comment.ID, comment.Text)
	if err != nil {
		return fmt.Errorf("add comment %q to %q: %w", comment.ID, eventID, err)
	}

	return nil
}

// Upsert an event row and its descriptions.
func (s *PostgresEventStore) SaveEvent(ctx context.Context, ev *domain.Event) error {
	if s.Pool == nil {
		return errors.New("postgres event store: pool is nil")
	}

	tx, err := s.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("save event: db begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
	INSERT INTO events (event_id, preferred_origin_id, latitude, longitude, modified_at)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (event_id) DO UPDATE
	SET preferred_origin_id = EXCLUDED.preferred_origin_id,
		latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude,
		modified_at = EXCLUDED.modified_at;
	`, ev.EventID, ev.PreferredOriginID, ev.Origin.Lat, ev.Origin.Lon, ev.ModifiedAt)
	if err != nil {
		return fmt.Errorf("save event %q: %w", ev.EventID, err)
	}

	for _, d := range ev.Descriptions {
		_, err := tx.Exec(ctx, `
		INSERT INTO event_descriptions (event_id, type, text)
		VALUES ($1, $2, $3)
		ON CONFLICT (event_id, type) DO UPDATE
		SET text = EXCLUDED.text;
		`, ev.EventID, string(d.Type), d.Text)
		if err != nil {
			return fmt.Errorf("save event %q: description %q: %w", ev.EventID, d.Type, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("save event %q: commit: %w", ev.EventID, err)
	}

	return nil
}
