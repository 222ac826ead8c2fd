package ports

import (
	"context"
	"event-naming-service/internal/domain"
	"time"
)

// Port: the event store that owns persistence of event descriptions.
// The naming pipeline never opens connections itself; it only calls this.
type EventStore interface {
	// Load an event with its preferred origin and current descriptions.
	// Returns domain.ErrEventNotFound when the id is unknown.
	GetEvent(ctx context.Context, eventID string) (*domain.Event, error)
	// Insert or replace the given descriptions and stamp the modification time.
	UpdateDescriptions(ctx context.Context, eventID string, descs []domain.EventDescription, modifiedAt time.Time) error
	// Attach a comment to the event, replacing one with the same id.
	AddComment(ctx context.Context, eventID string, comment domain.Comment) error
}

// Optional extension used by schema seeding and tests.
type EventSeeder interface {
	SaveEvent(ctx context.Context, event *domain.Event) error
}
