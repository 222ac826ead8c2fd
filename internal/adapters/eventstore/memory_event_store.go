package eventstore

import (
	"context"
	"event-naming-service/internal/domain"
	"fmt"
	"sync"
	"time"
)

// MemoryEventStore keeps events in a map. Used by tests and the "memory" driver.
type MemoryEventStore struct {
	mu     sync.RWMutex
	events map[string]*domain.Event
}

func NewMemoryEventStore(events ...*domain.Event) *MemoryEventStore {
	m := make(map[string]*domain.Event, len(events))
	for _, ev := range events {
		m[ev.EventID] = cloneEvent(ev)
	}
	return &MemoryEventStore{events: m}
}

func (s *MemoryEventStore) GetEvent(ctx context.Context, eventID string) (*domain.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ev, ok := s.events[eventID]
	if !ok {
		return nil, fmt.Errorf("get event %q: %w", eventID, domain.ErrEventNotFound)
	}
	return cloneEvent(ev), nil
}

func (s *MemoryEventStore) UpdateDescriptions(
	ctx context.Context,
	eventID string,
	descs []domain.EventDescription,
	modifiedAt time.Time,
) error {
	if len(descs) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ev, ok := s.events[eventID]
	if !ok {
		return fmt.Errorf("update descriptions: %q: %w", eventID, domain.ErrEventNotFound)
	}

	for _, d := range descs {
		replaced := false
		for i := range ev.Descriptions {
			if ev.Descriptions[i].Type == d.Type {
				ev.Descriptions[i].Text = d.Text
				replaced = true
				break
			}
		}
		if !replaced {
			ev.Descriptions = append(ev.Descriptions, d)
		}
	}

	ts := modifiedAt.UTC()
	ev.ModifiedAt = &ts
	return nil
}

func (s *MemoryEventStore) AddComment(ctx context.Context, eventID string, comment domain.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, ok := s.events[eventID]
	if !ok {
		return fmt.Errorf("add comment %q to %q: %w", comment.ID, eventID, domain.ErrEventNotFound)
	}

	for i := range ev.Comments {
		if ev.Comments[i].ID == comment.ID {
			ev.Comments[i].Text = comment.Text
			return nil
		}
	}
	ev.Comments = append(ev.Comments, comment)
	return nil
}

func (s *MemoryEventStore) SaveEvent(ctx context.Context, ev *domain.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events[ev.EventID] = cloneEvent(ev)
	return nil
}

func cloneEvent(ev *domain.Event) *domain.Event {
	out := *ev
	out.Descriptions = append([]domain.EventDescription(nil), ev.Descriptions...)
	out.Comments = append([]domain.Comment(nil), ev.Comments...)
	if ev.ModifiedAt != nil {
		ts := *ev.ModifiedAt
		out.ModifiedAt = &ts
	}
	return &out
}
