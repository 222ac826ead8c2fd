package eventstore

import (
	"context"
	"event-naming-service/internal/domain"
	"event-naming-service/internal/ports"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ ports.EventStore  = (*MemoryEventStore)(nil)
	_ ports.EventSeeder = (*MemoryEventStore)(nil)
	_ ports.EventStore  = (*SqliteEventStore)(nil)
	_ ports.EventSeeder = (*SqliteEventStore)(nil)
	_ ports.EventStore  = (*PostgresEventStore)(nil)
	_ ports.EventSeeder = (*PostgresEventStore)(nil)
)

func TestMemoryEventStore_GetReturnsCopy(t *testing.T) {
	store := NewMemoryEventStore(sampleEvent())

	ev, err := store.GetEvent(context.Background(), "ga2024abcd")
	require.NoError(t, err)
	ev.Descriptions[0].Text = "mutated"

	again, err := store.GetEvent(context.Background(), "ga2024abcd")
	require.NoError(t, err)
	assert.Equal(t, "Western Australia", again.Descriptions[0].Text)
}

func TestMemoryEventStore_UpdateDescriptions(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryEventStore(sampleEvent())
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	err := store.UpdateDescriptions(ctx, "ga2024abcd", []domain.EventDescription{
		{Type: domain.DescriptionRegionName, Text: "replaced"},
		{Type: domain.DescriptionEarthquakeName, Text: "added"},
	}, now)
	require.NoError(t, err)

	ev, err := store.GetEvent(ctx, "ga2024abcd")
	require.NoError(t, err)
	require.Len(t, ev.Descriptions, 2)
	region, _ := ev.Description(domain.DescriptionRegionName)
	name, _ := ev.Description(domain.DescriptionEarthquakeName)
	assert.Equal(t, "replaced", region)
	assert.Equal(t, "added", name)
	require.NotNil(t, ev.ModifiedAt)
	assert.True(t, now.Equal(*ev.ModifiedAt))
}

func TestMemoryEventStore_UnknownEvent(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryEventStore()

	_, err := store.GetEvent(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrEventNotFound)

	err = store.UpdateDescriptions(ctx, "missing", []domain.EventDescription{{Type: domain.DescriptionEarthquakeName}}, time.Now())
	assert.ErrorIs(t, err, domain.ErrEventNotFound)

	err = store.AddComment(ctx, "missing", domain.Comment{ID: "EventNaming"})
	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}

func TestMemoryEventStore_AddCommentReplaces(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryEventStore(sampleEvent())

	require.NoError(t, store.AddComment(ctx, "ga2024abcd", domain.Comment{ID: "EventNaming", Text: "a"}))
	require.NoError(t, store.AddComment(ctx, "ga2024abcd", domain.Comment{ID: "EventNaming", Text: "b"}))

	ev, err := store.GetEvent(ctx, "ga2024abcd")
	require.NoError(t, err)
	require.Len(t, ev.Comments, 1)
	assert.Equal(t, "b", ev.Comments[0].Text)
}
