package eventstore

import (
	"context"
	"encoding/json"
	"event-naming-service/internal/domain"
	"event-naming-service/internal/ports"
	"fmt"
	"os"
	"strings"
)

type EventSeed struct {
	EventID           string            `json:"event_id"`
	PreferredOriginID string            `json:"preferred_origin_id"`
	Latitude          float64           `json:"latitude"`
	Longitude         float64           `json:"longitude"`
	Descriptions      map[string]string `json:"descriptions"`
}

// Populate an event store with events read from a JSON file.
// Returns the number of events written.
func SeedFromJSON(ctx context.Context, seeder ports.EventSeeder, jsonPath string) (int, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("seed events: read %q: %w", jsonPath, err)
	}

	var data []EventSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return 0, fmt.Errorf("seed events: parse json: %w", err)
	}

	events := make([]*domain.Event, 0, len(data))
	for i, item := range data {
		id := strings.TrimSpace(item.EventID)
		if id == "" {
			return 0, fmt.Errorf("seed events: item at index %d: event_id cannot be empty", i+1)
		}

		// Events without a preferred origin are stored as-is; their
		// coordinates are not validated.
		origin := domain.Coordinates{Lat: item.Latitude, Lon: item.Longitude}
		if item.PreferredOriginID != "" {
			origin, err = domain.NewCoordinates(item.Latitude, item.Longitude)
			if err != nil {
				return 0, fmt.Errorf("seed events: event %q: %w", id, err)
			}
		}

		ev := &domain.Event{
			EventID:           id,
			PreferredOriginID: strings.TrimSpace(item.PreferredOriginID),
			Origin:            origin,
		}
		for _, t := range []domain.DescriptionType{domain.DescriptionRegionName, domain.DescriptionEarthquakeName} {
			if text, ok := item.Descriptions[string(t)]; ok {
				ev.Descriptions = append(ev.Descriptions, domain.EventDescription{Type: t, Text: text})
			}
		}
		events = append(events, ev)
	}

	for _, ev := range events {
		if err := seeder.SaveEvent(ctx, ev); err != nil {
			return 0, fmt.Errorf("seed events: %w", err)
		}
	}

	return len(events), nil
}
