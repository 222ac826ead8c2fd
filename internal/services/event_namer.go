package services

import (
	"context"
	"event-naming-service/internal/config"
	"event-naming-service/internal/domain"
	"event-naming-service/internal/platform/obs"
	"event-naming-service/internal/ports"
	"fmt"
	"sync"
	"time"

	geohash "github.com/TomiHiltunen/geohash-golang"
	"go.uber.org/zap"
)

// CommentID identifies the annotation comment written next to the descriptions.
const CommentID = "EventNaming"

// EventNamer applies nearest-location descriptions to stored events.
//
// The gazetteer and config are read-only, so one EventNamer may serve
// concurrent NameEvent calls.
type EventNamer struct {
	Store     ports.EventStore
	Gazetteer domain.Gazetteer
	Config    config.ResolutionConfig
	Logger    *zap.Logger
	// DryRun computes everything but skips all store writes.
	DryRun bool
	// Annotate adds a comment with the raw distance, direction and epicentre.
	Annotate bool
	Now      func() time.Time
}

// NamingOutcome reports what happened to a single event.
type NamingOutcome struct {
	EventID     string
	Origin      domain.Coordinates
	Matched     bool
	Description *Description
	// Descriptions whose stored text differs from the computed one.
	Updates []domain.EventDescription
	Written bool
	Comment *domain.Comment
	// Set by NameEvents only; NameEvent returns errors directly.
	Err error
}

func (n *EventNamer) logger() *zap.Logger {
	if n.Logger == nil {
		return zap.NewNop()
	}
	return n.Logger
}

func (n *EventNamer) now() time.Time {
	if n.Now == nil {
		return time.Now().UTC()
	}
	return n.Now()
}

// NameEvent resolves the epicentre of one event and writes the resulting
// earthquake name (and region name when configured).
//
// No location within range is not an error: the outcome has Matched=false
// and the store is not touched.
func (n *EventNamer) NameEvent(ctx context.Context, eventID string) (_ *NamingOutcome, err error) {
	defer obs.Time(ctx, n.logger(), "event.name")(&err)

	log := n.logger().With(zap.String("event_id", eventID))

	ev, err := n.Store.GetEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("name event %q: load: %w", eventID, err)
	}
	if ev.PreferredOriginID == "" {
		return nil, fmt.Errorf("name event %q: %w", eventID, domain.ErrNoPreferredOrigin)
	}

	point, err := domain.NewCoordinates(ev.Origin.Lat, ev.Origin.Lon)
	if err != nil {
		return nil, fmt.Errorf("name event %q: origin %s: %w", eventID, ev.PreferredOriginID, err)
	}
	log.Debug("event coordinates", zap.Float64("lat", point.Lat), zap.Float64("lon", point.Lon))

	out := &NamingOutcome{EventID: eventID, Origin: point}

	desc, err := DescribePoint(ctx, point, n.Gazetteer, n.Config)
	if err != nil {
		return nil, fmt.Errorf("name event %q: %w", eventID, err)
	}
	if desc == nil {
		log.Info("no location within max distance",
			zap.Float64("max_distance_km", n.Config.MaxDistanceKm),
			zap.Stringer("origin", point),
		)
		return out, nil
	}

	out.Matched = true
	out.Description = desc
	log.Info("location matched",
		zap.String("location", desc.Match.Location.Label()),
		zap.Float64("distance_km", desc.Match.DistanceKm),
		zap.Float64("bearing_deg", desc.Match.BearingDeg),
		zap.String("direction", desc.Match.Direction),
		zap.String("description", desc.Description),
	)

	wanted := make([]domain.EventDescription, 0, 2)
	if n.Config.UpdateRegion {
		wanted = append(wanted, domain.EventDescription{Type: domain.DescriptionRegionName, Text: desc.RegionName})
	}
	wanted = append(wanted, domain.EventDescription{Type: domain.DescriptionEarthquakeName, Text: desc.Description})

	for _, d := range wanted {
		if current, ok := ev.Description(d.Type); ok && current == d.Text {
			continue
		}
		out.Updates = append(out.Updates, d)
	}

	if n.Annotate {
		out.Comment = &domain.Comment{
			ID: CommentID,
			Text: fmt.Sprintf(
				"Location details: Distance=%dkm, Direction=%s, Coordinates=%.3f,%.3f, Geohash=%s",
				desc.DistanceKm, desc.Match.Direction, point.Lat, point.Lon,
				geohash.Encode(point.Lat, point.Lon),
			),
		}
	}

	if n.DryRun {
		log.Info("dry run: skipping event update",
			zap.Int("pending_updates", len(out.Updates)),
			zap.Bool("annotate", out.Comment != nil),
		)
		return out, nil
	}

	if len(out.Updates) == 0 {
		log.Info("no changes needed")
	} else {
		if err := n.Store.UpdateDescriptions(ctx, eventID, out.Updates, n.now()); err != nil {
			return nil, fmt.Errorf("name event %q: update descriptions: %w", eventID, err)
		}
		out.Written = true
		log.Info("updated event descriptions", zap.Int("count", len(out.Updates)))
	}

	if out.Comment != nil {
		if err := n.Store.AddComment(ctx, eventID, *out.Comment); err != nil {
			return nil, fmt.Errorf("name event %q: add comment: %w", eventID, err)
		}
	}

	return out, nil
}

// NameEvents names a batch of events with at most concurrency in flight.
// A failing event does not stop the batch; its error is kept on its outcome.
// Outcomes are returned in the order of eventIDs.
func (n *EventNamer) NameEvents(ctx context.Context, eventIDs []string, concurrency int) []*NamingOutcome {
	if concurrency < 1 {
		concurrency = 1
	}

	outcomes := make([]*NamingOutcome, len(eventIDs))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	for i, id := range eventIDs {
		wg.Add(1)
		go func(i int, id string) {
			sem <- struct{}{}
			defer wg.Done()
			defer func() { <-sem }()

			if err := ctx.Err(); err != nil {
				outcomes[i] = &NamingOutcome{EventID: id, Err: err}
				return
			}

			out, err := n.NameEvent(ctx, id)
			if err != nil {
				n.logger().Warn("event naming failed", zap.String("event_id", id), zap.Error(err))
				outcomes[i] = &NamingOutcome{EventID: id, Err: err}
				return
			}
			outcomes[i] = out
		}(i, id)
	}

	wg.Wait()
	return outcomes
}
