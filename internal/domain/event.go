package domain

import "time"

// DescriptionType names the kind of free-text description attached to an event.
type DescriptionType string

const (
	DescriptionRegionName     DescriptionType = "region name"
	DescriptionEarthquakeName DescriptionType = "earthquake name"
)

type EventDescription struct {
	Type DescriptionType
	Text string
}

type Comment struct {
	ID   string
	Text string
}

// Event is the slice of a seismic event the naming pipeline needs:
// its identifier, the preferred origin epicentre and current descriptions.
// PreferredOriginID is empty when the event has no preferred origin yet.
type Event struct {
	EventID           string
	PreferredOriginID string
	Origin            Coordinates
	Descriptions      []EventDescription
	Comments          []Comment
	ModifiedAt        *time.Time
}

// Description returns the text for the given type, if present.
func (e *Event) Description(t DescriptionType) (string, bool) {
	for _, d := range e.Descriptions {
		if d.Type == t {
			return d.Text, true
		}
	}
	return "", false
}
