package dto

import (
	"event-naming-service/internal/domain"
	"event-naming-service/internal/services"
	"time"
)

type DescriptionResponse struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type CommentResponse struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

type EventResponse struct {
	EventID           string                `json:"event_id"`
	PreferredOriginID string                `json:"preferred_origin_id"`
	Latitude          float64               `json:"latitude"`
	Longitude         float64               `json:"longitude"`
	Descriptions      []DescriptionResponse `json:"descriptions"`
	Comments          []CommentResponse     `json:"comments"`
	ModifiedAt        *time.Time            `json:"modified_at"`
}

func NewEventResponse(ev *domain.Event) EventResponse {
	res := EventResponse{
		EventID:           ev.EventID,
		PreferredOriginID: ev.PreferredOriginID,
		Latitude:          ev.Origin.Lat,
		Longitude:         ev.Origin.Lon,
		Descriptions:      descriptions(ev.Descriptions),
		Comments:          make([]CommentResponse, 0, len(ev.Comments)),
		ModifiedAt:        ev.ModifiedAt,
	}
	for _, c := range ev.Comments {
		res.Comments = append(res.Comments, CommentResponse{ID: c.ID, Text: c.Text})
	}
	return res
}

type NamingResponse struct {
	EventID  string                `json:"event_id"`
	DryRun   bool                  `json:"dry_run"`
	Written  bool                  `json:"written"`
	Updates  []DescriptionResponse `json:"updates"`
	Comment  *CommentResponse      `json:"comment,omitempty"`
	Describe DescribeResponse      `json:"result"`
}

func NewNamingResponse(out *services.NamingOutcome, dryRun bool) NamingResponse {
	res := NamingResponse{
		EventID:  out.EventID,
		DryRun:   dryRun,
		Written:  out.Written,
		Updates:  descriptions(out.Updates),
		Describe: NewDescribeResponse(out.Origin, out.Description),
	}
	if out.Comment != nil {
		res.Comment = &CommentResponse{ID: out.Comment.ID, Text: out.Comment.Text}
	}
	return res
}

func descriptions(in []domain.EventDescription) []DescriptionResponse {
	out := make([]DescriptionResponse, 0, len(in))
	for _, d := range in {
		out = append(out, DescriptionResponse{Type: string(d.Type), Text: d.Text})
	}
	return out
}
