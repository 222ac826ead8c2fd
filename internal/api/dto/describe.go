package dto

import (
	"event-naming-service/internal/domain"
	"event-naming-service/internal/services"

	"github.com/twpayne/go-geom/encoding/geojson"
)

type DescribeRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`

	// Optional per-request overrides of the server configuration.
	DirectionFormat string   `json:"direction_format"`
	MaxDistanceKm   *float64 `json:"max_distance_km"`
}

type DescribeResponse struct {
	Matched      bool             `json:"matched"`
	Description  string           `json:"description,omitempty"`
	RegionName   string           `json:"region_name,omitempty"`
	DistanceKm   int64            `json:"distance_km,omitempty"`
	RawDistance  float64          `json:"raw_distance_km,omitempty"`
	BearingDeg   float64          `json:"bearing_deg,omitempty"`
	Direction    string           `json:"direction,omitempty"`
	Location     *geojson.Feature `json:"location,omitempty"`
	PointGeohash string           `json:"point_geohash"`
}

// NewDescribeResponse maps a description onto the wire shape.
// A nil description yields matched=false.
func NewDescribeResponse(point domain.Coordinates, d *services.Description) DescribeResponse {
	res := DescribeResponse{PointGeohash: Geohash(point)}
	if d == nil {
		return res
	}

	res.Matched = true
	res.Description = d.Description
	res.RegionName = d.RegionName
	res.DistanceKm = d.DistanceKm
	res.RawDistance = d.Match.DistanceKm
	res.BearingDeg = d.Match.BearingDeg
	res.Direction = d.Match.Direction
	res.Location = LocationFeature(d.Match.Location)
	return res
}
