package dto

import (
	"event-naming-service/internal/domain"

	geohash "github.com/TomiHiltunen/geohash-golang"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"
)

// LocationFeature renders a gazetteer entry as a GeoJSON point feature.
func LocationFeature(loc domain.ReferenceLocation) *geojson.Feature {
	return &geojson.Feature{
		Geometry: geom.NewPointFlat(geom.XY, loc.Coordinates.CoordsToList()),
		Properties: map[string]any{
			"name":       loc.Name,
			"state":      loc.State,
			"country":    loc.Country,
			"population": loc.Population,
			"label":      loc.Label(),
		},
	}
}

// Geohash encodes a point at full precision.
func Geohash(c domain.Coordinates) string {
	return geohash.Encode(c.Lat, c.Lon)
}
