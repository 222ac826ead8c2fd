package domain

import (
	"fmt"
	"math"
)

// Immutable geographic coordinates (latitude, longitude) in degrees.
// Construct through NewCoordinates so range checks are never skipped.
type Coordinates struct {
	Lat float64
	Lon float64
}

// NewCoordinates validates and builds a Coordinates value.
func NewCoordinates(lat, lon float64) (Coordinates, error) {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || lat < -90 || lat > 90 {
		return Coordinates{}, &CoordinateError{Field: "latitude", Value: lat}
	}
	if math.IsNaN(lon) || math.IsInf(lon, 0) || lon < -180 || lon > 180 {
		return Coordinates{}, &CoordinateError{Field: "longitude", Value: lon}
	}
	return Coordinates{Lat: lat, Lon: lon}, nil
}

// Return coordinates as [lon, lat] for GeoJSON/geometry compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

func (c Coordinates) String() string {
	return fmt.Sprintf("%.3f,%.3f", c.Lat, c.Lon)
}
