// Package geomath holds the spherical-earth helpers used for nearest
// location lookups. All functions are pure and safe for concurrent use.
package geomath

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"

	"event-naming-service/internal/domain"
)

// EarthRadiusKm is the IUGG mean earth radius.
const EarthRadiusKm = 6371.0088

func toLatLng(c domain.Coordinates) s2.LatLng {
	return s2.LatLngFromDegrees(c.Lat, c.Lon)
}

// DistanceKm returns the great-circle distance between a and b.
// s2.LatLng.Distance evaluates the haversine formula.
func DistanceKm(a, b domain.Coordinates) float64 {
	if a == b {
		return 0
	}
	return toLatLng(a).Distance(toLatLng(b)).Radians() * EarthRadiusKm
}

// InitialBearingDeg returns the forward azimuth from `from` toward `to`,
// clockwise from true north, in [0, 360).
//
// The bearing between identical points is undefined; 0 is returned so that
// callers get a deterministic value.
func InitialBearingDeg(from, to domain.Coordinates) float64 {
	if from == to {
		return 0
	}

	p1, p2 := toLatLng(from), toLatLng(to)
	lat1, lat2 := p1.Lat.Radians(), p2.Lat.Radians()
	dLon := p2.Lng.Radians() - p1.Lng.Radians()

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)

	return NormalizeDeg((s1.Angle(math.Atan2(y, x)) * s1.Radian).Degrees())
}

// NormalizeDeg folds any finite angle into [0, 360).
func NormalizeDeg(deg float64) float64 {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	// -1e-15 + 360 rounds to 360 in float64.
	if deg >= 360 {
		deg = 0
	}
	return deg
}
