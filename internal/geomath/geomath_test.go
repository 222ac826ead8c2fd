package geomath

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"event-naming-service/internal/domain"
)

func coords(t *testing.T, lat, lon float64) domain.Coordinates {
	t.Helper()
	c, err := domain.NewCoordinates(lat, lon)
	require.NoError(t, err)
	return c
}

func randomCoords(r *rand.Rand) domain.Coordinates {
	return domain.Coordinates{Lat: r.Float64()*180 - 90, Lon: r.Float64()*360 - 180}
}

func TestDistanceKmKnownPairs(t *testing.T) {
	perth := coords(t, -31.9523, 115.8613)

	// Reference values computed with the haversine formula at R = 6371.0088 km.
	assert.InDelta(t, 643.038, DistanceKm(perth, coords(t, -34.0, 122.31)), 0.001)
	assert.InDelta(t, 713.048, DistanceKm(perth, coords(t, -26.65, 120.0)), 0.001)

	// A quarter of a meridian.
	assert.InDelta(t, EarthRadiusKm*math.Pi/2, DistanceKm(coords(t, 0, 0), coords(t, 90, 0)), 1e-6)
	// Antipodes.
	assert.InDelta(t, EarthRadiusKm*math.Pi, DistanceKm(coords(t, 0, 0), coords(t, 0, 180)), 1e-6)
}

func TestDistanceKmSelf(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		a := randomCoords(r)
		assert.Zero(t, DistanceKm(a, a))
	}
}

func TestDistanceKmSymmetric(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	for i := 0; i < 500; i++ {
		a, b := randomCoords(r), randomCoords(r)
		assert.InDelta(t, DistanceKm(a, b), DistanceKm(b, a), 1e-9, "a=%v b=%v", a, b)
	}
}

func TestInitialBearingDegCardinalPoints(t *testing.T) {
	origin := coords(t, 0, 0)

	assert.InDelta(t, 0, InitialBearingDeg(origin, coords(t, 10, 0)), 1e-9)
	assert.InDelta(t, 90, InitialBearingDeg(origin, coords(t, 0, 10)), 1e-9)
	assert.InDelta(t, 180, InitialBearingDeg(origin, coords(t, -10, 0)), 1e-9)
	assert.InDelta(t, 270, InitialBearingDeg(origin, coords(t, 0, -10)), 1e-9)
}

func TestInitialBearingDegKnownPair(t *testing.T) {
	perth := coords(t, -31.9523, 115.8613)
	assert.InDelta(t, 112.468, InitialBearingDeg(perth, coords(t, -34.0, 122.31)), 0.001)
	assert.InDelta(t, 35.278, InitialBearingDeg(perth, coords(t, -26.65, 120.0)), 0.001)
}

// Identical points have no defined bearing; the convention is 0.
func TestInitialBearingDegIdenticalPoints(t *testing.T) {
	p := coords(t, -31.9523, 115.8613)
	assert.Zero(t, InitialBearingDeg(p, p))
}

func TestInitialBearingDegRange(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 1000; i++ {
		a, b := randomCoords(r), randomCoords(r)
		got := InitialBearingDeg(a, b)
		assert.GreaterOrEqual(t, got, 0.0)
		assert.Less(t, got, 360.0)
	}
}

func TestNormalizeDeg(t *testing.T) {
	cases := map[float64]float64{
		0:      0,
		359.5:  359.5,
		360:    0,
		720.25: 0.25,
		-90:    270,
		-360:   0,
		-1e-15: 0,
	}
	for in, want := range cases {
		assert.InDelta(t, want, NormalizeDeg(in), 1e-12, "in=%v", in)
	}
}
