package services

import (
	"fmt"
	"math"

	"event-naming-service/internal/config"
	"event-naming-service/internal/domain"
	"event-naming-service/internal/geomath"
)

var directionLabels = map[config.DirectionFormat][]string{
	config.DirectionCardinal:      {"N", "E", "S", "W"},
	config.DirectionIntercardinal: {"N", "NE", "E", "SE", "S", "SW", "W", "NW"},
	config.DirectionDetailed: {
		"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
		"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
	},
}

// FormatDirection maps a bearing onto a compass label.
//
// Sector i covers [i*w - w/2, i*w + w/2) with w = 360/len(labels), so sector 0
// is centred on north and a bearing exactly on a boundary belongs to the
// sector clockwise of it. Bearings outside [0, 360) are folded first.
func FormatDirection(bearingDeg float64, format config.DirectionFormat) (string, error) {
	labels, ok := directionLabels[format]
	if !ok {
		return "", &domain.ConfigError{
			Field:  "direction format",
			Value:  string(format),
			Reason: "must be one of cardinal, intercardinal, detailed",
		}
	}
	if math.IsNaN(bearingDeg) || math.IsInf(bearingDeg, 0) {
		return "", fmt.Errorf("format direction: bearing must be finite, got %v", bearingDeg)
	}

	width := 360 / float64(len(labels))
	shifted := geomath.NormalizeDeg(geomath.NormalizeDeg(bearingDeg) + width/2)
	idx := int(math.Floor(shifted/width)) % len(labels)

	return labels[idx], nil
}
