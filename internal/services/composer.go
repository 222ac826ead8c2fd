package services

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"event-naming-service/internal/config"
	"event-naming-service/internal/domain"
)

// Composition is the rendered text for one match.
type Composition struct {
	Description string
	RegionName  string
	DistanceKm  int64
}

// RoundKm rounds half away from zero to whole kilometers.
func RoundKm(km float64) int64 {
	return int64(math.Round(km))
}

// Compose renders a match as "N km DIR of PLACE".
// The second return value is false when result is nil: there is nothing to
// write and the caller should leave the event untouched.
func Compose(result *domain.MatchResult, cfg config.ResolutionConfig) (Composition, bool) {
	if result == nil {
		return Composition{}, false
	}

	loc := result.Location
	place := loc.Name
	if cfg.IncludeStateCountry {
		if loc.State != "" {
			place = fmt.Sprintf("%s, %s, %s", loc.Name, loc.State, loc.Country)
		} else {
			place = fmt.Sprintf("%s, %s", loc.Name, loc.Country)
		}
	}

	km := RoundKm(result.DistanceKm)
	description := fmt.Sprintf("%d km %s of %s", km, result.Direction, place)

	region := description
	if cfg.RegionPolicy == config.RegionPolicyName {
		region = loc.Name
	}

	return Composition{
		Description: description,
		RegionName:  region,
		DistanceKm:  km,
	}, true
}

// Description is the full answer for a single point.
type Description struct {
	Match *domain.MatchResult
	Composition
}

// DescribePoint resolves and composes in one step. A nil Description means
// no location lies within the configured distance.
func DescribePoint(ctx context.Context, point domain.Coordinates, gaz domain.Gazetteer, cfg config.ResolutionConfig) (*Description, error) {
	match, err := ResolveAuto(ctx, point, gaz, cfg, runtime.GOMAXPROCS(0))
	if err != nil {
		return nil, fmt.Errorf("describe point %s: %w", point, err)
	}

	comp, ok := Compose(match, cfg)
	if !ok {
		return nil, nil
	}

	return &Description{Match: match, Composition: comp}, nil
}
