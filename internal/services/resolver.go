package services

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"event-naming-service/internal/config"
	"event-naming-service/internal/domain"
	"event-naming-service/internal/geomath"
)

// Distances are compared at this resolution; entries whose distances round
// to the same step are tied and the earlier gazetteer entry wins.
const tieToleranceKm = 1e-9

// Gazetteers at least this large are scanned in partitions by ResolveAuto.
const PartitionThreshold = 50_000

type candidate struct {
	index    int
	distance float64
	// distance in tieToleranceKm steps
	key float64
}

func newCandidate(index int, distance float64) candidate {
	return candidate{index: index, distance: distance, key: math.Round(distance / tieToleranceKm)}
}

// better reports whether c should replace best. (key, index) is compared
// lexicographically, a total order, so partitions can be merged in any order.
func (c candidate) better(best candidate) bool {
	if best.index < 0 {
		return true
	}
	if c.key != best.key {
		return c.key < best.key
	}
	return c.index < best.index
}

func scan(point domain.Coordinates, gaz domain.Gazetteer, lo, hi int) candidate {
	best := candidate{index: -1, distance: math.Inf(1)}
	for i := lo; i < hi; i++ {
		c := newCandidate(i, geomath.DistanceKm(point, gaz[i].Coordinates))
		if c.better(best) {
			best = c
		}
	}
	return best
}

// Resolve finds the gazetteer entry nearest to point.
//
// It is a full linear scan. A nil result means the nearest entry is farther
// than cfg.MaxDistanceKm (the bound itself is inclusive) or the gazetteer is
// empty. The bearing is measured from the matched location toward point, not
// the other way round, so "643 km ESE of Perth" means the point lies ESE of
// Perth.
func Resolve(point domain.Coordinates, gaz domain.Gazetteer, cfg config.ResolutionConfig) (*domain.MatchResult, error) {
	return finish(point, gaz, cfg, scan(point, gaz, 0, len(gaz)))
}

// ResolvePartitioned computes the same result as Resolve by scanning
// partitions of the gazetteer concurrently and merging the local minima.
func ResolvePartitioned(
	ctx context.Context,
	point domain.Coordinates,
	gaz domain.Gazetteer,
	cfg config.ResolutionConfig,
	partitions int,
) (*domain.MatchResult, error) {
	if partitions < 1 {
		partitions = 1
	}
	if partitions > len(gaz) {
		partitions = max(len(gaz), 1)
	}

	chunk := (len(gaz) + partitions - 1) / partitions
	local := make([]candidate, partitions)

	g, gctx := errgroup.WithContext(ctx)
	for p := 0; p < partitions; p++ {
		lo := p * chunk
		hi := min(lo+chunk, len(gaz))
		local[p] = candidate{index: -1, distance: math.Inf(1)}
		if lo >= hi {
			continue
		}

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			local[p] = scan(point, gaz, lo, hi)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("resolve partitioned: %w", err)
	}

	best := candidate{index: -1, distance: math.Inf(1)}
	for _, c := range local {
		if c.index >= 0 && c.better(best) {
			best = c
		}
	}

	return finish(point, gaz, cfg, best)
}

// ResolveAuto picks the partitioned scan for large gazetteers.
func ResolveAuto(
	ctx context.Context,
	point domain.Coordinates,
	gaz domain.Gazetteer,
	cfg config.ResolutionConfig,
	partitions int,
) (*domain.MatchResult, error) {
	if len(gaz) >= PartitionThreshold && partitions > 1 {
		return ResolvePartitioned(ctx, point, gaz, cfg, partitions)
	}
	return Resolve(point, gaz, cfg)
}

func finish(point domain.Coordinates, gaz domain.Gazetteer, cfg config.ResolutionConfig, best candidate) (*domain.MatchResult, error) {
	if best.index < 0 || best.distance > cfg.MaxDistanceKm {
		return nil, nil
	}

	winner := gaz[best.index]
	bearing := geomath.InitialBearingDeg(winner.Coordinates, point)

	label, err := FormatDirection(bearing, cfg.DirectionFormat)
	if err != nil {
		return nil, fmt.Errorf("resolve: %w", err)
	}

	return &domain.MatchResult{
		Location:   winner,
		DistanceKm: best.distance,
		BearingDeg: bearing,
		Direction:  label,
	}, nil
}
