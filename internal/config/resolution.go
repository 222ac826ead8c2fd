package config

import (
	"math"
	"strconv"
	"strings"

	"event-naming-service/internal/domain"
)

// DirectionFormat selects how many compass sectors a bearing is mapped onto.
type DirectionFormat string

const (
	DirectionCardinal      DirectionFormat = "cardinal"
	DirectionIntercardinal DirectionFormat = "intercardinal"
	DirectionDetailed      DirectionFormat = "detailed"
)

// ParseDirectionFormat accepts a format name case-insensitively.
func ParseDirectionFormat(s string) (DirectionFormat, error) {
	switch f := DirectionFormat(strings.ToLower(strings.TrimSpace(s))); f {
	case DirectionCardinal, DirectionIntercardinal, DirectionDetailed:
		return f, nil
	}
	return "", &domain.ConfigError{
		Field:  "direction format",
		Value:  s,
		Reason: "must be one of cardinal, intercardinal, detailed",
	}
}

// RegionPolicy decides what text goes into the region name description.
type RegionPolicy string

const (
	// Region name gets the full "N km DIR of PLACE" text.
	RegionPolicyDescription RegionPolicy = "description"
	// Region name gets the bare location name.
	RegionPolicyName RegionPolicy = "name"
)

func ParseRegionPolicy(s string) (RegionPolicy, error) {
	switch p := RegionPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case RegionPolicyDescription, RegionPolicyName:
		return p, nil
	}
	return "", &domain.ConfigError{
		Field:  "region policy",
		Value:  s,
		Reason: "must be one of description, name",
	}
}

const (
	DefaultMaxDistanceKm   = 1000.0
	DefaultMinPopulation   = 0
	DefaultDirectionFormat = DirectionDetailed
	DefaultRegionPolicy    = RegionPolicyDescription
)

// ResolutionConfig holds the validated options of one naming run.
// Build it with NewResolutionConfig; the zero value is not valid.
type ResolutionConfig struct {
	DirectionFormat     DirectionFormat
	MaxDistanceKm       float64
	MinPopulation       int64
	IncludeStateCountry bool
	UpdateRegion        bool
	RegionPolicy        RegionPolicy
}

// ResolutionOptions is the unvalidated form of ResolutionConfig, as it
// arrives from flags, env or a config file.
type ResolutionOptions struct {
	DirectionFormat     string
	MaxDistanceKm       float64
	MinPopulation       int64
	IncludeStateCountry bool
	UpdateRegion        bool
	RegionPolicy        string
}

// DefaultResolutionOptions mirrors the documented defaults.
func DefaultResolutionOptions() ResolutionOptions {
	return ResolutionOptions{
		DirectionFormat:     string(DefaultDirectionFormat),
		MaxDistanceKm:       DefaultMaxDistanceKm,
		MinPopulation:       DefaultMinPopulation,
		IncludeStateCountry: true,
		RegionPolicy:        string(DefaultRegionPolicy),
	}
}

// NewResolutionConfig validates every option and returns a *domain.ConfigError
// on the first invalid one.
func NewResolutionConfig(opts ResolutionOptions) (ResolutionConfig, error) {
	format, err := ParseDirectionFormat(opts.DirectionFormat)
	if err != nil {
		return ResolutionConfig{}, err
	}

	if math.IsNaN(opts.MaxDistanceKm) || math.IsInf(opts.MaxDistanceKm, 0) || opts.MaxDistanceKm <= 0 {
		return ResolutionConfig{}, &domain.ConfigError{
			Field:  "max distance",
			Value:  strconv.FormatFloat(opts.MaxDistanceKm, 'f', -1, 64),
			Reason: "must be a positive number of kilometers",
		}
	}

	if opts.MinPopulation < 0 {
		return ResolutionConfig{}, &domain.ConfigError{
			Field:  "min population",
			Value:  strconv.FormatInt(opts.MinPopulation, 10),
			Reason: "must not be negative",
		}
	}

	policy := DefaultRegionPolicy
	if strings.TrimSpace(opts.RegionPolicy) != "" {
		if policy, err = ParseRegionPolicy(opts.RegionPolicy); err != nil {
			return ResolutionConfig{}, err
		}
	}

	return ResolutionConfig{
		DirectionFormat:     format,
		MaxDistanceKm:       opts.MaxDistanceKm,
		MinPopulation:       opts.MinPopulation,
		IncludeStateCountry: opts.IncludeStateCountry,
		UpdateRegion:        opts.UpdateRegion,
		RegionPolicy:        policy,
	}, nil
}
