package config

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds the full application configuration.
type Config struct {
	Store      StoreConfig     `mapstructure:"store"`
	Gazetteer  GazetteerConfig `mapstructure:"gazetteer"`
	Resolution ResolutionFile  `mapstructure:"resolution"`
	Naming     NamingConfig    `mapstructure:"naming"`
	Server     ServerConfig    `mapstructure:"server"`
	Log        LogConfig       `mapstructure:"log"`
}

// StoreConfig selects the event store backend.
type StoreConfig struct {
	Driver      string `mapstructure:"driver"`
	Path        string `mapstructure:"path"`
	DatabaseURL string `mapstructure:"database_url"`
}

// GazetteerConfig points at the reference locations file.
type GazetteerConfig struct {
	Path string `mapstructure:"path"`
}

// ResolutionFile is the on-disk/env shape of the resolution options.
type ResolutionFile struct {
	DirectionFormat     string  `mapstructure:"direction_format"`
	MaxDistanceKm       float64 `mapstructure:"max_distance_km"`
	MinPopulation       int64   `mapstructure:"min_population"`
	IncludeStateCountry bool    `mapstructure:"include_state_country"`
	UpdateRegion        bool    `mapstructure:"update_region"`
	RegionPolicy        string  `mapstructure:"region_policy"`
}

// NamingConfig controls how results reach the event store.
type NamingConfig struct {
	DryRun      bool `mapstructure:"dry_run"`
	Annotate    bool `mapstructure:"annotate"`
	Concurrency int  `mapstructure:"concurrency"`
}

// ServerConfig configures the HTTP server.
type ServerConfig struct {
	Port int `mapstructure:"port"`

	// RateLimit is the sustained requests per second allowed on the API;
	// 0 disables limiting.
	RateLimit float64 `mapstructure:"rate_limit"`
	RateBurst int     `mapstructure:"rate_burst"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// flagKeys maps command-line flag names onto configuration keys.
var flagKeys = map[string]string{
	"store":                 "store.driver",
	"db-path":               "store.path",
	"database-url":          "store.database_url",
	"locations-file":        "gazetteer.path",
	"direction-type":        "resolution.direction_format",
	"max-distance":          "resolution.max_distance_km",
	"min-population":        "resolution.min_population",
	"include-state-country": "resolution.include_state_country",
	"update-region":         "resolution.update_region",
	"region-policy":         "resolution.region_policy",
	"test":                  "naming.dry_run",
	"annotate":              "naming.annotate",
	"concurrency":           "naming.concurrency",
	"port":                  "server.port",
	"rate-limit":            "server.rate_limit",
	"rate-burst":            "server.rate_burst",
	"log-level":             "log.level",
	"log-format":            "log.format",
}

// Load reads configuration from .env, an optional config file, the
// environment (EVENTNAMER_ prefix) and any bound flags, in increasing order
// of precedence. flags may be nil.
func Load(configFile string, flags *pflag.FlagSet) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, eris.Wrap(err, "config: load .env")
	}

	v := viper.New()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("eventnamer")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("EVENTNAMER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("store.driver", "sqlite")
	v.SetDefault("store.path", "data/events.db")
	v.SetDefault("store.database_url", "")
	v.SetDefault("gazetteer.path", "")
	v.SetDefault("resolution.direction_format", string(DefaultDirectionFormat))
	v.SetDefault("resolution.max_distance_km", DefaultMaxDistanceKm)
	v.SetDefault("resolution.min_population", DefaultMinPopulation)
	v.SetDefault("resolution.include_state_country", true)
	v.SetDefault("resolution.update_region", false)
	v.SetDefault("resolution.region_policy", string(DefaultRegionPolicy))
	v.SetDefault("naming.dry_run", false)
	v.SetDefault("naming.annotate", false)
	v.SetDefault("naming.concurrency", 5)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_limit", 0.0)
	v.SetDefault("server.rate_burst", 20)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, eris.Wrapf(err, "config: bind flag %s", name)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// ResolutionConfig validates the resolution section. Call it before loading
// the gazetteer so configuration mistakes fail fast.
func (c *Config) ResolutionConfig() (ResolutionConfig, error) {
	return NewResolutionConfig(ResolutionOptions{
		DirectionFormat:     c.Resolution.DirectionFormat,
		MaxDistanceKm:       c.Resolution.MaxDistanceKm,
		MinPopulation:       c.Resolution.MinPopulation,
		IncludeStateCountry: c.Resolution.IncludeStateCountry,
		UpdateRegion:        c.Resolution.UpdateRegion,
		RegionPolicy:        c.Resolution.RegionPolicy,
	})
}
