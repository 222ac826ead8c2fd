package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"event-naming-service/internal/domain"
)

func TestLoadDefaults(t *testing.T) {
	// Run from an empty dir so neither .env nor eventnamer.yaml is found.
	t.Chdir(t.TempDir())

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "data/events.db", cfg.Store.Path)
	assert.Equal(t, "detailed", cfg.Resolution.DirectionFormat)
	assert.InDelta(t, 1000.0, cfg.Resolution.MaxDistanceKm, 0)
	assert.Equal(t, int64(0), cfg.Resolution.MinPopulation)
	assert.True(t, cfg.Resolution.IncludeStateCountry)
	assert.False(t, cfg.Resolution.UpdateRegion)
	assert.Equal(t, "description", cfg.Resolution.RegionPolicy)
	assert.False(t, cfg.Naming.DryRun)
	assert.Equal(t, 5, cfg.Naming.Concurrency)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 0.0, cfg.Server.RateLimit)
	assert.Equal(t, 20, cfg.Server.RateBurst)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("EVENTNAMER_RESOLUTION_MAX_DISTANCE_KM", "250")
	t.Setenv("EVENTNAMER_STORE_DRIVER", "postgres")
	t.Setenv("EVENTNAMER_NAMING_DRY_RUN", "true")

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.InDelta(t, 250.0, cfg.Resolution.MaxDistanceKm, 0)
	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.True(t, cfg.Naming.DryRun)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("EVENTNAMER_GAZETTEER_PATH=/srv/places.csv\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("EVENTNAMER_GAZETTEER_PATH") })

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "/srv/places.csv", cfg.Gazetteer.Path)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	yaml := `
gazetteer:
  path: places.csv
resolution:
  direction_format: intercardinal
  min_population: 50000
  update_region: true
log:
  level: debug
`
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "places.csv", cfg.Gazetteer.Path)
	assert.Equal(t, "intercardinal", cfg.Resolution.DirectionFormat)
	assert.Equal(t, int64(50000), cfg.Resolution.MinPopulation)
	assert.True(t, cfg.Resolution.UpdateRegion)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := Load("does-not-exist.yaml", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config: read file")
}

func TestLoadFlagsTakePrecedence(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("EVENTNAMER_RESOLUTION_DIRECTION_FORMAT", "intercardinal")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("direction-type", "detailed", "")
	fs.Float64("max-distance", DefaultMaxDistanceKm, "")
	fs.Bool("test", false, "")
	require.NoError(t, fs.Parse([]string{"--direction-type=cardinal", "--test"}))

	cfg, err := Load("", fs)
	require.NoError(t, err)

	assert.Equal(t, "cardinal", cfg.Resolution.DirectionFormat)
	assert.InDelta(t, DefaultMaxDistanceKm, cfg.Resolution.MaxDistanceKm, 0)
	assert.True(t, cfg.Naming.DryRun)
}

func TestLoadServerRateFlags(t *testing.T) {
	t.Chdir(t.TempDir())

	fs := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	fs.Float64("rate-limit", 0, "")
	fs.Int("rate-burst", 20, "")
	require.NoError(t, fs.Parse([]string{"--rate-limit=5", "--rate-burst=3"}))

	cfg, err := Load("", fs)
	require.NoError(t, err)

	assert.InDelta(t, 5.0, cfg.Server.RateLimit, 0)
	assert.Equal(t, 3, cfg.Server.RateBurst)
}

func TestConfigResolutionConfig(t *testing.T) {
	cfg := &Config{Resolution: ResolutionFile{
		DirectionFormat:     "Intercardinal",
		MaxDistanceKm:       500,
		MinPopulation:       1000,
		IncludeStateCountry: true,
		RegionPolicy:        "name",
	}}

	rc, err := cfg.ResolutionConfig()
	require.NoError(t, err)
	assert.Equal(t, DirectionIntercardinal, rc.DirectionFormat)
	assert.Equal(t, RegionPolicyName, rc.RegionPolicy)
	assert.Equal(t, int64(1000), rc.MinPopulation)
}

func TestNewResolutionConfigErrors(t *testing.T) {
	cases := []struct {
		name  string
		mut   func(o *ResolutionOptions)
		field string
	}{
		{"unknown format", func(o *ResolutionOptions) { o.DirectionFormat = "octal" }, "direction format"},
		{"zero distance", func(o *ResolutionOptions) { o.MaxDistanceKm = 0 }, "max distance"},
		{"negative distance", func(o *ResolutionOptions) { o.MaxDistanceKm = -1 }, "max distance"},
		{"negative population", func(o *ResolutionOptions) { o.MinPopulation = -5 }, "min population"},
		{"unknown policy", func(o *ResolutionOptions) { o.RegionPolicy = "both" }, "region policy"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			opts := DefaultResolutionOptions()
			tc.mut(&opts)

			_, err := NewResolutionConfig(opts)
			var ce *domain.ConfigError
			require.ErrorAs(t, err, &ce)
			assert.Equal(t, tc.field, ce.Field)
		})
	}
}

func TestNewResolutionConfigDefaults(t *testing.T) {
	rc, err := NewResolutionConfig(DefaultResolutionOptions())
	require.NoError(t, err)

	assert.Equal(t, DirectionDetailed, rc.DirectionFormat)
	assert.InDelta(t, DefaultMaxDistanceKm, rc.MaxDistanceKm, 0)
	assert.Equal(t, int64(0), rc.MinPopulation)
	assert.True(t, rc.IncludeStateCountry)
	assert.Equal(t, RegionPolicyDescription, rc.RegionPolicy)
}

func TestInitLogger(t *testing.T) {
	logger, err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = InitLogger(LogConfig{Level: "warn", Format: "json"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))

	_, err = InitLogger(LogConfig{Level: "loud"})
	require.Error(t, err)
}
