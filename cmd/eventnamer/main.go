package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"event-naming-service/internal/config"
)

var (
	cfg        *config.Config
	logger     = zap.NewNop()
	configFile string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "eventnamer",
	Short: "Names seismic events after the nearest populated place",
	Long: "Resolves an epicentre against a gazetteer of reference locations and writes " +
		`descriptions like "643 km ESE of Perth, WA, Australia" back to the event store.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load(configFile, cmd.Flags())
		if err != nil {
			return eris.Wrap(err, "load config")
		}
		if debug {
			c.Log.Level = "debug"
			c.Naming.Annotate = true
		}
		cfg = c

		l, err := config.InitLogger(cfg.Log)
		if err != nil {
			return eris.Wrap(err, "init logger")
		}
		logger = l

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	f := rootCmd.PersistentFlags()
	f.StringVar(&configFile, "config", "", "config file (default ./eventnamer.yaml)")
	f.BoolVar(&debug, "debug", false, "debug logging and an annotation comment on every named event")

	f.String("store", "sqlite", "event store driver: sqlite, postgres or memory")
	f.String("db-path", "data/events.db", "sqlite database file")
	f.String("database-url", "", "postgres connection string")

	f.StringP("locations-file", "L", "", "gazetteer CSV (name,state,country,latitude,longitude,population)")
	f.Float64P("max-distance", "M", config.DefaultMaxDistanceKm, "maximum distance in km to a reference location")
	f.Int64P("min-population", "P", config.DefaultMinPopulation, "ignore locations with a smaller population")
	f.StringP("direction-type", "D", string(config.DefaultDirectionFormat), "direction format: cardinal, intercardinal or detailed")
	f.BoolP("update-region", "U", false, "also write the region name description")
	f.BoolP("test", "T", false, "dry run: compute names without writing them")
	f.Bool("include-state-country", true, "append state and country to the place name")
	f.String("region-policy", string(config.DefaultRegionPolicy), "region name text: description or name")
	f.Bool("annotate", false, "add a comment with distance, direction and epicentre geohash")
	f.String("log-level", "info", "log level")
	f.String("log-format", "json", "log format: json or console")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
