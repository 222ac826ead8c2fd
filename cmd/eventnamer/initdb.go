package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"event-naming-service/internal/adapters/eventstore"
)

var initSeedPath string

var initdbCmd = &cobra.Command{
	Use:   "initdb",
	Short: "Create the event store schema and optionally seed events from JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		s, err := openStore(ctx, cfg.Store, logger)
		if err != nil {
			return err
		}
		defer s.Close()

		logger.Info("initializing event store schema", zap.String("driver", cfg.Store.Driver))
		if err := s.InitSchema(ctx); err != nil {
			return eris.Wrap(err, "initdb")
		}

		if initSeedPath == "" {
			return nil
		}

		n, err := eventstore.SeedFromJSON(ctx, s.Seeder, initSeedPath)
		if err != nil {
			return eris.Wrap(err, "initdb")
		}
		logger.Info("seeding complete", zap.Int("events", n), zap.String("path", initSeedPath))
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d events\n", n)
		return nil
	},
}

func init() {
	initdbCmd.Flags().StringVar(&initSeedPath, "seed", "", "JSON file of events to load")
	rootCmd.AddCommand(initdbCmd)
}
