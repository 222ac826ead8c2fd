package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var nameCmd = &cobra.Command{
	Use:   "name EVENT_ID...",
	Short: "Name events in the store after their nearest reference location",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		res, gaz, err := resolution(logger)
		if err != nil {
			return err
		}

		s, err := openStore(ctx, cfg.Store, logger)
		if err != nil {
			return err
		}
		defer s.Close()

		namer := newNamer(s.EventStore, gaz, res, logger)
		outcomes := namer.NameEvents(ctx, args, cfg.Naming.Concurrency)

		out := cmd.OutOrStdout()
		failed := 0
		for _, o := range outcomes {
			switch {
			case o.Err != nil:
				failed++
				fmt.Fprintf(out, "%s\terror\t%v\n", o.EventID, o.Err)
			case !o.Matched:
				fmt.Fprintf(out, "%s\tno match\n", o.EventID)
			default:
				status := "unchanged"
				if namer.DryRun {
					status = "dry run"
				} else if o.Written {
					status = "written"
				}
				fmt.Fprintf(out, "%s\t%s\t%s\n", o.EventID, status, o.Description.Description)
			}
		}

		logger.Info("naming finished",
			zap.Int("events", len(outcomes)),
			zap.Int("failed", failed),
			zap.Bool("dry_run", namer.DryRun),
		)
		if failed > 0 {
			return eris.Errorf("%d of %d events failed", failed, len(outcomes))
		}
		return nil
	},
}

func init() {
	nameCmd.Flags().Int("concurrency", 5, "events named in parallel")
	rootCmd.AddCommand(nameCmd)
}
