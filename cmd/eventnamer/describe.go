package main

import (
	"encoding/json"
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"event-naming-service/internal/api/dto"
	"event-naming-service/internal/domain"
	"event-naming-service/internal/services"
)

var (
	describeLat  float64
	describeLon  float64
	describeJSON bool
)

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Describe a point relative to the nearest reference location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		point, err := domain.NewCoordinates(describeLat, describeLon)
		if err != nil {
			return eris.Wrap(err, "describe")
		}

		res, gaz, err := resolution(logger)
		if err != nil {
			return err
		}

		desc, err := services.DescribePoint(cmd.Context(), point, gaz, res)
		if err != nil {
			return eris.Wrap(err, "describe")
		}

		out := cmd.OutOrStdout()
		if describeJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(dto.NewDescribeResponse(point, desc))
		}

		if desc == nil {
			fmt.Fprintf(out, "no reference location within %g km of %s\n", res.MaxDistanceKm, point)
			return nil
		}
		fmt.Fprintln(out, desc.Description)
		if res.UpdateRegion && desc.RegionName != desc.Description {
			fmt.Fprintf(out, "region: %s\n", desc.RegionName)
		}
		return nil
	},
}

func init() {
	describeCmd.Flags().Float64Var(&describeLat, "lat", 0, "latitude in decimal degrees")
	describeCmd.Flags().Float64Var(&describeLon, "lon", 0, "longitude in decimal degrees")
	describeCmd.Flags().BoolVar(&describeJSON, "json", false, "print the full result as JSON")
	_ = describeCmd.MarkFlagRequired("lat")
	_ = describeCmd.MarkFlagRequired("lon")
	rootCmd.AddCommand(describeCmd)
}
