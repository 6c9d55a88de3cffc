package cli

import (
	"github.com/spf13/cobra"
)

func newMilkCmd() *cobra.Command {
	var relative bool

	cmd := &cobra.Command{
		Use:   "milk",
		Short: "Show US milk consumption by year",
		Long:  "Show yearly US milk consumption by milk type, or with --relative the change against the previous year.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := newAPIClient().MilkData(cmd.Context())
			if err != nil {
				return err
			}

			years := data.Consumption
			if relative {
				years = data.RelativeConsumption
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), years)
			}
			return printMilkTable(cmd.OutOrStdout(), years, relative)
		},
	}

	cmd.Flags().BoolVar(&relative, "relative", false, "show year-over-year change")

	return cmd
}
