package cli

import (
	"github.com/spf13/cobra"
)

func newFarmsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "farms",
		Short: "List cattle farm locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			farms, err := newAPIClient().CattleFarms(cmd.Context())
			if err != nil {
				return err
			}
			if isJSON() {
				return printJSON(cmd.OutOrStdout(), farms)
			}
			return printFarmTable(cmd.OutOrStdout(), farms)
		},
	}
}
