package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/evcraddock/portfolio/internal/color"
)

func newColorCmd() *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "color",
		Short: "Print a random background color",
		Long:  "Print a random pastel hsl() color. With --remote the server picks it.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var c string
			if remote {
				var err error
				c, err = newAPIClient().RandomColor(cmd.Context())
				if err != nil {
					return err
				}
			} else {
				c = color.Random(color.NewSource()).String()
			}

			if isJSON() {
				return printJSON(cmd.OutOrStdout(), map[string]string{"color": c})
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), c)
			return err
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "ask the server instead of generating locally")

	return cmd
}
