package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change CLI settings",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective settings",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				count := getDefaultCount()
				effective := CLIConfig{ServerURL: getServerURL(), DefaultCount: &count}
				if isJSON() {
					return printJSON(cmd.OutOrStdout(), effective)
				}
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "server_url:    %s\ndefault_count: %d\n",
					effective.ServerURL, count)
				return err
			},
		},
		&cobra.Command{
			Use:       "set <key> <value>",
			Short:     "Persist a setting (server_url or default_count)",
			Args:      cobra.ExactArgs(2),
			ValidArgs: []string{"server_url", "default_count"},
			RunE: func(cmd *cobra.Command, args []string) error {
				return runConfigSet(args[0], args[1])
			},
		},
	)

	return cmd
}

func runConfigSet(key, value string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	switch key {
	case "server_url":
		cfg.ServerURL = value
	case "default_count":
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("default_count must be a non-negative integer, got %q", value)
		}
		cfg.DefaultCount = &n
	default:
		return fmt.Errorf("unknown setting %q (want server_url or default_count)", key)
	}

	return saveConfig(cfg)
}
