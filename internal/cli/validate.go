package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chess10kp/tuicher/internal/config"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [path]",
		Short: "Validate a config file",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath := defaultConfigPath
			if len(args) == 1 {
				configPath = args[0]
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Validating config: %s\n", configPath)
			if err := config.ValidateConfig(configPath); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Config is valid")
			return nil
		},
	}
}
