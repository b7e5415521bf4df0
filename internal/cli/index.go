package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/chess10kp/tuicher/internal/apps"
)

func newIndexCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "index",
		Short: "Build the application index once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			indexer, err := apps.NewIndexerFromConfig(cfg)
			if err != nil {
				return err
			}
			if err := indexer.Build(cmd.Context()); err != nil {
				return err
			}

			entries, err := indexer.Load()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d applications into %s\n", len(entries), indexer.CachePath())
			return nil
		},
	}
}
