package cli

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chess10kp/tuicher/internal/apps"
	"github.com/chess10kp/tuicher/internal/launcher"
)

func newSearchCommand(opts *Options) *cobra.Command {
	return &cobra.Command{
		Use:   "search <text>...",
		Short: "Run a query against the current index and print the results as JSON",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			indexer, err := apps.NewIndexerFromConfig(cfg)
			if err != nil {
				return err
			}

			router := launcher.NewRouter(cfg, launcher.RouterOptions{Index: indexer})
			results, err := router.Search(strings.Join(args, " "))
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		},
	}
}
