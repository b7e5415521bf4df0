// Package cli holds the tuicher command line.
package cli

import (
	"fmt"
	"log"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/chess10kp/tuicher/internal/core"
)

func NewRootCommand() *cobra.Command {
	opts := newDefaultOptions()
	cmd := &cobra.Command{
		Use:           "tuicher",
		Short:         "Application launcher backend: app index, activation socket and search",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDaemon(cmd, opts)
		},
	}

	bindFlags(cmd, opts)

	cmd.AddCommand(newIndexCommand(opts))
	cmd.AddCommand(newSearchCommand(opts))
	cmd.AddCommand(newValidateCommand())
	return cmd
}

func runDaemon(cmd *cobra.Command, opts *Options) error {
	cfg, err := opts.loadConfig()
	if err != nil {
		return err
	}

	if opts.LogFile {
		restore, err := redirectLog(cfg)
		if err != nil {
			return err
		}
		defer restore()
	}

	broadcaster := core.NewBroadcaster()
	notifier := core.MultiNotifier{broadcaster}
	if dbusNotifier, err := core.NewDBusNotifier(); err != nil {
		log.Printf("[EVENTS] D-Bus notifications disabled: %v", err)
	} else {
		defer dbusNotifier.Close()
		notifier = append(notifier, dbusNotifier)
	}

	app, err := core.NewApp(cfg, core.AppOptions{
		Window: core.WindowFunc(func() error {
			log.Println("[IPC] Window show requested")
			return nil
		}),
		Notifier: notifier,
	})
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	role, err := app.Run(ctx)
	if err != nil {
		return fmt.Errorf("application error: %w", err)
	}
	if role != core.RolePrimary {
		fmt.Fprintf(cmd.OutOrStdout(), "tuicher: %s\n", role)
	}
	return nil
}
