package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// createRunCommand creates the run command: the long-lived update scheduler.
func createRunCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the periodic update scheduler",
		Long: "Run the periodic update scheduler until interrupted. Checks happen\n" +
			"once per day, starting shortly after launch when no check was ever\n" +
			"recorded or the last one is overdue.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := createAppFromCommand(cmd)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			err = app.RunScheduler(ctx, printOutcome)
			if err != nil {
				return fmt.Errorf("scheduler exited: %w", err)
			}
			return nil
		},
	}
}
