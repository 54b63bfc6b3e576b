package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/snipkit/snipd/internal/update"
	"github.com/spf13/cobra"
)

// createCheckCommand creates the check command: a one-shot manual update
// check through the scheduler.
func createCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check for a newer version now",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := createAppFromCommand(cmd)
			if err != nil {
				return err
			}

			outcome, err := app.CheckOnce(cmd.Context())
			if err != nil {
				return fmt.Errorf("update check failed to start: %w", err)
			}

			printOutcome(outcome)
			return nil
		},
	}
}

func printOutcome(outcome update.Event) {
	switch outcome.Kind {
	case update.EventUpdateAvailable:
		color.Yellow("Version %s is available for download.", outcome.Version)
		if outcome.Version.DownloadURL != "" {
			fmt.Printf("  download: %s\n", outcome.Version.DownloadURL)
		}
		if outcome.Version.ReleaseNotes != "" {
			fmt.Printf("  notes:    %s\n", outcome.Version.ReleaseNotes)
		}
	case update.EventNoUpdateAvailable:
		color.Green("You are running the latest version.")
	case update.EventCheckFailed:
		color.Red("Update check failed: %s", outcome.Message)
	case update.EventCheckStarted, update.EventCheckFinished:
		// Not outcomes; nothing to print.
	}
}
