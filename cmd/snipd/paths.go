package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// createPathsCommand creates the paths command.
func createPathsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "paths",
		Short: "Show resolved application paths",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := createAppFromCommand(cmd)
			if err != nil {
				return err
			}

			report, err := app.PathsReport(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to resolve paths: %w", err)
			}

			_, err = fmt.Print(report)
			if err != nil {
				return fmt.Errorf("failed to print paths: %w", err)
			}
			return nil
		},
	}
}
