package main

import (
	"fmt"

	"github.com/snipkit/snipd/internal/config"
	"github.com/spf13/cobra"
)

// createVersionCommand creates the version command.
func createVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the snipd version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			configPath, err := cmd.Flags().GetString("config")
			if err != nil {
				return fmt.Errorf("failed to get config flag: %w", err)
			}

			cfg, err := config.LoadOrDefault(configPath)
			if err != nil {
				return err
			}

			_, err = fmt.Printf("snipd v%s\n", cfg.Version)
			if err != nil {
				return fmt.Errorf("failed to print version: %w", err)
			}
			return nil
		},
	}
}
