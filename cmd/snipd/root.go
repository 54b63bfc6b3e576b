package main

import (
	"fmt"

	"github.com/snipkit/snipd/internal/cli"
	"github.com/spf13/cobra"
)

// createNewRootCommand creates the main root command that shows help by default.
func createNewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "snipd",
		Short: "Text expansion service utilities",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Show help when run without subcommands
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().StringP("config", "c", "snipd.yml", "Path to config file")
	rootCmd.PersistentFlags().Bool("portable", false, "Force portable mode (data stored next to the executable)")

	rootCmd.AddCommand(
		createRunCommand(),
		createCheckCommand(),
		createPathsCommand(),
		createPrefsCommand(),
		createAppsCommand(),
		createVersionCommand(),
	)

	return rootCmd
}

// createAppFromCommand extracts persistent flags and builds the CLI app.
func createAppFromCommand(cmd *cobra.Command) (*cli.App, error) {
	configPath, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	portable, err := cmd.Flags().GetBool("portable")
	if err != nil {
		return nil, fmt.Errorf("failed to get portable flag: %w", err)
	}

	return cli.NewApp(configPath, portable), nil
}
