package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/snipkit/snipd/internal/prompt"
	"github.com/spf13/cobra"
)

// createPrefsCommand creates the prefs command group.
func createPrefsCommand() *cobra.Command {
	prefsCmd := &cobra.Command{
		Use:   "prefs",
		Short: "Show or change persisted preferences",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := createAppFromCommand(cmd)
			if err != nil {
				return err
			}

			report, err := app.PrefsReport()
			if err != nil {
				return fmt.Errorf("failed to read preferences: %w", err)
			}

			_, err = fmt.Print(report)
			if err != nil {
				return fmt.Errorf("failed to print preferences: %w", err)
			}
			return nil
		},
	}

	prefsCmd.AddCommand(
		createAutoCheckCommand(),
		createBackupLocationCommand(),
		createLocaleCommand(),
	)

	return prefsCmd
}

func createAutoCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "auto-check <true|false>",
		Short: "Enable or disable daily update checks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enabled, err := strconv.ParseBool(args[0])
			if err != nil {
				return fmt.Errorf("invalid value %q: expected true or false", args[0])
			}

			app, err := createAppFromCommand(cmd)
			if err != nil {
				return err
			}

			if err := app.SetAutoCheck(enabled); err != nil {
				return fmt.Errorf("failed to save preference: %w", err)
			}
			return nil
		},
	}
}

func createBackupLocationCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "backup-location [dir]",
		Short: "Set the backup directory (empty reverts to the default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var dir string
			if len(args) == 1 {
				dir = args[0]
			} else {
				// Prompt when no directory was given on the command line.
				var err error
				dir, err = prompt.TextInput("Backup directory (empty for default):")
				if err != nil {
					if errors.Is(err, prompt.ErrCancelled) {
						return nil
					}
					return err
				}
				if dir == "" {
					ok, err := prompt.Confirm("Revert to the default backup directory?", true)
					if err != nil {
						if errors.Is(err, prompt.ErrCancelled) {
							return nil
						}
						return err
					}
					if !ok {
						return nil
					}
				}
			}

			app, err := createAppFromCommand(cmd)
			if err != nil {
				return err
			}

			if err := app.SetBackupLocation(dir); err != nil {
				return fmt.Errorf("failed to save preference: %w", err)
			}
			return nil
		},
	}
}

func createLocaleCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "locale <tag>",
		Short: "Set the interface language (empty for system default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var locale string
			if len(args) == 1 {
				locale = args[0]
			}

			app, err := createAppFromCommand(cmd)
			if err != nil {
				return err
			}

			if err := app.SetLocale(locale); err != nil {
				return fmt.Errorf("failed to save preference: %w", err)
			}
			return nil
		},
	}
}
