package main

import (
	"fmt"

	"github.com/snipkit/snipd/internal/cli"
	"github.com/spf13/cobra"
)

// createAppsCommand creates the apps command group for the sensitive and
// emoji-excluded application lists.
func createAppsCommand() *cobra.Command {
	appsCmd := &cobra.Command{
		Use:   "apps",
		Short: "Manage per-application behaviour lists",
	}

	appsCmd.AddCommand(
		createAppListCommand(cli.SensitiveApps, "sensitive",
			"Applications where text substitution is disabled"),
		createAppListCommand(cli.EmojiExcludedApps, "emoji",
			"Applications excluded from emoji substitution"),
	)

	return appsCmd
}

func createAppListCommand(kind cli.AppList, use, short string) *cobra.Command {
	listCmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := createAppFromCommand(cmd)
			if err != nil {
				return err
			}

			apps, err := app.ListApps(kind)
			if err != nil {
				return fmt.Errorf("failed to load application list: %w", err)
			}

			for _, name := range apps {
				fmt.Println(name)
			}
			return nil
		},
	}

	listCmd.AddCommand(
		&cobra.Command{
			Use:   "add <executable>",
			Short: "Add an executable name to the list",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := createAppFromCommand(cmd)
				if err != nil {
					return err
				}

				added, err := app.AddApp(kind, args[0])
				if err != nil {
					return fmt.Errorf("failed to update application list: %w", err)
				}
				if !added {
					fmt.Printf("%s is already in the list\n", args[0])
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "remove <executable>",
			Short: "Remove an executable name from the list",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				app, err := createAppFromCommand(cmd)
				if err != nil {
					return err
				}

				removed, err := app.RemoveApp(kind, args[0])
				if err != nil {
					return fmt.Errorf("failed to update application list: %w", err)
				}
				if !removed {
					fmt.Printf("%s is not in the list\n", args[0])
				}
				return nil
			},
		},
	)

	return listCmd
}
