package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func migrateCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		Long: `Create or update the database schema and verify it.

Opening the console always migrates; this command does only that and exits,
which suits deployment pipelines.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, cfg, logger, err := openClient(*envFile)
			if err != nil {
				return err
			}
			defer closeClient(client, logger)

			logStartup(logger, cfg, "database migrated")
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
			return err
		},
	}
}
