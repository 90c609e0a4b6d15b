package main

import (
	"fmt"

	"github.com/SscSPs/distributor_ledger_app/pkg/database"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down]",
		Short:     "Apply or roll back database migrations",
		Long:      "Applies every pending migration, or rolls back the most recent one with \"down\".",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{string(database.MigrateUp), string(database.MigrateDown)},
		RunE: func(cmd *cobra.Command, args []string) error {
			direction := database.MigrateUp
			if len(args) == 1 {
				direction = database.MigrationDirection(args[0])
			}
			switch direction {
			case database.MigrateUp, database.MigrateDown:
			default:
				return fmt.Errorf("unknown migration direction %q", args[0])
			}
			return database.Migrate(cfg.DatabaseURL, cfg.MigrationsPath, direction, logger)
		},
	}
}
