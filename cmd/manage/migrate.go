package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"taxipark/config"
	"taxipark/storage/postgres"
)

func newMigrateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back Postgres schema migrations",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.Root().PersistentPreRun(cmd, args)
			if a.cfg.DBDriver != config.DriverPostgres {
				return fmt.Errorf("migrations only apply to DB_DRIVER=%s, the SQLite schema is applied on open", config.DriverPostgres)
			}
			return nil
		},
	}

	up := &cobra.Command{
		Use:   "up",
		Short: "Apply every pending migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return postgres.Migrate(a.cfg.PostgresURL(), a.cfg.MigrationsPath, a.log)
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			return postgres.MigrateDown(a.cfg.PostgresURL(), a.cfg.MigrationsPath, steps, a.log)
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "number of migrations to roll back, 0 for all")

	cmd.AddCommand(up, down)
	return cmd
}
