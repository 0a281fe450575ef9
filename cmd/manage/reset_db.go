package main

import (
	"github.com/spf13/cobra"

	"taxipark/pkg/logger"
	"taxipark/storage/backend"
)

func newResetDBCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-db",
		Short: "Delete every manufacturer, car, driver and assignment",
		RunE: func(cmd *cobra.Command, args []string) error {
			stg, err := backend.Open(cmd.Context(), a.cfg, a.log)
			if err != nil {
				return err
			}
			defer stg.Close()

			if err := stg.Reset(cmd.Context()); err != nil {
				a.log.Error("Failed to reset database", logger.Error(err))
				return err
			}
			a.log.Info("Successfully truncated manufacturers, cars, drivers and car_drivers tables.")
			return nil
		},
	}
}
