package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"taxipark/pkg/logger"
	"taxipark/pkg/session"
	"taxipark/service"
	"taxipark/storage/backend"
)

// newCreateDriverCmd bootstraps a login principal, since every page,
// the signup form included, requires one.
func newCreateDriverCmd(a *app) *cobra.Command {
	var in service.DriverInput

	cmd := &cobra.Command{
		Use:   "create-driver",
		Short: "Create a driver account that can log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			stg, err := backend.Open(cmd.Context(), a.cfg, a.log)
			if err != nil {
				return err
			}
			defer stg.Close()

			in.PasswordConfirm = in.Password
			svc := service.New(a.cfg, stg, session.NewMemoryStore(), a.log)
			d, err := svc.Driver().Create(cmd.Context(), in)
			if err != nil {
				a.log.Error("Failed to create driver", logger.Error(err))
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created driver %d: %s\n", d.ID, d)
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Username, "username", "", "login name")
	cmd.Flags().StringVar(&in.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&in.LastName, "last-name", "", "last name")
	cmd.Flags().StringVar(&in.LicenseNumber, "license", "", "license number, e.g. ABC12345")
	cmd.Flags().StringVar(&in.Password, "password", "", "password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("license")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
