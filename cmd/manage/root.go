package main

import (
	"github.com/spf13/cobra"

	"taxipark/config"
	"taxipark/pkg/logger"
)

type app struct {
	cfg config.Config
	log logger.ILogger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "manage",
		Short:         "Maintenance commands for the taxi park database",
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.cfg = config.Load()
			a.log = logger.New(a.cfg.ServiceName+"-manage", a.cfg.LoggerLevel)
		},
	}

	root.AddCommand(
		newMigrateCmd(a),
		newResetDBCmd(a),
		newCreateDriverCmd(a),
	)
	return root
}
