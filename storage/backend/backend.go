// Package backend opens the storage.IStorage selected by DB_DRIVER.
package backend

import (
	"context"
	"fmt"

	"taxipark/config"
	"taxipark/pkg/logger"
	"taxipark/storage"
	"taxipark/storage/postgres"
	"taxipark/storage/sqlite"
)

func Open(ctx context.Context, cfg config.Config, log logger.ILogger) (storage.IStorage, error) {
	switch cfg.DBDriver {
	case config.DriverPostgres:
		return postgres.New(ctx, cfg, log)
	case config.DriverSQLite:
		return sqlite.New(ctx, cfg.SQLitePath, log)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}
