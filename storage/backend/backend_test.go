package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"taxipark/config"
	"taxipark/pkg/logger"
)

func TestOpen(t *testing.T) {
	ctx := context.Background()

	stg, err := Open(ctx, config.Config{
		DBDriver:   config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
	}, logger.NewNop())
	require.NoError(t, err)
	stg.Close()

	_, err = Open(ctx, config.Config{DBDriver: "mysql"}, logger.NewNop())
	require.Error(t, err)
}
