package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("HTTP_PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("SESSION_TTL", "")

	cfg := Load()
	require.Equal(t, 8080, cfg.HTTPPort)
	require.Equal(t, DriverPostgres, cfg.DBDriver)
	require.Equal(t, 336*time.Hour, cfg.SessionTTL)
	require.Equal(t, SessionStoreMemory, cfg.SessionStore)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DB_DRIVER", DriverSQLite)
	t.Setenv("REQUEST_TIMEOUT", "3s")
	t.Setenv("POSTGRES_USER", "fleet")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_PORT", "6543")
	t.Setenv("POSTGRES_DB", "park")

	cfg := Load()
	require.Equal(t, 9090, cfg.HTTPPort)
	require.Equal(t, DriverSQLite, cfg.DBDriver)
	require.Equal(t, 3*time.Second, cfg.RequestTimeout)
	require.Equal(t, "postgres://fleet:secret@db:6543/park?sslmode=disable", cfg.PostgresURL())
}
