// Package sqlite implements storage.IStorage on an embedded SQLite database.
// It backs local runs with DB_DRIVER=sqlite and the service and web tests.
package sqlite

import (
	"context"
	"database/sql"
	_ "embed"

	"github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
	"github.com/ncruces/go-sqlite3/ext/unicode"

	"taxipark/pkg/logger"
	"taxipark/storage"
)

//go:embed schema.sql
var schema string

type Store struct {
	db  *sql.DB
	log logger.ILogger
}

// New opens (creating if needed) the database at path and applies the schema.
// Every connection gets Unicode aware lower() and LIKE so searches fold case
// beyond ASCII.
func New(ctx context.Context, path string, log logger.ILogger) (storage.IStorage, error) {
	dsn := "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := driver.Open(dsn, unicode.Register)
	if err != nil {
		log.Error("failed to open sqlite", logger.Error(err), logger.String("path", path))
		return nil, err
	}
	// single connection; queries must not nest inside an open rows cursor or tx
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		log.Error("failed to ping sqlite", logger.Error(err), logger.String("path", path))
		return nil, err
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		log.Error("failed to apply sqlite schema", logger.Error(err))
		return nil, err
	}

	log.Info("SQLite connected", logger.String("path", path))

	return &Store{db: db, log: log}, nil
}

func (s *Store) Close() {
	if err := s.db.Close(); err != nil {
		s.log.Warning("failed to close sqlite", logger.Error(err))
	}
}

func (s *Store) Reset(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"car_drivers", "cars", "drivers", "manufacturers"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			s.log.Error("failed to clear table", logger.Error(err), logger.String("table", table))
			return err
		}
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM sqlite_sequence"); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) Manufacturer() storage.IManufacturerStorage {
	return &manufacturerRepo{db: s.db, log: s.log}
}

func (s *Store) Car() storage.ICarStorage {
	return &carRepo{db: s.db, log: s.log}
}

func (s *Store) Driver() storage.IDriverStorage {
	return &driverRepo{db: s.db, log: s.log}
}
