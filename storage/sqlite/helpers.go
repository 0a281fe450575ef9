package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ncruces/go-sqlite3"

	"taxipark/pkg/logger"
	"taxipark/storage"
)

func mapError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sql.ErrNoRows):
		return storage.ErrNotFound
	case errors.Is(err, sqlite3.CONSTRAINT_UNIQUE), errors.Is(err, sqlite3.CONSTRAINT_PRIMARYKEY):
		return fmt.Errorf("%w: %v", storage.ErrConflict, err)
	case errors.Is(err, sqlite3.CONSTRAINT_FOREIGNKEY):
		return fmt.Errorf("%w: %v", storage.ErrInvalidReference, err)
	}
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

type sqlizer interface {
	ToSql() (string, []interface{}, error)
}

func count(ctx context.Context, db *sql.DB, log logger.ILogger, entity string, q sqlizer) (int, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return 0, err
	}
	var n int
	if err := db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		log.Error("failed to count "+entity, logger.Error(err))
		return 0, err
	}
	return n, nil
}

// affected turns a write that touched no rows into storage.ErrNotFound.
func affected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return storage.ErrNotFound
	}
	return nil
}
