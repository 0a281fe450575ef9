package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"

	"taxipark/pkg/logger"
	"taxipark/pkg/models"
	"taxipark/storage"
)

type driverRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewDriverRepo(db *pgxpool.Pool, log logger.ILogger) storage.IDriverStorage {
	return &driverRepo{db: db, log: log}
}

func scanDriver(row scanner) (*models.Driver, error) {
	var d models.Driver
	err := row.Scan(&d.ID, &d.Username, &d.FirstName, &d.LastName, &d.LicenseNumber, &d.PasswordHash)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *driverRepo) Create(ctx context.Context, d *models.Driver) (*models.Driver, error) {
	query := `
		INSERT INTO drivers (username, first_name, last_name, license_number, password_hash)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRow(ctx, query, d.Username, d.FirstName, d.LastName, d.LicenseNumber, d.PasswordHash).Scan(&d.ID)
	if err != nil {
		err = mapError(err)
		if !errors.Is(err, storage.ErrConflict) {
			r.log.Error("failed to create driver", logger.Error(err))
		}
		return nil, err
	}
	return d, nil
}

func (r *driverRepo) getOne(ctx context.Context, where string, arg any) (*models.Driver, error) {
	query := `SELECT ` + storage.DriverColumns + ` FROM drivers d WHERE ` + where
	d, err := scanDriver(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		err = mapError(err)
		if err != storage.ErrNotFound {
			r.log.Error("failed to get driver", logger.Error(err))
		}
		return nil, err
	}
	return d, nil
}

func (r *driverRepo) GetByID(ctx context.Context, id int64) (*models.Driver, error) {
	return r.getOne(ctx, "d.id = $1", id)
}

func (r *driverRepo) GetByUsername(ctx context.Context, username string) (*models.Driver, error) {
	return r.getOne(ctx, "d.username = $1", username)
}

func (r *driverRepo) GetByIDs(ctx context.Context, ids []int64) ([]*models.Driver, error) {
	if len(ids) == 0 {
		return []*models.Driver{}, nil
	}
	query, args, err := dollar(storage.DriversByIDsQuery(ids))
	if err != nil {
		return nil, err
	}
	return r.query(ctx, query, args...)
}

func (r *driverRepo) GetAll(ctx context.Context) ([]*models.Driver, error) {
	return r.List(ctx, models.ListFilter{})
}

func (r *driverRepo) List(ctx context.Context, filter models.ListFilter) ([]*models.Driver, error) {
	query, args, err := dollar(storage.DriverListQuery(filter))
	if err != nil {
		return nil, err
	}
	return r.query(ctx, query, args...)
}

func (r *driverRepo) query(ctx context.Context, query string, args ...any) ([]*models.Driver, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to list drivers", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	drivers := []*models.Driver{}
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, d)
	}
	return drivers, rows.Err()
}

func (r *driverRepo) Count(ctx context.Context, search string) (int, error) {
	query, args, err := dollar(storage.DriverCountQuery(search))
	if err != nil {
		return 0, err
	}
	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("failed to count drivers", logger.Error(err))
		return 0, err
	}
	return count, nil
}

func (r *driverRepo) UpdateLicense(ctx context.Context, id int64, licenseNumber string) error {
	tag, err := r.db.Exec(ctx, `UPDATE drivers SET license_number = $1 WHERE id = $2`, licenseNumber, id)
	if err != nil {
		r.log.Error("failed to update license", logger.Error(err), logger.Int64("id", id))
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *driverRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM drivers WHERE id = $1`, id)
	if err != nil {
		r.log.Error("failed to delete driver", logger.Error(err), logger.Int64("id", id))
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
