package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"taxipark/pkg/logger"
	"taxipark/pkg/models"
	"taxipark/storage"
)

type driverRepo struct {
	db  *sql.DB
	log logger.ILogger
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
		VALUES (?, ?, ?, ?, ?)
	`
	res, err := r.db.ExecContext(ctx, query, d.Username, d.FirstName, d.LastName, d.LicenseNumber, d.PasswordHash)
	if err != nil {
		err = mapError(err)
		if !errors.Is(err, storage.ErrConflict) {
			r.log.Error("failed to create driver", logger.Error(err))
		}
		return nil, err
	}
	if d.ID, err = res.LastInsertId(); err != nil {
		return nil, err
	}
	return d, nil
}

func (r *driverRepo) getOne(ctx context.Context, where string, arg any) (*models.Driver, error) {
	query := `SELECT ` + storage.DriverColumns + ` FROM drivers d WHERE ` + where
	d, err := scanDriver(r.db.QueryRowContext(ctx, query, arg))
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
	return r.getOne(ctx, "d.id = ?", id)
}

func (r *driverRepo) GetByUsername(ctx context.Context, username string) (*models.Driver, error) {
	return r.getOne(ctx, "d.username = ?", username)
}

func (r *driverRepo) GetByIDs(ctx context.Context, ids []int64) ([]*models.Driver, error) {
	if len(ids) == 0 {
		return []*models.Driver{}, nil
	}
	return r.query(ctx, storage.DriversByIDsQuery(ids))
}

func (r *driverRepo) GetAll(ctx context.Context) ([]*models.Driver, error) {
	return r.List(ctx, models.ListFilter{})
}

func (r *driverRepo) List(ctx context.Context, filter models.ListFilter) ([]*models.Driver, error) {
	return r.query(ctx, storage.DriverListQuery(filter))
}

func (r *driverRepo) query(ctx context.Context, q sqlizer) ([]*models.Driver, error) {
	return queryDrivers(ctx, r.db, r.log, q)
}

func queryDrivers(ctx context.Context, db *sql.DB, log logger.ILogger, q sqlizer) ([]*models.Driver, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to list drivers", logger.Error(err))
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
	return count(ctx, r.db, r.log, "drivers", storage.DriverCountQuery(search))
}

func (r *driverRepo) UpdateLicense(ctx context.Context, id int64, licenseNumber string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE drivers SET license_number = ? WHERE id = ?`, licenseNumber, id)
	if err != nil {
		r.log.Error("failed to update license", logger.Error(err), logger.Int64("id", id))
		return mapError(err)
	}
	return affected(res)
}

func (r *driverRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM drivers WHERE id = ?`, id)
	if err != nil {
		r.log.Error("failed to delete driver", logger.Error(err), logger.Int64("id", id))
		return mapError(err)
	}
	return affected(res)
}
