package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"taxipark/pkg/logger"
	"taxipark/pkg/models"
	"taxipark/storage"
)

type carRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewCarRepo(db *pgxpool.Pool, log logger.ILogger) storage.ICarStorage {
	return &carRepo{db: db, log: log}
}

func scanCar(row scanner) (*models.Car, error) {
	var (
		c models.Car
		m models.Manufacturer
	)
	if err := row.Scan(&c.ID, &c.Model, &c.ManufacturerID, &m.ID, &m.Name, &m.Country); err != nil {
		return nil, err
	}
	c.Manufacturer = &m
	return &c, nil
}

func (r *carRepo) Create(ctx context.Context, car *models.Car) (*models.Car, error) {
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		query := `INSERT INTO cars (model, manufacturer_id) VALUES ($1, $2) RETURNING id`
		if err := tx.QueryRow(ctx, query, car.Model, car.ManufacturerID).Scan(&car.ID); err != nil {
			return err
		}
		return r.replaceDrivers(ctx, tx, car.ID, car.DriverIDs)
	})
	if err != nil {
		r.log.Error("failed to create car", logger.Error(err))
		return nil, mapError(err)
	}
	return car, nil
}

func (r *carRepo) Update(ctx context.Context, car *models.Car) (*models.Car, error) {
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `UPDATE cars SET model = $1, manufacturer_id = $2 WHERE id = $3`,
			car.Model, car.ManufacturerID, car.ID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return storage.ErrNotFound
		}
		return r.replaceDrivers(ctx, tx, car.ID, car.DriverIDs)
	})
	if err != nil {
		err = mapError(err)
		if err != storage.ErrNotFound {
			r.log.Error("failed to update car", logger.Error(err), logger.Int64("id", car.ID))
		}
		return nil, err
	}
	return car, nil
}

func (r *carRepo) replaceDrivers(ctx context.Context, tx pgx.Tx, carID int64, driverIDs []int64) error {
	if _, err := tx.Exec(ctx, `DELETE FROM car_drivers WHERE car_id = $1`, carID); err != nil {
		return err
	}
	ids := storage.UniqueIDs(driverIDs)
	if len(ids) == 0 {
		return nil
	}
	query, args, err := dollar(storage.InsertCarDriversQuery(carID, ids))
	if err != nil {
		return err
	}
	_, err = tx.Exec(ctx, query, args...)
	return err
}

func (r *carRepo) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *carRepo) GetByID(ctx context.Context, id int64) (*models.Car, error) {
	query := `SELECT ` + storage.CarColumns + `
		FROM cars c
		JOIN manufacturers m ON m.id = c.manufacturer_id
		WHERE c.id = $1`
	car, err := scanCar(r.db.QueryRow(ctx, query, id))
	if err != nil {
		err = mapError(err)
		if err != storage.ErrNotFound {
			r.log.Error("failed to get car", logger.Error(err), logger.Int64("id", id))
		}
		return nil, err
	}

	query, args, err := dollar(storage.DriversByCarQuery(id))
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to load car drivers", logger.Error(err), logger.Int64("id", id))
		return nil, err
	}
	defer rows.Close()

	car.Drivers = []*models.Driver{}
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, err
		}
		car.Drivers = append(car.Drivers, d)
		car.DriverIDs = append(car.DriverIDs, d.ID)
	}
	return car, rows.Err()
}

func (r *carRepo) GetByDriver(ctx context.Context, driverID int64) ([]*models.Car, error) {
	query, args, err := dollar(storage.CarsByDriverQuery(driverID))
	if err != nil {
		return nil, err
	}
	return r.query(ctx, query, args...)
}

func (r *carRepo) List(ctx context.Context, filter models.ListFilter) ([]*models.Car, error) {
	query, args, err := dollar(storage.CarListQuery(filter))
	if err != nil {
		return nil, err
	}
	return r.query(ctx, query, args...)
}

func (r *carRepo) query(ctx context.Context, query string, args ...any) ([]*models.Car, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to list cars", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	cars := []*models.Car{}
	for rows.Next() {
		c, err := scanCar(rows)
		if err != nil {
			return nil, err
		}
		cars = append(cars, c)
	}
	return cars, rows.Err()
}

func (r *carRepo) Count(ctx context.Context, search string) (int, error) {
	query, args, err := dollar(storage.CarCountQuery(search))
	if err != nil {
		return 0, err
	}
	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("failed to count cars", logger.Error(err))
		return 0, err
	}
	return count, nil
}

func (r *carRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM cars WHERE id = $1`, id)
	if err != nil {
		r.log.Error("failed to delete car", logger.Error(err), logger.Int64("id", id))
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *carRepo) ToggleDriver(ctx context.Context, carID, driverID int64) (bool, error) {
	var assigned bool
	err := r.inTx(ctx, func(tx pgx.Tx) error {
		var exists bool
		check := `SELECT EXISTS(SELECT 1 FROM car_drivers WHERE car_id = $1 AND driver_id = $2)`
		if err := tx.QueryRow(ctx, check, carID, driverID).Scan(&exists); err != nil {
			return err
		}

		if exists {
			_, err := tx.Exec(ctx, `DELETE FROM car_drivers WHERE car_id = $1 AND driver_id = $2`, carID, driverID)
			return err
		}
		// a concurrent toggle may have linked the pair since the check
		assigned = true
		_, err := tx.Exec(ctx,
			`INSERT INTO car_drivers (car_id, driver_id) VALUES ($1, $2) ON CONFLICT (car_id, driver_id) DO NOTHING`,
			carID, driverID)
		return err
	})
	if err != nil {
		err = mapError(err)
		if !errors.Is(err, storage.ErrInvalidReference) {
			r.log.Error("failed to toggle car driver", logger.Error(err),
				logger.Int64("car_id", carID), logger.Int64("driver_id", driverID))
		}
		return false, err
	}
	return assigned, nil
}
