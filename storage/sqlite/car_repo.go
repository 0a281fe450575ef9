package sqlite

import (
	"context"
	"database/sql"
	"errors"

	"taxipark/pkg/logger"
	"taxipark/pkg/models"
	"taxipark/storage"
)

type carRepo struct {
	db  *sql.DB
	log logger.ILogger
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
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `INSERT INTO cars (model, manufacturer_id) VALUES (?, ?)`, car.Model, car.ManufacturerID)
		if err != nil {
			return err
		}
		if car.ID, err = res.LastInsertId(); err != nil {
			return err
		}
		return replaceDrivers(ctx, tx, car.ID, car.DriverIDs)
	})
	if err != nil {
		r.log.Error("failed to create car", logger.Error(err))
		return nil, mapError(err)
	}
	return car, nil
}

func (r *carRepo) Update(ctx context.Context, car *models.Car) (*models.Car, error) {
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE cars SET model = ?, manufacturer_id = ? WHERE id = ?`,
			car.Model, car.ManufacturerID, car.ID)
		if err != nil {
			return err
		}
		if err := affected(res); err != nil {
			return err
		}
		return replaceDrivers(ctx, tx, car.ID, car.DriverIDs)
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

func replaceDrivers(ctx context.Context, tx *sql.Tx, carID int64, driverIDs []int64) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM car_drivers WHERE car_id = ?`, carID); err != nil {
		return err
	}
	ids := storage.UniqueIDs(driverIDs)
	if len(ids) == 0 {
		return nil
	}
	query, args, err := storage.InsertCarDriversQuery(carID, ids).ToSql()
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, query, args...)
	return err
}

func (r *carRepo) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *carRepo) GetByID(ctx context.Context, id int64) (*models.Car, error) {
	query := `SELECT ` + storage.CarColumns + `
		FROM cars c
		JOIN manufacturers m ON m.id = c.manufacturer_id
		WHERE c.id = ?`
	car, err := scanCar(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		err = mapError(err)
		if err != storage.ErrNotFound {
			r.log.Error("failed to get car", logger.Error(err), logger.Int64("id", id))
		}
		return nil, err
	}

	car.Drivers, err = queryDrivers(ctx, r.db, r.log, storage.DriversByCarQuery(id))
	if err != nil {
		return nil, err
	}
	for _, d := range car.Drivers {
		car.DriverIDs = append(car.DriverIDs, d.ID)
	}
	return car, nil
}

func (r *carRepo) GetByDriver(ctx context.Context, driverID int64) ([]*models.Car, error) {
	return r.query(ctx, storage.CarsByDriverQuery(driverID))
}

func (r *carRepo) List(ctx context.Context, filter models.ListFilter) ([]*models.Car, error) {
	return r.query(ctx, storage.CarListQuery(filter))
}

func (r *carRepo) query(ctx context.Context, q sqlizer) ([]*models.Car, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
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
	return count(ctx, r.db, r.log, "cars", storage.CarCountQuery(search))
}

func (r *carRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM cars WHERE id = ?`, id)
	if err != nil {
		r.log.Error("failed to delete car", logger.Error(err), logger.Int64("id", id))
		return mapError(err)
	}
	return affected(res)
}

func (r *carRepo) ToggleDriver(ctx context.Context, carID, driverID int64) (bool, error) {
	var assigned bool
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		var exists bool
		check := `SELECT EXISTS(SELECT 1 FROM car_drivers WHERE car_id = ? AND driver_id = ?)`
		if err := tx.QueryRowContext(ctx, check, carID, driverID).Scan(&exists); err != nil {
			return err
		}

		if exists {
			_, err := tx.ExecContext(ctx, `DELETE FROM car_drivers WHERE car_id = ? AND driver_id = ?`, carID, driverID)
			return err
		}
		assigned = true
		_, err := tx.ExecContext(ctx, `INSERT INTO car_drivers (car_id, driver_id) VALUES (?, ?)`, carID, driverID)
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
