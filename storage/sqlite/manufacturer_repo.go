package sqlite

import (
	"context"
	"database/sql"

	"taxipark/pkg/logger"
	"taxipark/pkg/models"
	"taxipark/storage"
)

type manufacturerRepo struct {
	db  *sql.DB
	log logger.ILogger
}

func scanManufacturer(row scanner) (*models.Manufacturer, error) {
	var m models.Manufacturer
	if err := row.Scan(&m.ID, &m.Name, &m.Country); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *manufacturerRepo) Create(ctx context.Context, m *models.Manufacturer) (*models.Manufacturer, error) {
	res, err := r.db.ExecContext(ctx, `INSERT INTO manufacturers (name, country) VALUES (?, ?)`, m.Name, m.Country)
	if err != nil {
		r.log.Error("failed to create manufacturer", logger.Error(err))
		return nil, mapError(err)
	}
	if m.ID, err = res.LastInsertId(); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *manufacturerRepo) Update(ctx context.Context, m *models.Manufacturer) (*models.Manufacturer, error) {
	res, err := r.db.ExecContext(ctx, `UPDATE manufacturers SET name = ?, country = ? WHERE id = ?`, m.Name, m.Country, m.ID)
	if err != nil {
		r.log.Error("failed to update manufacturer", logger.Error(err), logger.Int64("id", m.ID))
		return nil, mapError(err)
	}
	if err := affected(res); err != nil {
		return nil, err
	}
	return m, nil
}

func (r *manufacturerRepo) GetByID(ctx context.Context, id int64) (*models.Manufacturer, error) {
	query := `SELECT ` + storage.ManufacturerColumns + ` FROM manufacturers m WHERE m.id = ?`
	m, err := scanManufacturer(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		err = mapError(err)
		if err != storage.ErrNotFound {
			r.log.Error("failed to get manufacturer", logger.Error(err), logger.Int64("id", id))
		}
		return nil, err
	}
	return m, nil
}

func (r *manufacturerRepo) GetAll(ctx context.Context) ([]*models.Manufacturer, error) {
	return r.List(ctx, models.ListFilter{})
}

func (r *manufacturerRepo) List(ctx context.Context, filter models.ListFilter) ([]*models.Manufacturer, error) {
	query, args, err := storage.ManufacturerListQuery(filter).ToSql()
	if err != nil {
		return nil, err
	}
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to list manufacturers", logger.Error(err))
		return nil, err
	}
	defer rows.Close()

	manufacturers := []*models.Manufacturer{}
	for rows.Next() {
		m, err := scanManufacturer(rows)
		if err != nil {
			return nil, err
		}
		manufacturers = append(manufacturers, m)
	}
	return manufacturers, rows.Err()
}

func (r *manufacturerRepo) Count(ctx context.Context, search string) (int, error) {
	return count(ctx, r.db, r.log, "manufacturers", storage.ManufacturerCountQuery(search))
}

func (r *manufacturerRepo) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM manufacturers WHERE id = ?`, id)
	if err != nil {
		r.log.Error("failed to delete manufacturer", logger.Error(err), logger.Int64("id", id))
		return mapError(err)
	}
	return affected(res)
}
