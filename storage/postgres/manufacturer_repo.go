package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"taxipark/pkg/logger"
	"taxipark/pkg/models"
	"taxipark/storage"
)

type manufacturerRepo struct {
	db  *pgxpool.Pool
	log logger.ILogger
}

func NewManufacturerRepo(db *pgxpool.Pool, log logger.ILogger) storage.IManufacturerStorage {
	return &manufacturerRepo{db: db, log: log}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanManufacturer(row scanner) (*models.Manufacturer, error) {
	var m models.Manufacturer
	if err := row.Scan(&m.ID, &m.Name, &m.Country); err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *manufacturerRepo) Create(ctx context.Context, m *models.Manufacturer) (*models.Manufacturer, error) {
	query := `INSERT INTO manufacturers (name, country) VALUES ($1, $2) RETURNING id`
	if err := r.db.QueryRow(ctx, query, m.Name, m.Country).Scan(&m.ID); err != nil {
		r.log.Error("failed to create manufacturer", logger.Error(err))
		return nil, mapError(err)
	}
	return m, nil
}

func (r *manufacturerRepo) Update(ctx context.Context, m *models.Manufacturer) (*models.Manufacturer, error) {
	tag, err := r.db.Exec(ctx, `UPDATE manufacturers SET name = $1, country = $2 WHERE id = $3`, m.Name, m.Country, m.ID)
	if err != nil {
		r.log.Error("failed to update manufacturer", logger.Error(err), logger.Int64("id", m.ID))
		return nil, mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return nil, storage.ErrNotFound
	}
	return m, nil
}

func (r *manufacturerRepo) GetByID(ctx context.Context, id int64) (*models.Manufacturer, error) {
	query := `SELECT m.id, m.name, m.country FROM manufacturers m WHERE m.id = $1`
	m, err := scanManufacturer(r.db.QueryRow(ctx, query, id))
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
	query, args, err := dollar(storage.ManufacturerListQuery(filter))
	if err != nil {
		return nil, err
	}
	rows, err := r.db.Query(ctx, query, args...)
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
	query, args, err := dollar(storage.ManufacturerCountQuery(search))
	if err != nil {
		return 0, err
	}
	var count int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.log.Error("failed to count manufacturers", logger.Error(err))
		return 0, err
	}
	return count, nil
}

func (r *manufacturerRepo) Delete(ctx context.Context, id int64) error {
	// cars.manufacturer_id is ON DELETE CASCADE so the cars go with it
	tag, err := r.db.Exec(ctx, `DELETE FROM manufacturers WHERE id = $1`, id)
	if err != nil {
		r.log.Error("failed to delete manufacturer", logger.Error(err), logger.Int64("id", id))
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
