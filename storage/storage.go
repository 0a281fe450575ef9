package storage

import (
	"context"
	"errors"

	"taxipark/pkg/models"
)

var (
	ErrNotFound = errors.New("record not found")
	// ErrConflict reports a unique constraint violation (driver username).
	ErrConflict = errors.New("record already exists")
	// ErrInvalidReference reports a foreign key that points nowhere.
	ErrInvalidReference = errors.New("referenced record does not exist")
)

type IStorage interface {
	Manufacturer() IManufacturerStorage
	Car() ICarStorage
	Driver() IDriverStorage
	// Reset deletes every row from every table.
	Reset(ctx context.Context) error
	Close()
}

type IManufacturerStorage interface {
	Create(ctx context.Context, m *models.Manufacturer) (*models.Manufacturer, error)
	Update(ctx context.Context, m *models.Manufacturer) (*models.Manufacturer, error)
	GetByID(ctx context.Context, id int64) (*models.Manufacturer, error)
	GetAll(ctx context.Context) ([]*models.Manufacturer, error)
	List(ctx context.Context, filter models.ListFilter) ([]*models.Manufacturer, error)
	Count(ctx context.Context, search string) (int, error)
	// Delete also removes the manufacturer's cars.
	Delete(ctx context.Context, id int64) error
}

type ICarStorage interface {
	// Create and Update write the car row and replace its driver set in one transaction.
	Create(ctx context.Context, car *models.Car) (*models.Car, error)
	Update(ctx context.Context, car *models.Car) (*models.Car, error)
	// GetByID loads the manufacturer and the assigned drivers.
	GetByID(ctx context.Context, id int64) (*models.Car, error)
	GetByDriver(ctx context.Context, driverID int64) ([]*models.Car, error)
	List(ctx context.Context, filter models.ListFilter) ([]*models.Car, error)
	Count(ctx context.Context, search string) (int, error)
	Delete(ctx context.Context, id int64) error
	// ToggleDriver links the driver when unlinked and unlinks otherwise.
	// It reports whether the driver is assigned afterwards.
	ToggleDriver(ctx context.Context, carID, driverID int64) (bool, error)
}

type IDriverStorage interface {
	Create(ctx context.Context, d *models.Driver) (*models.Driver, error)
	GetByID(ctx context.Context, id int64) (*models.Driver, error)
	GetByUsername(ctx context.Context, username string) (*models.Driver, error)
	GetByIDs(ctx context.Context, ids []int64) ([]*models.Driver, error)
	GetAll(ctx context.Context) ([]*models.Driver, error)
	List(ctx context.Context, filter models.ListFilter) ([]*models.Driver, error)
	Count(ctx context.Context, search string) (int, error)
	UpdateLicense(ctx context.Context, id int64, licenseNumber string) error
	Delete(ctx context.Context, id int64) error
}
