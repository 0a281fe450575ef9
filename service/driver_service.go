package service

import (
	"context"
	"errors"
	"strings"

	"taxipark/pkg/logger"
	"taxipark/pkg/models"
	"taxipark/pkg/security"
	"taxipark/pkg/validation"
	"taxipark/storage"
)

// DriverInput is the signup form of a new driver.
type DriverInput struct {
	Username        string
	FirstName       string
	LastName        string
	LicenseNumber   string
	Password        string
	PasswordConfirm string
}

type DriverService interface {
	List(ctx context.Context, params ListParams) (*ListPage[*models.Driver], error)
	// Get loads the driver together with the cars assigned to them.
	Get(ctx context.Context, id int64) (*models.Driver, error)
	Create(ctx context.Context, in DriverInput) (*models.Driver, error)
	UpdateLicense(ctx context.Context, id int64, licenseNumber string) (*models.Driver, error)
	Delete(ctx context.Context, id int64) error
}

type driverService struct {
	drivers    storage.IDriverStorage
	cars       storage.ICarStorage
	bcryptCost int
	log        logger.ILogger
}

func NewDriverService(stg storage.IStorage, bcryptCost int, log logger.ILogger) DriverService {
	return &driverService{
		drivers:    stg.Driver(),
		cars:       stg.Car(),
		bcryptCost: bcryptCost,
		log:        log,
	}
}

func (s *driverService) List(ctx context.Context, params ListParams) (*ListPage[*models.Driver], error) {
	return listPage(ctx, "drivers", params, s.drivers.Count, s.drivers.List)
}

func (s *driverService) Get(ctx context.Context, id int64) (*models.Driver, error) {
	d, err := s.drivers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d.Cars, err = s.cars.GetByDriver(ctx, id); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *driverService) Create(ctx context.Context, in DriverInput) (*models.Driver, error) {
	errs := validation.Errors{}
	d := &models.Driver{
		Username:      validation.ValidateUsername(errs, FieldUsername, in.Username),
		FirstName:     strings.TrimSpace(in.FirstName),
		LastName:      strings.TrimSpace(in.LastName),
		LicenseNumber: validation.License(errs, FieldLicenseNumber, in.LicenseNumber),
	}
	validation.MaxLength(errs, FieldFirstName, d.FirstName, validation.MaxUsernameLength)
	validation.MaxLength(errs, FieldLastName, d.LastName, validation.MaxUsernameLength)
	validation.ValidatePassword(errs, FieldPassword1, FieldPassword2, in.Password, in.PasswordConfirm)

	if !errs.Has(FieldUsername) {
		_, err := s.drivers.GetByUsername(ctx, d.Username)
		switch {
		case err == nil:
			errs.Add(FieldUsername, msgUsernameTaken)
		case !errors.Is(err, storage.ErrNotFound):
			return nil, err
		}
	}
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	hash, err := security.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		s.log.Error("failed to hash password", logger.Error(err))
		return nil, err
	}
	d.PasswordHash = hash

	d, err = s.drivers.Create(ctx, d)
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, validation.Errors{FieldUsername: {msgUsernameTaken}}
		}
		return nil, err
	}
	s.log.Info("driver created", logger.Int64("id", d.ID), logger.String("username", d.Username))
	return d, nil
}

func (s *driverService) UpdateLicense(ctx context.Context, id int64, licenseNumber string) (*models.Driver, error) {
	d, err := s.drivers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	errs := validation.Errors{}
	d.LicenseNumber = validation.License(errs, FieldLicenseNumber, licenseNumber)
	if err := errs.OrNil(); err != nil {
		return nil, err
	}

	if err := s.drivers.UpdateLicense(ctx, id, d.LicenseNumber); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *driverService) Delete(ctx context.Context, id int64) error {
	if err := s.drivers.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("driver deleted", logger.Int64("id", id))
	return nil
}
