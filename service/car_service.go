package service

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"taxipark/pkg/logger"
	"taxipark/pkg/models"
	"taxipark/pkg/tracing"
	"taxipark/pkg/validation"
	"taxipark/storage"
)

type CarInput struct {
	Model          string
	ManufacturerID int64
	DriverIDs      []int64
}

// CarFormOptions are the choices offered by the car form.
type CarFormOptions struct {
	Manufacturers []*models.Manufacturer
	Drivers       []*models.Driver
}

type CarService interface {
	List(ctx context.Context, params ListParams) (*ListPage[*models.Car], error)
	Get(ctx context.Context, id int64) (*models.Car, error)
	Create(ctx context.Context, in CarInput) (*models.Car, error)
	Update(ctx context.Context, id int64, in CarInput) (*models.Car, error)
	Delete(ctx context.Context, id int64) error
	// ToggleAssign reports whether the driver is assigned after the call.
	ToggleAssign(ctx context.Context, carID, driverID int64) (bool, error)
	FormOptions(ctx context.Context) (*CarFormOptions, error)
}

type carService struct {
	cars          storage.ICarStorage
	manufacturers storage.IManufacturerStorage
	drivers       storage.IDriverStorage
	log           logger.ILogger
}

func NewCarService(stg storage.IStorage, log logger.ILogger) CarService {
	return &carService{
		cars:          stg.Car(),
		manufacturers: stg.Manufacturer(),
		drivers:       stg.Driver(),
		log:           log,
	}
}

func (s *carService) List(ctx context.Context, params ListParams) (*ListPage[*models.Car], error) {
	return listPage(ctx, "cars", params, s.cars.Count, s.cars.List)
}

func (s *carService) Get(ctx context.Context, id int64) (*models.Car, error) {
	return s.cars.GetByID(ctx, id)
}

func (s *carService) validate(ctx context.Context, in CarInput) (*models.Car, error) {
	errs := validation.Errors{}
	car := &models.Car{
		Model:          validation.Required(errs, FieldModel, in.Model),
		ManufacturerID: in.ManufacturerID,
		DriverIDs:      storage.UniqueIDs(in.DriverIDs),
	}
	validation.MaxLength(errs, FieldModel, car.Model, validation.MaxNameLength)

	if car.ManufacturerID == 0 {
		errs.Add(FieldManufacturer, validation.MsgRequired)
	} else if _, err := s.manufacturers.GetByID(ctx, car.ManufacturerID); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
		errs.Add(FieldManufacturer, msgInvalidChoice)
	}

	if len(car.DriverIDs) > 0 {
		found, err := s.drivers.GetByIDs(ctx, car.DriverIDs)
		if err != nil {
			return nil, err
		}
		known := make(map[int64]bool, len(found))
		for _, d := range found {
			known[d.ID] = true
		}
		for _, id := range car.DriverIDs {
			if !known[id] {
				errs.Add(FieldDrivers, fmt.Sprintf("Select a valid choice. %d is not one of the available choices.", id))
				break
			}
		}
	}

	return car, errs.OrNil()
}

func (s *carService) Create(ctx context.Context, in CarInput) (*models.Car, error) {
	car, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}
	car, err = s.cars.Create(ctx, car)
	if err != nil {
		return nil, staleReference(err)
	}
	s.log.Info("car created", logger.Int64("id", car.ID), logger.Int("drivers", len(car.DriverIDs)))
	return car, nil
}

func (s *carService) Update(ctx context.Context, id int64, in CarInput) (*models.Car, error) {
	car, err := s.validate(ctx, in)
	if err != nil {
		return nil, err
	}
	car.ID = id
	car, err = s.cars.Update(ctx, car)
	if err != nil {
		return nil, staleReference(err)
	}
	return car, nil
}

func (s *carService) Delete(ctx context.Context, id int64) error {
	if err := s.cars.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("car deleted", logger.Int64("id", id))
	return nil
}

func (s *carService) ToggleAssign(ctx context.Context, carID, driverID int64) (bool, error) {
	ctx, span := tracing.Tracer().Start(ctx, "toggle car assignment")
	defer span.End()
	span.SetAttributes(attribute.Int64("car_id", carID), attribute.Int64("driver_id", driverID))

	if _, err := s.cars.GetByID(ctx, carID); err != nil {
		return false, err
	}

	assigned, err := s.cars.ToggleDriver(ctx, carID, driverID)
	if err != nil {
		span.RecordError(err)
		return false, err
	}
	span.SetAttributes(attribute.Bool("assigned", assigned))
	s.log.Info("car assignment toggled",
		logger.Int64("car_id", carID), logger.Int64("driver_id", driverID), logger.Bool("assigned", assigned))
	return assigned, nil
}

func (s *carService) FormOptions(ctx context.Context) (*CarFormOptions, error) {
	manufacturers, err := s.manufacturers.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	drivers, err := s.drivers.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	return &CarFormOptions{Manufacturers: manufacturers, Drivers: drivers}, nil
}

// staleReference reports a row deleted between validation and the write as a form error.
func staleReference(err error) error {
	if errors.Is(err, storage.ErrInvalidReference) {
		return validation.Errors{FieldNonField: {msgStaleChoice}}
	}
	return err
}
