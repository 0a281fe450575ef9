package service

import (
	"context"

	"taxipark/pkg/logger"
	"taxipark/pkg/models"
	"taxipark/pkg/validation"
	"taxipark/storage"
)

type ManufacturerInput struct {
	Name    string
	Country string
}

type ManufacturerService interface {
	List(ctx context.Context, params ListParams) (*ListPage[*models.Manufacturer], error)
	Get(ctx context.Context, id int64) (*models.Manufacturer, error)
	Create(ctx context.Context, in ManufacturerInput) (*models.Manufacturer, error)
	Update(ctx context.Context, id int64, in ManufacturerInput) (*models.Manufacturer, error)
	Delete(ctx context.Context, id int64) error
}

type manufacturerService struct {
	stg storage.IManufacturerStorage
	log logger.ILogger
}

func NewManufacturerService(stg storage.IStorage, log logger.ILogger) ManufacturerService {
	return &manufacturerService{
		stg: stg.Manufacturer(),
		log: log,
	}
}

func (s *manufacturerService) List(ctx context.Context, params ListParams) (*ListPage[*models.Manufacturer], error) {
	return listPage(ctx, "manufacturers", params, s.stg.Count, s.stg.List)
}

func (s *manufacturerService) Get(ctx context.Context, id int64) (*models.Manufacturer, error) {
	return s.stg.GetByID(ctx, id)
}

func (s *manufacturerService) validate(in ManufacturerInput) (*models.Manufacturer, error) {
	errs := validation.Errors{}
	m := &models.Manufacturer{
		Name:    validation.Required(errs, FieldName, in.Name),
		Country: validation.Required(errs, FieldCountry, in.Country),
	}
	validation.MaxLength(errs, FieldName, m.Name, validation.MaxNameLength)
	validation.MaxLength(errs, FieldCountry, m.Country, validation.MaxNameLength)
	return m, errs.OrNil()
}

func (s *manufacturerService) Create(ctx context.Context, in ManufacturerInput) (*models.Manufacturer, error) {
	m, err := s.validate(in)
	if err != nil {
		return nil, err
	}
	m, err = s.stg.Create(ctx, m)
	if err != nil {
		return nil, err
	}
	s.log.Info("manufacturer created", logger.Int64("id", m.ID))
	return m, nil
}

func (s *manufacturerService) Update(ctx context.Context, id int64, in ManufacturerInput) (*models.Manufacturer, error) {
	m, err := s.validate(in)
	if err != nil {
		return nil, err
	}
	m.ID = id
	return s.stg.Update(ctx, m)
}

func (s *manufacturerService) Delete(ctx context.Context, id int64) error {
	if err := s.stg.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("manufacturer deleted", logger.Int64("id", id))
	return nil
}
