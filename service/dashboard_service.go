package service

import (
	"context"

	"taxipark/pkg/logger"
	"taxipark/pkg/models"
	"taxipark/storage"
)

type DashboardService interface {
	Counts(ctx context.Context) (*models.Counts, error)
}

type dashboardService struct {
	stg storage.IStorage
	log logger.ILogger
}

func NewDashboardService(stg storage.IStorage, log logger.ILogger) DashboardService {
	return &dashboardService{stg: stg, log: log}
}

func (s *dashboardService) Counts(ctx context.Context) (*models.Counts, error) {
	var (
		counts models.Counts
		err    error
	)
	if counts.Manufacturers, err = s.stg.Manufacturer().Count(ctx, ""); err != nil {
		return nil, err
	}
	if counts.Drivers, err = s.stg.Driver().Count(ctx, ""); err != nil {
		return nil, err
	}
	if counts.Cars, err = s.stg.Car().Count(ctx, ""); err != nil {
		return nil, err
	}
	return &counts, nil
}
