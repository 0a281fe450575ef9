package service

import (
	"taxipark/config"
	"taxipark/pkg/logger"
	"taxipark/pkg/security"
	"taxipark/pkg/session"
	"taxipark/storage"
)

type IServiceManager interface {
	Manufacturer() ManufacturerService
	Car() CarService
	Driver() DriverService
	Auth() AuthService
	Dashboard() DashboardService
}

type service struct {
	manufacturerService ManufacturerService
	carService          CarService
	driverService       DriverService
	authService         AuthService
	dashboardService    DashboardService
}

func New(cfg config.Config, stg storage.IStorage, sessions session.Store, log logger.ILogger) IServiceManager {
	tokens := security.NewTokenManager(cfg.SessionSecret, cfg.SessionTTL)

	return &service{
		manufacturerService: NewManufacturerService(stg, log),
		carService:          NewCarService(stg, log),
		driverService:       NewDriverService(stg, cfg.BcryptCost, log),
		authService:         NewAuthService(stg, sessions, tokens, log),
		dashboardService:    NewDashboardService(stg, log),
	}
}

func (s *service) Manufacturer() ManufacturerService {
	return s.manufacturerService
}

func (s *service) Car() CarService {
	return s.carService
}

func (s *service) Driver() DriverService {
	return s.driverService
}

func (s *service) Auth() AuthService {
	return s.authService
}

func (s *service) Dashboard() DashboardService {
	return s.dashboardService
}
