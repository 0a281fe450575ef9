// Package web serves the server-rendered pages of the taxi park.
package web

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"taxipark/config"
	"taxipark/pkg/logger"
	"taxipark/service"
)

const shutdownTimeout = 10 * time.Second

type Server struct {
	cfg    config.Config
	svc    service.IServiceManager
	log    logger.ILogger
	router *gin.Engine
}

func New(cfg config.Config, svc service.IServiceManager, log logger.ILogger) (*Server, error) {
	templates, err := loadTemplates()
	if err != nil {
		return nil, err
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.HTMLRender = templates

	s := &Server{cfg: cfg, svc: svc, log: log, router: r}
	s.registerRoutes()
	return s, nil
}

func (s *Server) registerRoutes() {
	r := s.router
	r.Use(s.requestLogger(), s.recovery(), s.timeout())
	r.NoRoute(s.notFound)

	accounts := r.Group("/accounts")
	{
		accounts.GET("/login/", s.loginPage)
		accounts.POST("/login/", s.login)
		accounts.GET("/logout/", s.logout)
		accounts.POST("/logout/", s.logout)
	}

	app := r.Group("/", s.requireLogin())
	{
		app.GET("/", s.index)

		app.GET("/manufacturers/", s.manufacturerList)
		app.GET("/manufacturers/create", s.manufacturerCreatePage)
		app.POST("/manufacturers/create", s.manufacturerCreate)
		app.GET("/manufacturers/:id/update", s.manufacturerUpdatePage)
		app.POST("/manufacturers/:id/update", s.manufacturerUpdate)
		app.GET("/manufacturers/:id/delete", s.manufacturerDeletePage)
		app.POST("/manufacturers/:id/delete", s.manufacturerDelete)

		app.GET("/cars/", s.carList)
		app.GET("/cars/create", s.carCreatePage)
		app.POST("/cars/create", s.carCreate)
		app.GET("/cars/:id", s.carDetail)
		app.GET("/cars/:id/update", s.carUpdatePage)
		app.POST("/cars/:id/update", s.carUpdate)
		app.GET("/cars/:id/delete", s.carDeletePage)
		app.POST("/cars/:id/delete", s.carDelete)
		app.GET("/cars/:id/toggle-assign", s.carToggleAssign)

		app.GET("/drivers/", s.driverList)
		app.GET("/drivers/create", s.driverCreatePage)
		app.POST("/drivers/create", s.driverCreate)
		app.GET("/drivers/:id", s.driverDetail)
		app.GET("/drivers/:id/update", s.driverLicensePage)
		app.POST("/drivers/:id/update", s.driverLicenseUpdate)
		app.GET("/drivers/:id/delete", s.driverDeletePage)
		app.POST("/drivers/:id/delete", s.driverDelete)
	}
}

// Handler is the router wrapped with OpenTelemetry instrumentation.
func (s *Server) Handler() http.Handler {
	return otelhttp.NewHandler(s.router, s.cfg.ServiceName)
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(s.cfg.HTTPPort),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("HTTP server listening", logger.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
