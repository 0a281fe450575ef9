package web

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"taxipark/pkg/logger"
	"taxipark/pkg/models"
	"taxipark/service"
)

const (
	sessionCookie = "sessionid"
	loginPath     = "/accounts/login/"
	driverKey     = "driver"
)

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		fields := []logger.Field{
			logger.String("method", c.Request.Method),
			logger.String("path", c.Request.URL.Path),
			logger.Int("status", status),
			logger.Duration("latency", time.Since(start)),
		}
		if status >= http.StatusInternalServerError {
			s.log.Error("request failed", fields...)
			return
		}
		s.log.Debug("request", fields...)
	}
}

func (s *Server) recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		s.log.Error("panic recovered", logger.Any("panic", recovered), logger.String("path", c.Request.URL.Path))
		s.render(c, http.StatusInternalServerError, "500", gin.H{})
		c.Abort()
	})
}

func (s *Server) timeout() gin.HandlerFunc {
	return func(c *gin.Context) {
		if s.cfg.RequestTimeout <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), s.cfg.RequestTimeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// requireLogin resolves the session cookie to a driver, or redirects to the
// login page with the requested path in next.
func (s *Server) requireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(sessionCookie)
		d, err := s.svc.Auth().Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, service.ErrUnauthenticated) {
				c.Redirect(http.StatusFound, loginPath+"?next="+url.QueryEscape(c.Request.URL.RequestURI()))
				c.Abort()
				return
			}
			s.serverError(c, err)
			c.Abort()
			return
		}
		c.Set(driverKey, d)
		c.Next()
	}
}

func currentDriver(c *gin.Context) *models.Driver {
	if v, ok := c.Get(driverKey); ok {
		if d, ok := v.(*models.Driver); ok {
			return d
		}
	}
	return nil
}

// safeNext accepts only local absolute paths.
func safeNext(next string) string {
	if next == "" || next[0] != '/' || (len(next) > 1 && (next[1] == '/' || next[1] == '\\')) {
		return "/"
	}
	return next
}
