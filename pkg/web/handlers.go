package web

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taxipark/pkg/logger"
	"taxipark/pkg/paginate"
	"taxipark/pkg/validation"
	"taxipark/storage"
)

// Search query parameter per entity.
const (
	manufacturerParam = "manufacturer"
	carParam          = "model"
	driverParam       = "driver"
)

type searchForm struct {
	Param       string
	Value       string
	Placeholder string
}

type pagination struct {
	Param  string
	Search string
	Page   paginate.Page
}

// render adds the logged in driver to data and writes the named page.
func (s *Server) render(c *gin.Context, status int, name string, data gin.H) {
	if _, ok := data["User"]; !ok {
		if d := currentDriver(c); d != nil {
			data["User"] = d
		}
	}
	c.HTML(status, name, data)
}

func (s *Server) notFound(c *gin.Context) {
	s.render(c, http.StatusNotFound, "404", gin.H{})
}

func (s *Server) serverError(c *gin.Context, err error) {
	s.log.Error("request error", logger.Error(err), logger.String("path", c.Request.URL.Path))
	s.render(c, http.StatusInternalServerError, "500", gin.H{})
}

// fail maps a service error onto the 404 or 500 page.
func (s *Server) fail(c *gin.Context, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		s.notFound(c)
		return
	}
	s.serverError(c, err)
}

// formErrors extracts field errors, reporting false for any other error.
func formErrors(err error) (validation.Errors, bool) {
	var errs validation.Errors
	if errors.As(err, &errs) {
		return errs, true
	}
	return nil, false
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// parseID reads a posted id. Blank gives 0, anything unparsable gives -1.
func parseID(raw string) int64 {
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return -1
	}
	return id
}

func (s *Server) index(c *gin.Context) {
	counts, err := s.svc.Dashboard().Counts(c.Request.Context())
	if err != nil {
		s.serverError(c, err)
		return
	}
	s.render(c, http.StatusOK, "index", gin.H{"Counts": counts})
}
