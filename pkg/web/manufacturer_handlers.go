package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taxipark/pkg/models"
	"taxipark/pkg/validation"
	"taxipark/service"
)

const manufacturerListPath = "/manufacturers/"

func (s *Server) manufacturerList(c *gin.Context) {
	params := service.ListParams{Search: c.Query(manufacturerParam), Page: c.Query("page")}
	list, err := s.svc.Manufacturer().List(c.Request.Context(), params)
	if err != nil {
		s.serverError(c, err)
		return
	}
	s.render(c, http.StatusOK, "manufacturer_list", gin.H{
		"List":       list,
		"SearchForm": searchForm{Param: manufacturerParam, Value: list.Search, Placeholder: "Search manufacturer"},
		"Pagination": pagination{Param: manufacturerParam, Search: list.Search, Page: list.Page},
	})
}

func (s *Server) renderManufacturerForm(c *gin.Context, object *models.Manufacturer, form service.ManufacturerInput, errs validation.Errors) {
	if errs == nil {
		errs = validation.Errors{}
	}
	s.render(c, http.StatusOK, "manufacturer_form", gin.H{"Object": object, "Form": form, "Errors": errs})
}

func manufacturerInput(c *gin.Context) service.ManufacturerInput {
	return service.ManufacturerInput{Name: c.PostForm("name"), Country: c.PostForm("country")}
}

func (s *Server) manufacturerCreatePage(c *gin.Context) {
	s.renderManufacturerForm(c, nil, service.ManufacturerInput{}, nil)
}

func (s *Server) manufacturerCreate(c *gin.Context) {
	in := manufacturerInput(c)
	if _, err := s.svc.Manufacturer().Create(c.Request.Context(), in); err != nil {
		if errs, ok := formErrors(err); ok {
			s.renderManufacturerForm(c, nil, in, errs)
			return
		}
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, manufacturerListPath)
}

func (s *Server) loadManufacturer(c *gin.Context) (*models.Manufacturer, bool) {
	id, ok := idParam(c)
	if !ok {
		s.notFound(c)
		return nil, false
	}
	m, err := s.svc.Manufacturer().Get(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return nil, false
	}
	return m, true
}

func (s *Server) manufacturerUpdatePage(c *gin.Context) {
	m, ok := s.loadManufacturer(c)
	if !ok {
		return
	}
	s.renderManufacturerForm(c, m, service.ManufacturerInput{Name: m.Name, Country: m.Country}, nil)
}

func (s *Server) manufacturerUpdate(c *gin.Context) {
	m, ok := s.loadManufacturer(c)
	if !ok {
		return
	}
	in := manufacturerInput(c)
	if _, err := s.svc.Manufacturer().Update(c.Request.Context(), m.ID, in); err != nil {
		if errs, ok := formErrors(err); ok {
			s.renderManufacturerForm(c, m, in, errs)
			return
		}
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, manufacturerListPath)
}

func (s *Server) manufacturerDeletePage(c *gin.Context) {
	m, ok := s.loadManufacturer(c)
	if !ok {
		return
	}
	s.render(c, http.StatusOK, "confirm_delete", gin.H{
		"Kind":   "manufacturer",
		"Object": m.String(),
		"Cancel": manufacturerListPath,
	})
}

func (s *Server) manufacturerDelete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		s.notFound(c)
		return
	}
	if err := s.svc.Manufacturer().Delete(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, manufacturerListPath)
}
