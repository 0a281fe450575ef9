package web

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taxipark/pkg/models"
	"taxipark/pkg/validation"
	"taxipark/service"
)

const driverListPath = "/drivers/"

func (s *Server) driverList(c *gin.Context) {
	params := service.ListParams{Search: c.Query(driverParam), Page: c.Query("page")}
	list, err := s.svc.Driver().List(c.Request.Context(), params)
	if err != nil {
		s.serverError(c, err)
		return
	}
	s.render(c, http.StatusOK, "driver_list", gin.H{
		"List":       list,
		"SearchForm": searchForm{Param: driverParam, Value: list.Search, Placeholder: "Search driver"},
		"Pagination": pagination{Param: driverParam, Search: list.Search, Page: list.Page},
	})
}

func (s *Server) loadDriver(c *gin.Context) (*models.Driver, bool) {
	id, ok := idParam(c)
	if !ok {
		s.notFound(c)
		return nil, false
	}
	d, err := s.svc.Driver().Get(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return nil, false
	}
	return d, true
}

func (s *Server) driverDetail(c *gin.Context) {
	d, ok := s.loadDriver(c)
	if !ok {
		return
	}
	s.render(c, http.StatusOK, "driver_detail", gin.H{"Driver": d})
}

func (s *Server) renderDriverForm(c *gin.Context, form service.DriverInput, errs validation.Errors) {
	if errs == nil {
		errs = validation.Errors{}
	}
	// passwords are never echoed back
	form.Password, form.PasswordConfirm = "", ""
	s.render(c, http.StatusOK, "driver_form", gin.H{"Form": form, "Errors": errs})
}

func (s *Server) driverCreatePage(c *gin.Context) {
	s.renderDriverForm(c, service.DriverInput{}, nil)
}

func (s *Server) driverCreate(c *gin.Context) {
	in := service.DriverInput{
		Username:        c.PostForm("username"),
		FirstName:       c.PostForm("first_name"),
		LastName:        c.PostForm("last_name"),
		LicenseNumber:   c.PostForm("license_number"),
		Password:        c.PostForm("password1"),
		PasswordConfirm: c.PostForm("password2"),
	}
	if _, err := s.svc.Driver().Create(c.Request.Context(), in); err != nil {
		if errs, ok := formErrors(err); ok {
			s.renderDriverForm(c, in, errs)
			return
		}
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, driverListPath)
}

func (s *Server) renderLicenseForm(c *gin.Context, d *models.Driver, license string, errs validation.Errors) {
	if errs == nil {
		errs = validation.Errors{}
	}
	s.render(c, http.StatusOK, "driver_license_form", gin.H{
		"Driver":        d,
		"LicenseNumber": license,
		"Errors":        errs,
	})
}

func (s *Server) driverLicensePage(c *gin.Context) {
	d, ok := s.loadDriver(c)
	if !ok {
		return
	}
	s.renderLicenseForm(c, d, d.LicenseNumber, nil)
}

func (s *Server) driverLicenseUpdate(c *gin.Context) {
	d, ok := s.loadDriver(c)
	if !ok {
		return
	}
	license := c.PostForm("license_number")
	if _, err := s.svc.Driver().UpdateLicense(c.Request.Context(), d.ID, license); err != nil {
		if errs, ok := formErrors(err); ok {
			s.renderLicenseForm(c, d, license, errs)
			return
		}
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, driverListPath)
}

func (s *Server) driverDeletePage(c *gin.Context) {
	d, ok := s.loadDriver(c)
	if !ok {
		return
	}
	s.render(c, http.StatusOK, "confirm_delete", gin.H{
		"Kind":   "driver",
		"Object": d.String(),
		"Cancel": driverListPath,
	})
}

func (s *Server) driverDelete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		s.notFound(c)
		return
	}
	if err := s.svc.Driver().Delete(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, driverListPath)
}
