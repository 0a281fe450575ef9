package web

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taxipark/pkg/models"
	"taxipark/pkg/validation"
	"taxipark/service"
)

const carListPath = "/cars/"

func (s *Server) carList(c *gin.Context) {
	params := service.ListParams{Search: c.Query(carParam), Page: c.Query("page")}
	list, err := s.svc.Car().List(c.Request.Context(), params)
	if err != nil {
		s.serverError(c, err)
		return
	}
	s.render(c, http.StatusOK, "car_list", gin.H{
		"List":       list,
		"SearchForm": searchForm{Param: carParam, Value: list.Search, Placeholder: "Search car"},
		"Pagination": pagination{Param: carParam, Search: list.Search, Page: list.Page},
	})
}

func (s *Server) loadCar(c *gin.Context) (*models.Car, bool) {
	id, ok := idParam(c)
	if !ok {
		s.notFound(c)
		return nil, false
	}
	car, err := s.svc.Car().Get(c.Request.Context(), id)
	if err != nil {
		s.fail(c, err)
		return nil, false
	}
	return car, true
}

func (s *Server) carDetail(c *gin.Context) {
	car, ok := s.loadCar(c)
	if !ok {
		return
	}
	me := currentDriver(c)
	s.render(c, http.StatusOK, "car_detail", gin.H{
		"Car":      car,
		"Assigned": me != nil && car.HasDriver(me.ID),
	})
}

func (s *Server) renderCarForm(c *gin.Context, object *models.Car, form service.CarInput, errs validation.Errors) {
	opts, err := s.svc.Car().FormOptions(c.Request.Context())
	if err != nil {
		s.serverError(c, err)
		return
	}
	if errs == nil {
		errs = validation.Errors{}
	}
	s.render(c, http.StatusOK, "car_form", gin.H{
		"Object":  object,
		"Form":    form,
		"Options": opts,
		"Errors":  errs,
	})
}

func carInput(c *gin.Context) service.CarInput {
	in := service.CarInput{
		Model:          c.PostForm("model"),
		ManufacturerID: parseID(c.PostForm("manufacturer")),
	}
	for _, raw := range c.PostFormArray("drivers") {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			id = -1
		}
		in.DriverIDs = append(in.DriverIDs, id)
	}
	return in
}

func (s *Server) carCreatePage(c *gin.Context) {
	s.renderCarForm(c, nil, service.CarInput{}, nil)
}

func (s *Server) carCreate(c *gin.Context) {
	in := carInput(c)
	if _, err := s.svc.Car().Create(c.Request.Context(), in); err != nil {
		if errs, ok := formErrors(err); ok {
			s.renderCarForm(c, nil, in, errs)
			return
		}
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, carListPath)
}

func (s *Server) carUpdatePage(c *gin.Context) {
	car, ok := s.loadCar(c)
	if !ok {
		return
	}
	form := service.CarInput{Model: car.Model, ManufacturerID: car.ManufacturerID, DriverIDs: car.DriverIDs}
	s.renderCarForm(c, car, form, nil)
}

func (s *Server) carUpdate(c *gin.Context) {
	car, ok := s.loadCar(c)
	if !ok {
		return
	}
	in := carInput(c)
	if _, err := s.svc.Car().Update(c.Request.Context(), car.ID, in); err != nil {
		if errs, ok := formErrors(err); ok {
			s.renderCarForm(c, car, in, errs)
			return
		}
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, carListPath)
}

func (s *Server) carDeletePage(c *gin.Context) {
	car, ok := s.loadCar(c)
	if !ok {
		return
	}
	s.render(c, http.StatusOK, "confirm_delete", gin.H{
		"Kind":   "car",
		"Object": car.String(),
		"Cancel": "/cars/" + strconv.FormatInt(car.ID, 10),
	})
}

func (s *Server) carDelete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		s.notFound(c)
		return
	}
	if err := s.svc.Car().Delete(c.Request.Context(), id); err != nil {
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, carListPath)
}

func (s *Server) carToggleAssign(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		s.notFound(c)
		return
	}
	if _, err := s.svc.Car().ToggleAssign(c.Request.Context(), id, currentDriver(c).ID); err != nil {
		s.fail(c, err)
		return
	}
	c.Redirect(http.StatusFound, "/cars/"+strconv.FormatInt(id, 10))
}
