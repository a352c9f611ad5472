package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/fitpass/gym-system/internal/core/domain"
	"github.com/fitpass/gym-system/internal/core/ports"
)

// ClassHandler covers class and discipline administration.
type ClassHandler struct {
	service ports.ClassService
}

func NewClassHandler(service ports.ClassService) *ClassHandler {
	return &ClassHandler{service: service}
}

type createClassRequest struct {
	DisciplineID string    `json:"discipline_id" validate:"required"`
	Name         string    `json:"name" validate:"required"`
	StartTime    time.Time `json:"start_time" validate:"required"`
	EndTime      time.Time `json:"end_time" validate:"required"`
	Capacity     int       `json:"capacity" validate:"required,gt=0"`
}

type classResponse struct {
	ID           string    `json:"id"`
	DisciplineID string    `json:"discipline_id"`
	Name         string    `json:"name"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Capacity     int       `json:"capacity"`
	Booked       int       `json:"booked"`
}

type classListResponse struct {
	Classes []classResponse `json:"classes"`
}

// Create schedules a new class.
//
// @Summary      Schedule a new class
// @Tags         classes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createClassRequest  true  "Class details"
// @Success      201   {object}  classResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/classes [post]
func (h *ClassHandler) Create(c echo.Context) error {
	var req createClassRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}

	class, err := h.service.CreateClass(c.Request().Context(), ports.CreateClassInput{
		DisciplineID: req.DisciplineID,
		Name:         req.Name,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		Capacity:     req.Capacity,
		Caller:       caller,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, toClassResponse(class))
}

// List returns scheduled classes, optionally filtered by discipline.
//
// @Summary      List classes
// @Tags         classes
// @Produce      json
// @Security     BearerAuth
// @Param        discipline_id  query     string  false  "Filter by discipline"
// @Success      200            {object}  classListResponse
// @Router       /v1/classes [get]
func (h *ClassHandler) List(c echo.Context) error {
	classes, err := h.service.ListClasses(c.Request().Context(), c.QueryParam("discipline_id"))
	if err != nil {
		return err
	}

	items := make([]classResponse, 0, len(classes))
	for _, cl := range classes {
		items = append(items, toClassResponse(cl))
	}
	return c.JSON(http.StatusOK, classListResponse{Classes: items})
}

// Delete removes a class. Refused while the class holds active reservations.
//
// @Summary      Delete a class
// @Tags         classes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Class ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /v1/classes/{id} [delete]
func (h *ClassHandler) Delete(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteClass(c.Request().Context(), c.Param("id"), caller); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeleteDiscipline removes a discipline. Refused while active memberships or
// future classes reference it.
//
// @Summary      Delete a discipline
// @Tags         classes
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Discipline ID"
// @Success      204
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /v1/disciplines/{id} [delete]
func (h *ClassHandler) DeleteDiscipline(c echo.Context) error {
	caller, err := ctxCaller(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteDiscipline(c.Request().Context(), c.Param("id"), caller); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func toClassResponse(cl *domain.Class) classResponse {
	return classResponse{
		ID:           cl.ID,
		DisciplineID: cl.DisciplineID,
		Name:         cl.Name,
		StartTime:    cl.StartTime,
		EndTime:      cl.EndTime,
		Capacity:     cl.Capacity,
		Booked:       cl.Booked,
	}
}
