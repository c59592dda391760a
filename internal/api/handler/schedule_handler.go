package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/salon/booking-api/internal/core/domain"
	"github.com/salon/booking-api/internal/core/ports"
)

// ScheduleHandler serves /schedule.
type ScheduleHandler struct {
	service ports.ScheduleService
}

func NewScheduleHandler(service ports.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}

// List returns active working hours, optionally for one employee.
//
// @Summary      List schedule
// @Tags         schedule
// @Produce      json
// @Param        employee_id  query     int  false  "Employee id"
// @Success      200          {object}  scheduleListResponse
// @Router       /schedule [get]
func (h *ScheduleHandler) List(c echo.Context) error {
	employeeID, err := queryID(c, "employee_id")
	if err != nil {
		return err
	}
	entries, err := h.service.List(c.Request().Context(), employeeID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, scheduleListResponse{Schedule: nonNil(entries)})
}

// Upsert sets the hours of one weekday.
//
// @Summary      Set working hours
// @Tags         schedule
// @Accept       json
// @Produce      json
// @Param        X-Session-Token  header    string           true  "Session token"
// @Param        body             body      scheduleRequest  true  "Hours"
// @Success      200              {object}  statusResponse
// @Failure      400              {object}  map[string]string
// @Failure      403              {object}  map[string]string
// @Router       /schedule [post]
func (h *ScheduleHandler) Upsert(c echo.Context) error {
	var req scheduleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	entry, err := h.service.Upsert(c.Request().Context(), caller(c), domain.ScheduleEntry{
		EmployeeID: req.EmployeeID,
		DayOfWeek:  *req.DayOfWeek,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{ID: entry.ID, Status: "created"})
}
