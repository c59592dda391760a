package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/salon/booking-api/internal/core/domain"
	"github.com/salon/booking-api/internal/core/ports"
)

// BookingHandler serves /bookings.
type BookingHandler struct {
	service ports.BookingService
}

func NewBookingHandler(service ports.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// Get returns one booking when ?id= is given, otherwise the caller's list.
//
// @Summary      Get or list bookings
// @Description  Clients see their own bookings, employees the ones assigned to them, admins all (optionally filtered).
// @Tags         bookings
// @Produce      json
// @Param        X-Session-Token  header    string  true   "Session token"
// @Param        id               query     int     false  "Booking id"
// @Param        user_id          query     int     false  "Admin filter: owner"
// @Param        employee_id      query     int     false  "Admin filter: assigned employee"
// @Param        status           query     string  false  "Filter by status"
// @Success      200              {object}  bookingListResponse
// @Failure      401              {object}  map[string]string
// @Failure      403              {object}  map[string]string
// @Failure      404              {object}  map[string]string
// @Router       /bookings [get]
func (h *BookingHandler) Get(c echo.Context) error {
	id, err := queryID(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	if id != nil {
		b, err := h.service.Get(ctx, caller(c), *id)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, bookingResponse{Booking: b})
	}

	in := ports.ListBookingsInput{}
	if in.UserID, err = queryID(c, "user_id"); err != nil {
		return err
	}
	if in.EmployeeID, err = queryID(c, "employee_id"); err != nil {
		return err
	}
	if raw := c.QueryParam("status"); raw != "" {
		st, ok := domain.ParseBookingStatus(raw)
		if !ok {
			return validationError("status must be one of: pending confirmed completed cancelled")
		}
		in.Status = st
	}

	bookings, err := h.service.List(ctx, caller(c), in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookingListResponse{Bookings: nonNil(bookings)})
}

// Create records a new booking; anonymous visitors may book too.
//
// @Summary      Create a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        X-Session-Token  header    string                false  "Session token"
// @Param        body             body      createBookingRequest  true   "Booking"
// @Success      200              {object}  bookingCreatedResponse
// @Failure      400              {object}  map[string]string
// @Router       /bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	var req createBookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	b, err := h.service.Create(c.Request().Context(), caller(c), ports.CreateBookingInput{
		ClientName:  req.ClientName,
		Phone:       req.Phone,
		Service:     req.Service,
		Master:      req.Master,
		EmployeeID:  req.EmployeeID,
		BookingDate: req.BookingDate,
		BookingTime: req.BookingTime,
		Notes:       req.Notes,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, bookingCreatedResponse{Success: true, BookingID: b.ID})
}

// Update changes status, date, time or notes.
//
// @Summary      Update a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Param        X-Session-Token  header    string                true  "Session token"
// @Param        body             body      updateBookingRequest  true  "Changes"
// @Success      200              {object}  successResponse
// @Failure      400              {object}  map[string]string
// @Failure      401              {object}  map[string]string
// @Failure      403              {object}  map[string]string
// @Failure      409              {object}  map[string]string
// @Router       /bookings [put]
func (h *BookingHandler) Update(c echo.Context) error {
	var req updateBookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	changes := domain.BookingChanges{
		BookingDate: req.BookingDate,
		BookingTime: req.BookingTime,
		Notes:       req.Notes,
	}
	if req.Status != nil {
		st, _ := domain.ParseBookingStatus(*req.Status)
		changes.Status = &st
	}
	if changes.Status == nil && changes.BookingDate == nil && changes.BookingTime == nil && changes.Notes == nil {
		return validationError("nothing to update")
	}

	if err := h.service.Update(c.Request().Context(), caller(c), req.ID, changes); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// Delete cancels a booking; the row is kept.
//
// @Summary      Cancel a booking
// @Tags         bookings
// @Produce      json
// @Param        X-Session-Token  header    string  true  "Session token"
// @Param        id               query     int     true  "Booking id"
// @Success      200              {object}  successResponse
// @Failure      401              {object}  map[string]string
// @Failure      403              {object}  map[string]string
// @Failure      409              {object}  map[string]string
// @Router       /bookings [delete]
func (h *BookingHandler) Delete(c echo.Context) error {
	id, err := requireQueryID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Cancel(c.Request().Context(), caller(c), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}
