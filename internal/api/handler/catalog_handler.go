package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/salon/booking-api/internal/core/ports"
)

// CatalogHandler serves /services, the salon price list.
type CatalogHandler struct {
	service ports.CatalogService
}

func NewCatalogHandler(service ports.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: service}
}

// Get lists active services (?action=list, the default) or their
// categories (?action=categories).
//
// @Summary      List services or categories
// @Tags         services
// @Produce      json
// @Param        action  query     string  false  "list or categories"
// @Success      200     {object}  serviceListResponse
// @Failure      400     {object}  map[string]string
// @Router       /services [get]
func (h *CatalogHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	switch c.QueryParam("action") {
	case "", "list":
		services, err := h.service.List(ctx)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, serviceListResponse{Services: nonNil(services)})
	case "categories":
		cats, err := h.service.Categories(ctx)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, categoryListResponse{Categories: nonNil(cats)})
	default:
		return validationError("action must be one of: list categories")
	}
}

// Create adds a catalog entry.
//
// @Summary      Create a service
// @Tags         services
// @Accept       json
// @Produce      json
// @Param        X-Session-Token  header    string          true  "Session token (admin)"
// @Param        body             body      serviceRequest  true  "Service"
// @Success      200              {object}  statusResponse
// @Failure      400              {object}  map[string]string
// @Failure      403              {object}  map[string]string
// @Router       /services [post]
func (h *CatalogHandler) Create(c echo.Context) error {
	var req serviceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	s, err := h.service.Create(c.Request().Context(), caller(c), serviceInput(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{ID: s.ID, Status: "created"})
}

// Update replaces a catalog entry.
//
// @Summary      Update a service
// @Tags         services
// @Accept       json
// @Produce      json
// @Param        X-Session-Token  header    string          true  "Session token (admin)"
// @Param        body             body      serviceRequest  true  "Service with id"
// @Success      200              {object}  statusResponse
// @Failure      403              {object}  map[string]string
// @Failure      404              {object}  map[string]string
// @Router       /services [put]
func (h *CatalogHandler) Update(c echo.Context) error {
	var req serviceRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if req.ID <= 0 {
		return validationError("id is required")
	}

	if err := h.service.Update(c.Request().Context(), caller(c), req.ID, serviceInput(req)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "updated"})
}

// Delete removes a catalog entry.
//
// @Summary      Delete a service
// @Tags         services
// @Produce      json
// @Param        X-Session-Token  header    string  true  "Session token (admin)"
// @Param        id               query     int     true  "Service id"
// @Success      200              {object}  statusResponse
// @Failure      403              {object}  map[string]string
// @Failure      404              {object}  map[string]string
// @Router       /services [delete]
func (h *CatalogHandler) Delete(c echo.Context) error {
	id, err := requireQueryID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), caller(c), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "deleted"})
}

func serviceInput(req serviceRequest) ports.ServiceInput {
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	return ports.ServiceInput{
		Name:        req.Name,
		Description: req.Description,
		Duration:    req.Duration,
		Price:       req.Price,
		Category:    req.Category,
		IsActive:    active,
	}
}
