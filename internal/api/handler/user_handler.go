package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/salon/booking-api/internal/core/domain"
	"github.com/salon/booking-api/internal/core/ports"
)

// UserHandler serves /users.
type UserHandler struct {
	service ports.UserService
}

func NewUserHandler(service ports.UserService) *UserHandler {
	return &UserHandler{service: service}
}

// Get returns one profile (?id=) or the account list, optionally by role.
//
// @Summary      Get or list users
// @Tags         users
// @Produce      json
// @Param        X-Session-Token  header    string  true   "Session token"
// @Param        id               query     int     false  "User id"
// @Param        role             query     string  false  "client, employee or admin"
// @Success      200              {object}  userListResponse
// @Failure      401              {object}  map[string]string
// @Failure      403              {object}  map[string]string
// @Router       /users [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := queryID(c, "id")
	if err != nil {
		return err
	}
	ctx := c.Request().Context()

	if id != nil {
		u, err := h.service.Get(ctx, caller(c), *id)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, userResponse{User: u})
	}

	var filter ports.UserFilter
	if raw := c.QueryParam("role"); raw != "" {
		if filter.Role, err = domain.ParseRole(raw); err != nil {
			return err
		}
	}
	users, err := h.service.List(ctx, caller(c), filter)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userListResponse{Users: nonNil(users)})
}

// Create adds an account with a one-time password.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        X-Session-Token  header    string             true  "Session token (admin)"
// @Param        body             body      createUserRequest  true  "Account"
// @Success      200              {object}  userCreatedResponse
// @Failure      400              {object}  map[string]string
// @Failure      403              {object}  map[string]string
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	created, err := h.service.Create(c.Request().Context(), caller(c), ports.CreateUserInput{
		Email:    req.Email,
		FullName: req.FullName,
		Phone:    req.Phone,
		Role:     domain.Role(req.Role),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userCreatedResponse{User: created.User, TemporaryPassword: created.TemporaryPassword})
}

// Update edits a profile; only the given fields change.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        X-Session-Token  header    string             true  "Session token"
// @Param        body             body      updateUserRequest  true  "Changes"
// @Success      200              {object}  userResponse
// @Failure      400              {object}  map[string]string
// @Failure      403              {object}  map[string]string
// @Router       /users [put]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	changes := ports.UserChanges{FullName: req.FullName, Phone: req.Phone, Email: req.Email}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		changes.Role = &role
	}

	u, err := h.service.Update(c.Request().Context(), caller(c), req.ID, changes)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: u})
}

// Delete deactivates an account and ends its sessions.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Param        X-Session-Token  header    string  true  "Session token (admin)"
// @Param        id               query     int     true  "User id"
// @Success      200              {object}  statusResponse
// @Failure      400              {object}  map[string]string
// @Failure      403              {object}  map[string]string
// @Failure      404              {object}  map[string]string
// @Router       /users [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := requireQueryID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), caller(c), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, statusResponse{Status: "deleted"})
}
