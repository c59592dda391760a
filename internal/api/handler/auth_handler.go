package handler

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/salon/booking-api/internal/api/middleware"
	"github.com/salon/booking-api/internal/core/domain"
	"github.com/salon/booking-api/internal/core/ports"
)

const (
	actionRegister = "register"
	actionLogin    = "login"
	actionLogout   = "logout"
)

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Action dispatches POST /auth on the "action" field of the body.
//
// @Summary      Register, log in or log out
// @Description  action=register creates a client account and logs it in; action=login issues a new session; action=logout expires the session from X-Session-Token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        X-Session-Token  header    string           false  "Session token (logout)"
// @Param        body             body      registerRequest  true   "Action payload"
// @Success      200              {object}  loginResponse
// @Failure      400              {object}  map[string]string
// @Failure      401              {object}  map[string]string
// @Failure      405              {object}  map[string]string
// @Router       /auth [post]
func (h *AuthHandler) Action(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return fmt.Errorf("%w: unreadable body", domain.ErrValidation)
	}
	if len(body) == 0 {
		body = []byte("{}")
	}

	var envelope authActionRequest
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("%w: invalid payload", domain.ErrValidation)
	}

	switch envelope.Action {
	case actionRegister:
		return h.register(c, body)
	case actionLogin:
		return h.login(c, body)
	case actionLogout:
		return h.logout(c)
	default:
		return echo.ErrMethodNotAllowed
	}
}

func (h *AuthHandler) register(c echo.Context, body []byte) error {
	var req registerRequest
	if err := decodeAction(c, body, &req); err != nil {
		return err
	}

	res, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, registerResponse{
		Success:      true,
		SessionToken: res.SessionToken,
		UserID:       res.UserID,
	})
}

func (h *AuthHandler) login(c echo.Context, body []byte) error {
	var req loginRequest
	if err := decodeAction(c, body, &req); err != nil {
		return err
	}

	res, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, loginResponse{
		Success:      true,
		SessionToken: res.SessionToken,
		User: userSummary{
			ID:       res.User.ID,
			FullName: res.User.FullName,
			Role:     res.User.Role,
		},
	})
}

func (h *AuthHandler) logout(c echo.Context) error {
	if err := h.authService.Logout(c.Request().Context(), middleware.Token(c)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, successResponse{Success: true})
}

// Me returns the profile behind the session token.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Param        X-Session-Token  header    string  true  "Session token"
// @Success      200              {object}  profileResponse
// @Failure      401              {object}  map[string]string
// @Router       /auth [get]
func (h *AuthHandler) Me(c echo.Context) error {
	id := caller(c)
	if id == nil {
		// The session middleware already tried the token.
		if middleware.Token(c) == "" {
			return domain.ErrUnauthenticated
		}
		return domain.ErrSessionExpired
	}

	user, err := h.authService.Profile(c.Request().Context(), id.UserID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{User: userProfile{
		ID:       user.ID,
		Email:    user.Email,
		FullName: user.FullName,
		Phone:    user.Phone,
		Role:     user.Role,
	}})
}

func decodeAction(c echo.Context, body []byte, req any) error {
	if err := json.Unmarshal(body, req); err != nil {
		return fmt.Errorf("%w: invalid payload", domain.ErrValidation)
	}
	return c.Validate(req)
}
