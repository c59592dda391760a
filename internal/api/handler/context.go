package handler

import (
	"fmt"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/salon/booking-api/internal/api/middleware"
	"github.com/salon/booking-api/internal/core/domain"
)

// caller returns the identity resolved by the session middleware; nil means
// an anonymous request.
func caller(c echo.Context) *domain.Identity {
	return middleware.Identity(c)
}

// queryID parses an optional positive integer query parameter.
func queryID(c echo.Context, name string) (*int64, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%w: %s must be a positive integer", domain.ErrValidation, name)
	}
	return &id, nil
}

// requireQueryID is queryID for parameters that must be present.
func requireQueryID(c echo.Context, name string) (int64, error) {
	id, err := queryID(c, name)
	if err != nil {
		return 0, err
	}
	if id == nil {
		return 0, fmt.Errorf("%w: %s is required", domain.ErrValidation, name)
	}
	return *id, nil
}

// bindAndValidate decodes the JSON body into req and runs the registered
// validator over it.
func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return fmt.Errorf("%w: invalid payload", domain.ErrValidation)
	}
	return c.Validate(req)
}

func validationError(msg string) error {
	return fmt.Errorf("%w: %s", domain.ErrValidation, msg)
}

// nonNil keeps empty lists encoded as [] instead of null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
