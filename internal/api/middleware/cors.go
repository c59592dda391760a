package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// CORS stamps Access-Control-Allow-Origin on every response and answers
// pre-flight OPTIONS requests with 200 and an empty body. Register it with
// e.Pre so pre-flights never reach routing.
func CORS() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := c.Response().Header()
			h.Set(echo.HeaderAccessControlAllowOrigin, "*")

			if c.Request().Method != http.MethodOptions {
				return next(c)
			}
			h.Set(echo.HeaderAccessControlAllowMethods, "GET, POST, PUT, DELETE, OPTIONS")
			h.Set(echo.HeaderAccessControlAllowHeaders, "Content-Type, "+HeaderSessionToken)
			h.Set(echo.HeaderAccessControlMaxAge, "86400")
			return c.NoContent(http.StatusOK)
		}
	}
}
