package middleware

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/salon/booking-api/internal/core/domain"
	"github.com/salon/booking-api/internal/core/ports"
)

// HeaderSessionToken carries the opaque session token. Header lookup is
// case-insensitive.
const HeaderSessionToken = "X-Session-Token"

const (
	ctxKeyIdentity = "identity"
	ctxKeyToken    = "session_token"
)

// Session resolves the optional session token into the caller's identity.
// Missing, unknown or expired tokens leave the request anonymous; the
// resource services decide whether that is enough.
func Session(resolver ports.IdentityResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get(HeaderSessionToken)
			if token == "" {
				return next(c)
			}
			c.Set(ctxKeyToken, token)

			id, err := resolver.Identify(c.Request().Context(), token)
			switch {
			case err == nil:
				c.Set(ctxKeyIdentity, id)
			case errors.Is(err, domain.ErrSessionExpired), errors.Is(err, domain.ErrUnauthenticated):
			default:
				return err
			}
			return next(c)
		}
	}
}

// Identity returns the caller resolved by Session, or nil when anonymous.
func Identity(c echo.Context) *domain.Identity {
	id, _ := c.Get(ctxKeyIdentity).(*domain.Identity)
	return id
}

// Token returns the raw session token sent with the request, if any.
func Token(c echo.Context) string {
	if t, ok := c.Get(ctxKeyToken).(string); ok {
		return t
	}
	return c.Request().Header.Get(HeaderSessionToken)
}
