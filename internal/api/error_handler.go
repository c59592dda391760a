package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/salon/booking-api/internal/core/domain"
)

// Error kinds reported in the "code" field of the envelope.
const (
	KindDuplicateEmail     = "DuplicateEmail"
	KindInvalidCredentials = "InvalidCredentials"
	KindUnauthenticated    = "Unauthenticated"
	KindSessionExpired     = "SessionExpired"
	KindForbidden          = "Forbidden"
	KindNotFound           = "NotFound"
	KindMethodNotAllowed   = "MethodNotAllowed"
	KindConflict           = "Conflict"
	KindValidation         = "Validation"
	KindInternal           = "InternalError"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that maps domain
// errors to status codes, logs unexpected errors without leaking them and
// renders {"error": "<message>", "code": "<kind>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, kind, msg := resolveError(err)
		if status == http.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("unhandled error")
		}
		_ = c.JSON(status, errorResponse{Error: msg, Code: kind})
	}
}

func resolveError(err error) (int, string, string) {
	switch {
	case errors.Is(err, domain.ErrDuplicateEmail):
		return http.StatusBadRequest, KindDuplicateEmail, domain.ErrDuplicateEmail.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, KindInvalidCredentials, domain.ErrInvalidCredentials.Error()
	case errors.Is(err, domain.ErrUnauthenticated):
		return http.StatusUnauthorized, KindUnauthenticated, domain.ErrUnauthenticated.Error()
	case errors.Is(err, domain.ErrSessionExpired):
		return http.StatusUnauthorized, KindSessionExpired, domain.ErrSessionExpired.Error()
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, KindForbidden, domain.ErrForbidden.Error()
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, KindNotFound, domain.ErrNotFound.Error()
	case errors.Is(err, domain.ErrInvalidTransition):
		return http.StatusConflict, KindConflict, err.Error()
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, KindConflict, domain.ErrConflict.Error()
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, KindValidation, err.Error()
	}

	// Echo's own errors (router 404/405, oversized bodies, ...).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, kindForStatus(he.Code), fmt.Sprintf("%v", he.Message)
	}

	return http.StatusInternalServerError, KindInternal, "internal server error"
}

func kindForStatus(status int) string {
	switch status {
	case http.StatusNotFound:
		return KindNotFound
	case http.StatusMethodNotAllowed:
		return KindMethodNotAllowed
	case http.StatusUnauthorized:
		return KindUnauthenticated
	case http.StatusForbidden:
		return KindForbidden
	case http.StatusConflict:
		return KindConflict
	}
	if status >= http.StatusInternalServerError {
		return KindInternal
	}
	return KindValidation
}
