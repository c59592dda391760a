package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/salon/booking-api/internal/core/domain"
)

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"duplicate email", domain.ErrDuplicateEmail, http.StatusBadRequest, KindDuplicateEmail, ""},
		{"invalid credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, KindInvalidCredentials, ""},
		{"unauthenticated", domain.ErrUnauthenticated, http.StatusUnauthorized, KindUnauthenticated, ""},
		{"session expired", domain.ErrSessionExpired, http.StatusUnauthorized, KindSessionExpired, ""},
		{"wrapped forbidden", fmt.Errorf("%w: not_owner", domain.ErrForbidden), http.StatusForbidden, KindForbidden, "access forbidden"},
		{"not found", fmt.Errorf("find booking: %w", domain.ErrNotFound), http.StatusNotFound, KindNotFound, "not found"},
		{"transition", fmt.Errorf("%w: completed to pending", domain.ErrInvalidTransition), http.StatusConflict, KindConflict, "invalid status transition: completed to pending"},
		{"lost race", fmt.Errorf("update booking: %w", domain.ErrConflict), http.StatusConflict, KindConflict, "conflicting update"},
		{"validation", fmt.Errorf("%w: email is required", domain.ErrValidation), http.StatusBadRequest, KindValidation, "validation failed: email is required"},
		{"method not allowed", echo.ErrMethodNotAllowed, http.StatusMethodNotAllowed, KindMethodNotAllowed, ""},
		{"route not found", echo.ErrNotFound, http.StatusNotFound, KindNotFound, ""},
		{"internal", errors.New("pq: connection reset"), http.StatusInternalServerError, KindInternal, "internal server error"},
	}

	h := NewHTTPErrorHandler(zerolog.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			h(tt.err, c)

			if rec.Code != tt.wantStatus {
				t.Fatalf("expected %d, got %d", tt.wantStatus, rec.Code)
			}
			var body errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body.Code != tt.wantCode {
				t.Fatalf("expected code %s, got %s", tt.wantCode, body.Code)
			}
			if tt.wantMsg != "" && body.Error != tt.wantMsg {
				t.Fatalf("expected message %q, got %q", tt.wantMsg, body.Error)
			}
		})
	}
}

func TestHTTPErrorHandler_InternalDoesNotLeak(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	NewHTTPErrorHandler(zerolog.Nop())(errors.New("password=hunter2 host=db"), c)

	var body errorResponse
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if body.Error != "internal server error" {
		t.Fatalf("internal detail leaked: %q", body.Error)
	}
}
