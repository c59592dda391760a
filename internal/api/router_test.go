package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/salon/booking-api/internal/api/handler"
	"github.com/salon/booking-api/internal/api/middleware"
	"github.com/salon/booking-api/internal/core/domain"
	"github.com/salon/booking-api/internal/core/ports"
)

// stubAuth resolves exactly one token; the auth actions are never reached
// by the routes exercised here.
type stubAuth struct {
	ports.AuthService
}

func (stubAuth) Identify(_ context.Context, token string) (*domain.Identity, error) {
	if token == "client-tok" {
		return &domain.Identity{UserID: 1, Role: domain.RoleClient}, nil
	}
	return nil, domain.ErrUnauthenticated
}

// The Prometheus middleware registers its collectors globally, so the
// router is built once and shared by the subtests.
func TestRouter(t *testing.T) {
	e := NewRouter(Dependencies{
		Auth:   stubAuth{},
		Checks: map[string]handler.Check{"postgres": func(context.Context) error { return nil }},
		Log:    zerolog.Nop(),
	})

	do := func(method, target, body, token string) *httptest.ResponseRecorder {
		var req *http.Request
		if body != "" {
			req = httptest.NewRequest(method, target, strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
		} else {
			req = httptest.NewRequest(method, target, nil)
		}
		if token != "" {
			req.Header.Set(middleware.HeaderSessionToken, token)
		}
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	t.Run("preflight", func(t *testing.T) {
		rec := do(http.MethodOptions, "/bookings", "", "")
		if rec.Code != http.StatusOK || rec.Body.Len() != 0 {
			t.Fatalf("expected empty 200, got %d %q", rec.Code, rec.Body.String())
		}
		if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
			t.Fatalf("missing CORS header: %v", rec.Header())
		}
	})

	t.Run("unsupported method", func(t *testing.T) {
		rec := do(http.MethodPatch, "/bookings", "", "")
		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("expected 405, got %d", rec.Code)
		}
		var body errorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if body.Code != KindMethodNotAllowed {
			t.Fatalf("unexpected envelope: %+v", body)
		}
		if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
			t.Fatalf("error responses must carry CORS headers")
		}
	})

	t.Run("unknown auth action", func(t *testing.T) {
		rec := do(http.MethodPost, "/auth", `{"action":"reset"}`, "")
		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("expected 405, got %d", rec.Code)
		}
	})

	t.Run("health", func(t *testing.T) {
		if rec := do(http.MethodGet, "/health", "", ""); rec.Code != http.StatusOK {
			t.Fatalf("liveness: expected 200, got %d", rec.Code)
		}
		if rec := do(http.MethodGet, "/health/ready", "", ""); rec.Code != http.StatusOK {
			t.Fatalf("readiness: expected 200, got %d", rec.Code)
		}
	})

	t.Run("metrics", func(t *testing.T) {
		rec := do(http.MethodGet, "/metrics", "", "")
		if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "salon_requests_total") {
			t.Fatalf("expected request counters, got %d", rec.Code)
		}
	})

	t.Run("docs require admin", func(t *testing.T) {
		if rec := do(http.MethodGet, "/swagger/index.html", "", ""); rec.Code != http.StatusUnauthorized {
			t.Fatalf("anonymous: expected 401, got %d", rec.Code)
		}
		if rec := do(http.MethodGet, "/swagger/index.html", "", "client-tok"); rec.Code != http.StatusForbidden {
			t.Fatalf("client: expected 403, got %d", rec.Code)
		}
	})
}
