package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/salon/booking-api/internal/api/middleware"
	"github.com/salon/booking-api/internal/core/domain"
	"github.com/salon/booking-api/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*ports.RegisterResult, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.LoginResult, error)
	logoutFn   func(ctx context.Context, token string) error
	resolveFn  func(ctx context.Context, token string) (*domain.User, error)
	profileFn  func(ctx context.Context, userID int64) (*domain.User, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.RegisterResult, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error {
	return s.logoutFn(ctx, token)
}

func (s *stubAuthService) ResolveSession(ctx context.Context, token string) (*domain.User, error) {
	return s.resolveFn(ctx, token)
}

func (s *stubAuthService) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	return s.profileFn(ctx, userID)
}

// stubResolver maps fixed tokens to identities for the session middleware.
type stubResolver map[string]*domain.Identity

func (r stubResolver) Identify(_ context.Context, token string) (*domain.Identity, error) {
	if id, ok := r[token]; ok {
		return id, nil
	}
	return nil, domain.ErrUnauthenticated
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func newJSONRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return req
}

// serve runs h behind the session middleware so caller(c) is populated.
func serve(t *testing.T, e *echo.Echo, resolver stubResolver, h echo.HandlerFunc, req *http.Request) (*httptest.ResponseRecorder, error) {
	t.Helper()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	return rec, middleware.Session(resolver)(h)(c)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (*ports.RegisterResult, error) {
			if in.Email != "a@example.com" || in.Password != "secret" || in.FullName != "Alice" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.RegisterResult{SessionToken: "tok", UserID: 7}, nil
		},
	}
	h := NewAuthHandler(stub)

	req := newJSONRequest(http.MethodPost, "/auth", `{"action":"register","email":"a@example.com","password":"secret","full_name":"Alice"}`)
	rec, err := serve(t, newTestEcho(), nil, h.Action, req)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	resp := decodeBody(t, rec)
	if resp["success"] != true || resp["session_token"] != "tok" || resp["user_id"] != float64(7) {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*ports.RegisterResult, error) {
			t.Fatal("register must not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	req := newJSONRequest(http.MethodPost, "/auth", `{"action":"register","email":"a@example.com"}`)
	_, err := serve(t, newTestEcho(), nil, h.Action, req)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAuthHandler_Register_DuplicateEmail(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*ports.RegisterResult, error) {
			return nil, domain.ErrDuplicateEmail
		},
	}
	h := NewAuthHandler(stub)

	req := newJSONRequest(http.MethodPost, "/auth", `{"action":"register","email":"a@example.com","password":"x","full_name":"A"}`)
	_, err := serve(t, newTestEcho(), nil, h.Action, req)
	if !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (*ports.LoginResult, error) {
			if email != "a@example.com" || password != "secret" {
				t.Fatalf("unexpected credentials: %s %s", email, password)
			}
			return &ports.LoginResult{
				SessionToken: "tok",
				User:         &domain.User{ID: 3, FullName: "Alice", Role: domain.RoleAdmin, PasswordHash: "hash"},
			}, nil
		},
	}
	h := NewAuthHandler(stub)

	req := newJSONRequest(http.MethodPost, "/auth", `{"action":"login","email":"a@example.com","password":"secret"}`)
	rec, err := serve(t, newTestEcho(), nil, h.Action, req)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}

	resp := decodeBody(t, rec)
	user, ok := resp["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response: %+v", resp)
	}
	if user["id"] != float64(3) || user["full_name"] != "Alice" || user["role"] != "admin" {
		t.Fatalf("unexpected user payload: %+v", user)
	}
	if strings.Contains(rec.Body.String(), "hash") {
		t.Fatalf("password hash leaked: %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (*ports.LoginResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	req := newJSONRequest(http.MethodPost, "/auth", `{"action":"login","email":"a@example.com","password":"bad"}`)
	_, err := serve(t, newTestEcho(), nil, h.Action, req)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Logout_UsesHeaderToken(t *testing.T) {
	var got string
	stub := &stubAuthService{
		logoutFn: func(_ context.Context, token string) error {
			got = token
			return nil
		},
	}
	h := NewAuthHandler(stub)

	req := newJSONRequest(http.MethodPost, "/auth", `{"action":"logout"}`)
	req.Header.Set(middleware.HeaderSessionToken, "tok-1")
	rec, err := serve(t, newTestEcho(), stubResolver{}, h.Action, req)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got != "tok-1" {
		t.Fatalf("expected logout of tok-1, got %q", got)
	}
	if resp := decodeBody(t, rec); resp["success"] != true {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestAuthHandler_UnknownAction(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	for _, body := range []string{`{"action":"reset"}`, `{}`, ``} {
		req := newJSONRequest(http.MethodPost, "/auth", body)
		_, err := serve(t, newTestEcho(), nil, h.Action, req)

		var he *echo.HTTPError
		if !errors.As(err, &he) || he.Code != http.StatusMethodNotAllowed {
			t.Fatalf("body %q: expected 405, got %v", body, err)
		}
	}
}

func TestAuthHandler_InvalidJSON(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	req := newJSONRequest(http.MethodPost, "/auth", `{"action":`)
	_, err := serve(t, newTestEcho(), nil, h.Action, req)
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	stub := &stubAuthService{
		resolveFn: func(context.Context, string) (*domain.User, error) {
			t.Fatal("the session must not be resolved a second time")
			return nil, nil
		},
		profileFn: func(_ context.Context, userID int64) (*domain.User, error) {
			if userID != 5 {
				t.Fatalf("unexpected user id %d", userID)
			}
			return &domain.User{ID: 5, Email: "a@example.com", FullName: "Alice", Phone: "1", Role: domain.RoleClient}, nil
		},
	}
	h := NewAuthHandler(stub)
	resolver := stubResolver{"tok": {UserID: 5, Role: domain.RoleClient}}

	req := httptest.NewRequest(http.MethodGet, "/auth", nil)
	req.Header.Set(middleware.HeaderSessionToken, "tok")
	rec, err := serve(t, newTestEcho(), resolver, h.Me, req)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	user := decodeBody(t, rec)["user"].(map[string]any)
	if user["email"] != "a@example.com" || user["role"] != "client" {
		t.Fatalf("unexpected profile: %+v", user)
	}
}

func TestAuthHandler_Me_WithoutSession(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})
	resolver := stubResolver{"tok": {UserID: 5, Role: domain.RoleClient}}

	req := httptest.NewRequest(http.MethodGet, "/auth", nil)
	if _, err := serve(t, newTestEcho(), resolver, h.Me, req); !errors.Is(err, domain.ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated without a token, got %v", err)
	}

	req = httptest.NewRequest(http.MethodGet, "/auth", nil)
	req.Header.Set(middleware.HeaderSessionToken, "stale")
	if _, err := serve(t, newTestEcho(), resolver, h.Me, req); !errors.Is(err, domain.ErrSessionExpired) {
		t.Fatalf("expected ErrSessionExpired for an unresolved token, got %v", err)
	}
}

func TestAuthHandler_Register_PasswordTooLong(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*ports.RegisterResult, error) {
			t.Fatal("register must not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub)

	body := `{"action":"register","email":"a@example.com","full_name":"A","password":"` + strings.Repeat("p", 73) + `"}`
	_, err := serve(t, newTestEcho(), nil, h.Action, newJSONRequest(http.MethodPost, "/auth", body))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
