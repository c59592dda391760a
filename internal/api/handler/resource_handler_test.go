package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/salon/booking-api/internal/api/middleware"
	"github.com/salon/booking-api/internal/core/domain"
	"github.com/salon/booking-api/internal/core/ports"
)

type stubReviewService struct {
	created  ports.CreateReviewInput
	moderate func(id int64, approved bool) error
}

func (s *stubReviewService) List(context.Context, *domain.Identity) ([]*domain.Review, error) {
	return []*domain.Review{{ID: 1, Author: "Ann", Rating: 5, Approved: true}}, nil
}

func (s *stubReviewService) Create(_ context.Context, _ *domain.Identity, in ports.CreateReviewInput) (*domain.Review, error) {
	s.created = in
	return &domain.Review{ID: 11}, nil
}

func (s *stubReviewService) Moderate(_ context.Context, _ *domain.Identity, id int64, approved bool) error {
	return s.moderate(id, approved)
}

func (s *stubReviewService) Withdraw(context.Context, *domain.Identity, int64) error { return nil }

func TestReviewHandler_Create(t *testing.T) {
	stub := &stubReviewService{}
	h := NewReviewHandler(stub)

	req := newJSONRequest(http.MethodPost, "/reviews", `{"author":"Ann","rating":4,"comment":"nice"}`)
	rec, err := serve(t, newTestEcho(), nil, h.Create, req)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if stub.created.Rating != 4 || stub.created.Author != "Ann" {
		t.Fatalf("unexpected input: %+v", stub.created)
	}
	if resp := decodeBody(t, rec); resp["review_id"] != float64(11) {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestReviewHandler_Create_RatingOutOfRange(t *testing.T) {
	h := NewReviewHandler(&stubReviewService{})

	for _, body := range []string{`{"author":"Ann","rating":0}`, `{"author":"Ann","rating":6}`} {
		req := newJSONRequest(http.MethodPost, "/reviews", body)
		if _, err := serve(t, newTestEcho(), nil, h.Create, req); !errors.Is(err, domain.ErrValidation) {
			t.Fatalf("body %s: expected ErrValidation, got %v", body, err)
		}
	}
}

func TestReviewHandler_Moderate_RequiresApprovedFlag(t *testing.T) {
	var gotApproved *bool
	stub := &stubReviewService{moderate: func(_ int64, approved bool) error {
		gotApproved = &approved
		return nil
	}}
	h := NewReviewHandler(stub)

	req := newJSONRequest(http.MethodPut, "/reviews", `{"id":2}`)
	if _, err := serve(t, newTestEcho(), testResolver, h.Moderate, req); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}

	req = newJSONRequest(http.MethodPut, "/reviews", `{"id":2,"approved":false}`)
	req.Header.Set(middleware.HeaderSessionToken, "admin-tok")
	if _, err := serve(t, newTestEcho(), testResolver, h.Moderate, req); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotApproved == nil || *gotApproved {
		t.Fatalf("expected approved=false to reach the service")
	}
}

type stubCatalogService struct {
	input ports.ServiceInput
}

func (s *stubCatalogService) List(context.Context) ([]*domain.Service, error) { return nil, nil }

func (s *stubCatalogService) Categories(context.Context) ([]string, error) {
	return []string{"hair", "nails"}, nil
}

func (s *stubCatalogService) Create(_ context.Context, _ *domain.Identity, in ports.ServiceInput) (*domain.Service, error) {
	s.input = in
	return &domain.Service{ID: 6}, nil
}

func (s *stubCatalogService) Update(context.Context, *domain.Identity, int64, ports.ServiceInput) error {
	return domain.ErrNotFound
}

func (s *stubCatalogService) Delete(context.Context, *domain.Identity, int64) error { return nil }

func TestCatalogHandler_Create_KeepsPricePrecision(t *testing.T) {
	stub := &stubCatalogService{}
	h := NewCatalogHandler(stub)

	req := newJSONRequest(http.MethodPost, "/services", `{"name":"Cut","duration":45,"price":"1500.10"}`)
	req.Header.Set(middleware.HeaderSessionToken, "admin-tok")
	rec, err := serve(t, newTestEcho(), testResolver, h.Create, req)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if stub.input.Price.String() != "1500.1" || !stub.input.IsActive {
		t.Fatalf("unexpected input: price=%s active=%v", stub.input.Price, stub.input.IsActive)
	}
	resp := decodeBody(t, rec)
	if resp["id"] != float64(6) || resp["status"] != "created" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestCatalogHandler_Get(t *testing.T) {
	h := NewCatalogHandler(&stubCatalogService{})

	rec, err := serve(t, newTestEcho(), nil, h.Get, httptest.NewRequest(http.MethodGet, "/services", nil))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if got := rec.Body.String(); got != "{\"services\":[]}\n" {
		t.Fatalf("unexpected list body: %s", got)
	}

	rec, err = serve(t, newTestEcho(), nil, h.Get, httptest.NewRequest(http.MethodGet, "/services?action=categories", nil))
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	cats := decodeBody(t, rec)["categories"].([]any)
	if len(cats) != 2 {
		t.Fatalf("unexpected categories: %v", cats)
	}

	_, err = serve(t, newTestEcho(), nil, h.Get, httptest.NewRequest(http.MethodGet, "/services?action=export", nil))
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation for unknown action, got %v", err)
	}
}

type stubUserService struct {
	ports.UserService
	deleteFn func(caller *domain.Identity, id int64) error
}

func (s *stubUserService) Delete(_ context.Context, caller *domain.Identity, id int64) error {
	return s.deleteFn(caller, id)
}

func TestUserHandler_Delete(t *testing.T) {
	var gotID int64
	stub := &stubUserService{deleteFn: func(caller *domain.Identity, id int64) error {
		if caller == nil || caller.Role != domain.RoleAdmin {
			t.Fatalf("expected admin caller, got %+v", caller)
		}
		gotID = id
		return nil
	}}
	h := NewUserHandler(stub)

	req := httptest.NewRequest(http.MethodDelete, "/users?id=12", nil)
	req.Header.Set(middleware.HeaderSessionToken, "admin-tok")
	rec, err := serve(t, newTestEcho(), testResolver, h.Delete, req)
	if err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotID != 12 {
		t.Fatalf("expected id 12, got %d", gotID)
	}
	if resp := decodeBody(t, rec); resp["status"] != "deleted" {
		t.Fatalf("unexpected payload: %+v", resp)
	}

	req = httptest.NewRequest(http.MethodDelete, "/users", nil)
	if _, err := serve(t, newTestEcho(), testResolver, h.Delete, req); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation without id, got %v", err)
	}
}

func TestUserHandler_Delete_PropagatesDenial(t *testing.T) {
	h := NewUserHandler(&stubUserService{deleteFn: func(*domain.Identity, int64) error {
		return domain.ErrForbidden
	}})

	req := httptest.NewRequest(http.MethodDelete, "/users?id=12", nil)
	req.Header.Set(middleware.HeaderSessionToken, "client-tok")
	if _, err := serve(t, newTestEcho(), testResolver, h.Delete, req); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}
