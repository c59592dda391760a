package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/salon/booking-api/internal/core/domain"
	"github.com/salon/booking-api/internal/core/policy"
	"github.com/salon/booking-api/internal/core/ports"
)

type CatalogService struct {
	repo ports.CatalogRepository
	log  zerolog.Logger
}

func NewCatalogService(repo ports.CatalogRepository, log zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, log: log}
}

func (s *CatalogService) List(ctx context.Context) ([]*domain.Service, error) {
	items, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	return items, nil
}

func (s *CatalogService) Categories(ctx context.Context) ([]string, error) {
	cats, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return cats, nil
}

func (s *CatalogService) Create(ctx context.Context, caller *domain.Identity, in ports.ServiceInput) (*domain.Service, error) {
	if err := authorize(caller, policy.ServiceManage, policy.Target{}); err != nil {
		return nil, err
	}
	if err := validateServiceInput(in); err != nil {
		return nil, err
	}

	svc := serviceFromInput(in)
	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}

	s.log.Info().Int64("service_id", svc.ID).Str("name", svc.Name).Msg("service created")
	return svc, nil
}

func (s *CatalogService) Update(ctx context.Context, caller *domain.Identity, id int64, in ports.ServiceInput) error {
	if err := authorize(caller, policy.ServiceManage, policy.Target{}); err != nil {
		return err
	}
	if err := validateServiceInput(in); err != nil {
		return err
	}

	svc := serviceFromInput(in)
	svc.ID = id
	if err := s.repo.Update(ctx, svc); err != nil {
		return fmt.Errorf("update service: %w", err)
	}

	s.log.Info().Int64("service_id", id).Msg("service updated")
	return nil
}

// Delete removes a catalog entry. Existing bookings keep the service name as
// free text, so nothing else changes.
func (s *CatalogService) Delete(ctx context.Context, caller *domain.Identity, id int64) error {
	if err := authorize(caller, policy.ServiceManage, policy.Target{}); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete service: %w", err)
	}

	s.log.Info().Int64("service_id", id).Msg("service deleted")
	return nil
}

func validateServiceInput(in ports.ServiceInput) error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	case in.Duration <= 0:
		return fmt.Errorf("%w: duration must be positive", domain.ErrValidation)
	case in.Price.IsNegative():
		return fmt.Errorf("%w: price must not be negative", domain.ErrValidation)
	}
	return nil
}

func serviceFromInput(in ports.ServiceInput) *domain.Service {
	return &domain.Service{
		Name:        in.Name,
		Description: in.Description,
		Duration:    in.Duration,
		Price:       in.Price,
		Category:    in.Category,
		IsActive:    in.IsActive,
	}
}
