package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/salon/booking-api/internal/core/domain"
	"github.com/salon/booking-api/internal/core/policy"
	"github.com/salon/booking-api/internal/core/ports"
)

type ScheduleService struct {
	repo ports.ScheduleRepository
	log  zerolog.Logger
}

func NewScheduleService(repo ports.ScheduleRepository, log zerolog.Logger) *ScheduleService {
	return &ScheduleService{repo: repo, log: log}
}

// List returns active schedule entries, optionally for one employee.
func (s *ScheduleService) List(ctx context.Context, employeeID *int64) ([]*domain.ScheduleEntry, error) {
	entries, err := s.repo.ListActive(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("list schedule: %w", err)
	}
	return entries, nil
}

// Upsert sets an employee's hours for one weekday. Employees may only edit
// their own schedule.
func (s *ScheduleService) Upsert(ctx context.Context, caller *domain.Identity, entry domain.ScheduleEntry) (*domain.ScheduleEntry, error) {
	if err := authorize(caller, policy.ScheduleManage, policy.Owner(entry.EmployeeID)); err != nil {
		return nil, err
	}
	if err := validateScheduleEntry(entry); err != nil {
		return nil, err
	}

	entry.IsActive = true
	if err := s.repo.Upsert(ctx, &entry); err != nil {
		return nil, fmt.Errorf("upsert schedule: %w", err)
	}

	s.log.Info().Int64("employee_id", entry.EmployeeID).Int("day_of_week", entry.DayOfWeek).Msg("schedule updated")
	return &entry, nil
}

func validateScheduleEntry(e domain.ScheduleEntry) error {
	if e.DayOfWeek < 0 || e.DayOfWeek > 6 {
		return fmt.Errorf("%w: day_of_week must be between 0 and 6", domain.ErrValidation)
	}
	start, err := time.Parse("15:04", e.StartTime)
	if err != nil {
		return fmt.Errorf("%w: start_time must be HH:MM", domain.ErrValidation)
	}
	end, err := time.Parse("15:04", e.EndTime)
	if err != nil {
		return fmt.Errorf("%w: end_time must be HH:MM", domain.ErrValidation)
	}
	if !end.After(start) {
		return fmt.Errorf("%w: end_time must be after start_time", domain.ErrValidation)
	}
	return nil
}
