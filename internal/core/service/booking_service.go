package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/salon/booking-api/internal/core/domain"
	"github.com/salon/booking-api/internal/core/policy"
	"github.com/salon/booking-api/internal/core/ports"
	"github.com/salon/booking-api/internal/pkg/metrics"
)

type BookingService struct {
	repo ports.BookingRepository
	log  zerolog.Logger
}

func NewBookingService(repo ports.BookingRepository, log zerolog.Logger) *BookingService {
	return &BookingService{repo: repo, log: log}
}

func bookingTarget(b *domain.Booking) policy.Target {
	return policy.Target{OwnerID: b.UserID, AssigneeID: b.EmployeeID}
}

// Create records a new pending booking. Anonymous callers are welcome; an
// authenticated caller becomes the owner.
func (s *BookingService) Create(ctx context.Context, caller *domain.Identity, in ports.CreateBookingInput) (*domain.Booking, error) {
	if err := authorize(caller, policy.BookingCreate, policy.Target{}); err != nil {
		return nil, err
	}

	b := &domain.Booking{
		EmployeeID:  in.EmployeeID,
		ClientName:  in.ClientName,
		Phone:       in.Phone,
		Service:     in.Service,
		Master:      in.Master,
		BookingDate: in.BookingDate,
		BookingTime: in.BookingTime,
		Notes:       in.Notes,
		Status:      domain.BookingPending,
	}
	if caller != nil {
		uid := caller.UserID
		b.UserID = &uid
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	metrics.BookingsCreatedTotal.WithLabelValues(callerLabel(caller)).Inc()
	s.log.Info().Int64("booking_id", b.ID).Str("caller", callerLabel(caller)).Msg("booking created")
	return b, nil
}

func (s *BookingService) Get(ctx context.Context, caller *domain.Identity, id int64) (*domain.Booking, error) {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(caller, policy.BookingRead, bookingTarget(b)); err != nil {
		return nil, err
	}
	return b, nil
}

// List returns every booking to admins (honouring the optional filters),
// assigned bookings to employees and own bookings to clients.
func (s *BookingService) List(ctx context.Context, caller *domain.Identity, in ports.ListBookingsInput) ([]*domain.Booking, error) {
	if err := authorize(caller, policy.BookingListOwn, policy.Target{}); err != nil {
		return nil, err
	}

	filter := ports.BookingFilter{Status: in.Status}
	switch caller.Role {
	case domain.RoleAdmin:
		if err := authorize(caller, policy.BookingListAll, policy.Target{}); err != nil {
			return nil, err
		}
		filter.UserID = in.UserID
		filter.EmployeeID = in.EmployeeID
	case domain.RoleEmployee:
		uid := caller.UserID
		filter.EmployeeID = &uid
	case domain.RoleClient:
		uid := caller.UserID
		filter.UserID = &uid
	default:
		return nil, domain.ErrForbidden
	}

	bookings, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

// Update changes status, date, time or notes. Owners may edit the details
// and cancel; confirming or completing is left to admins and the assigned
// employee. The write is conditional on the party that was authorized and on
// the status read here, so a concurrent change surfaces as domain.ErrConflict.
func (s *BookingService) Update(ctx context.Context, caller *domain.Identity, id int64, changes domain.BookingChanges) error {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	guard := ports.BookingGuard{ExpectStatus: b.Status}
	progresses := changes.Status != nil && *changes.Status != domain.BookingCancelled
	if progresses {
		if err := authorize(caller, policy.BookingStatusChange, bookingTarget(b)); err != nil {
			return err
		}
		if !caller.IsAdmin() {
			uid := caller.UserID
			guard.AssigneeID = &uid
		}
	}
	editsDetails := changes.BookingDate != nil || changes.BookingTime != nil || changes.Notes != nil
	if !progresses || editsDetails {
		if err := authorize(caller, policy.BookingUpdate, bookingTarget(b)); err != nil {
			return err
		}
		if !caller.IsAdmin() {
			uid := caller.UserID
			guard.OwnerID = &uid
		}
	}

	if changes.Status != nil && !b.Status.CanTransitionTo(*changes.Status) {
		return fmt.Errorf("%w: %s to %s", domain.ErrInvalidTransition, b.Status, *changes.Status)
	}

	if err := s.repo.Update(ctx, id, changes, guard); err != nil {
		return fmt.Errorf("update booking: %w", err)
	}

	ev := s.log.Info().Int64("booking_id", id).Int64("user_id", caller.UserID)
	if changes.Status != nil {
		ev = ev.Str("status", string(*changes.Status))
	}
	ev.Msg("booking updated")
	return nil
}

// Cancel soft-deletes a booking by moving it to cancelled. Cancelling an
// already cancelled booking succeeds without a write.
func (s *BookingService) Cancel(ctx context.Context, caller *domain.Identity, id int64) error {
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(caller, policy.BookingCancel, bookingTarget(b)); err != nil {
		return err
	}
	if b.Status == domain.BookingCancelled {
		return nil
	}
	if !b.Status.CanTransitionTo(domain.BookingCancelled) {
		return fmt.Errorf("%w: %s to %s", domain.ErrInvalidTransition, b.Status, domain.BookingCancelled)
	}

	cancelled := domain.BookingCancelled
	if err := s.repo.Update(ctx, id, domain.BookingChanges{Status: &cancelled}, guardFor(caller, b)); err != nil {
		return fmt.Errorf("cancel booking: %w", err)
	}

	s.log.Info().Int64("booking_id", id).Int64("user_id", caller.UserID).Msg("booking cancelled")
	return nil
}

func guardFor(caller *domain.Identity, b *domain.Booking) ports.BookingGuard {
	g := ports.BookingGuard{ExpectStatus: b.Status}
	if !caller.IsAdmin() {
		uid := caller.UserID
		g.OwnerID = &uid
	}
	return g
}
