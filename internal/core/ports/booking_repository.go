package ports

import (
	"context"

	"github.com/salon/booking-api/internal/core/domain"
)

// BookingFilter narrows a booking listing. Zero values mean "no filter".
type BookingFilter struct {
	UserID     *int64
	EmployeeID *int64
	Status     domain.BookingStatus
}

// BookingGuard restricts a conditional update. Nil OwnerID and AssigneeID
// allow any party (admin path); ExpectStatus pins the status read before the
// write.
type BookingGuard struct {
	OwnerID      *int64
	AssigneeID   *int64
	ExpectStatus domain.BookingStatus
}

// BookingRepository defines persistence operations for bookings.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	FindByID(ctx context.Context, id int64) (*domain.Booking, error)
	// List returns bookings ordered by booking date and time, newest first.
	List(ctx context.Context, filter BookingFilter) ([]*domain.Booking, error)
	// Update applies changes only when guard still holds and reports
	// domain.ErrConflict when no row matched.
	Update(ctx context.Context, id int64, changes domain.BookingChanges, guard BookingGuard) error
}
