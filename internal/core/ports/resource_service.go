package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/salon/booking-api/internal/core/domain"
)

// Every resource operation receives the caller's identity, nil for anonymous
// requests, and enforces the authorization policy itself.

// CreateBookingInput carries the fields of a new appointment.
type CreateBookingInput struct {
	ClientName  string
	Phone       string
	Service     string
	Master      string
	EmployeeID  *int64
	BookingDate string
	BookingTime string
	Notes       string
}

// ListBookingsInput carries optional admin filters; they are ignored for
// callers that only ever see their own rows.
type ListBookingsInput struct {
	UserID     *int64
	EmployeeID *int64
	Status     domain.BookingStatus
}

type BookingService interface {
	Create(ctx context.Context, caller *domain.Identity, in CreateBookingInput) (*domain.Booking, error)
	Get(ctx context.Context, caller *domain.Identity, id int64) (*domain.Booking, error)
	List(ctx context.Context, caller *domain.Identity, in ListBookingsInput) ([]*domain.Booking, error)
	Update(ctx context.Context, caller *domain.Identity, id int64, changes domain.BookingChanges) error
	// Cancel is the delete operation: the booking moves to cancelled.
	Cancel(ctx context.Context, caller *domain.Identity, id int64) error
}

// CreateReviewInput carries the fields of a new review.
type CreateReviewInput struct {
	Author  string
	Rating  int
	Comment string
}

type ReviewService interface {
	List(ctx context.Context, caller *domain.Identity) ([]*domain.Review, error)
	Create(ctx context.Context, caller *domain.Identity, in CreateReviewInput) (*domain.Review, error)
	Moderate(ctx context.Context, caller *domain.Identity, id int64, approved bool) error
	// Withdraw is the delete operation: the review loses its approval.
	Withdraw(ctx context.Context, caller *domain.Identity, id int64) error
}

// SubmitFeedbackInput carries a contact form message.
type SubmitFeedbackInput struct {
	Name    string
	Phone   string
	Message string
}

type FeedbackService interface {
	Submit(ctx context.Context, caller *domain.Identity, in SubmitFeedbackInput) (*domain.Feedback, error)
	List(ctx context.Context, caller *domain.Identity) ([]*domain.Feedback, error)
	MarkRead(ctx context.Context, caller *domain.Identity, id int64, read bool) error
}

// ServiceInput carries the editable fields of a catalog entry.
type ServiceInput struct {
	Name        string
	Description string
	Duration    int
	Price       decimal.Decimal
	Category    string
	IsActive    bool
}

type CatalogService interface {
	List(ctx context.Context) ([]*domain.Service, error)
	Categories(ctx context.Context) ([]string, error)
	Create(ctx context.Context, caller *domain.Identity, in ServiceInput) (*domain.Service, error)
	Update(ctx context.Context, caller *domain.Identity, id int64, in ServiceInput) error
	Delete(ctx context.Context, caller *domain.Identity, id int64) error
}

// CreateUserInput carries an account created by an administrator.
type CreateUserInput struct {
	Email    string
	FullName string
	Phone    string
	Role     domain.Role
}

// CreatedUser pairs a new account with its generated one-time password.
type CreatedUser struct {
	User              *domain.User
	TemporaryPassword string
}

type UserService interface {
	Get(ctx context.Context, caller *domain.Identity, id int64) (*domain.User, error)
	List(ctx context.Context, caller *domain.Identity, filter UserFilter) ([]*domain.User, error)
	Create(ctx context.Context, caller *domain.Identity, in CreateUserInput) (*CreatedUser, error)
	Update(ctx context.Context, caller *domain.Identity, id int64, changes UserChanges) (*domain.User, error)
	// Delete deactivates an account; its history stays in place.
	Delete(ctx context.Context, caller *domain.Identity, id int64) error
}

type ScheduleService interface {
	List(ctx context.Context, employeeID *int64) ([]*domain.ScheduleEntry, error)
	Upsert(ctx context.Context, caller *domain.Identity, entry domain.ScheduleEntry) (*domain.ScheduleEntry, error)
}
