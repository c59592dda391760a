package ports

import (
	"context"

	"github.com/salon/booking-api/internal/core/domain"
)

// CatalogRepository defines persistence operations for the price list.
type CatalogRepository interface {
	// ListActive returns active services ordered by category then name.
	ListActive(ctx context.Context) ([]*domain.Service, error)
	Categories(ctx context.Context) ([]string, error)
	Create(ctx context.Context, s *domain.Service) error
	Update(ctx context.Context, s *domain.Service) error
	Delete(ctx context.Context, id int64) error
}

// ScheduleRepository defines persistence operations for employee schedules.
type ScheduleRepository interface {
	// ListActive returns active entries; a nil employeeID lists everyone.
	ListActive(ctx context.Context, employeeID *int64) ([]*domain.ScheduleEntry, error)
	// Upsert inserts or replaces the entry for (EmployeeID, DayOfWeek) and
	// reactivates it.
	Upsert(ctx context.Context, e *domain.ScheduleEntry) error
}

// UserFilter narrows a user listing.
type UserFilter struct {
	Role domain.Role
}

// UserChanges carries the optional fields of a user update.
type UserChanges struct {
	FullName *string
	Phone    *string
	Email    *string
	Role     *domain.Role
}

// UserDirectory is the administrative view over accounts.
type UserDirectory interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, filter UserFilter) ([]*domain.User, error)
	Create(ctx context.Context, user *domain.User) error
	Update(ctx context.Context, id int64, changes UserChanges) (*domain.User, error)
	// Delete deactivates the account and expires its sessions. Unknown or
	// already deactivated ids yield domain.ErrNotFound.
	Delete(ctx context.Context, id int64) error
}
