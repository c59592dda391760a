package ports

import (
	"context"

	"github.com/salon/booking-api/internal/core/domain"
)

// ReviewRepository defines persistence operations for reviews.
type ReviewRepository interface {
	Create(ctx context.Context, r *domain.Review) error
	FindByID(ctx context.Context, id int64) (*domain.Review, error)
	// List returns reviews newest first; onlyApproved hides pending ones.
	List(ctx context.Context, onlyApproved bool) ([]*domain.Review, error)
	// SetApproved changes approval. A non-nil ownerID restricts the update
	// to that author and yields domain.ErrConflict when it does not match.
	SetApproved(ctx context.Context, id int64, approved bool, ownerID *int64) error
}
