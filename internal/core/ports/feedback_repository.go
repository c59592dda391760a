package ports

import (
	"context"

	"github.com/salon/booking-api/internal/core/domain"
)

// FeedbackRepository defines persistence operations for contact messages.
type FeedbackRepository interface {
	Create(ctx context.Context, f *domain.Feedback) error
	List(ctx context.Context) ([]*domain.Feedback, error)
	SetRead(ctx context.Context, id int64, read bool) error
}
