package ports

import (
	"context"
	"time"

	"github.com/salon/booking-api/internal/core/domain"
)

// UserRepository is the credential store: user identity records.
type UserRepository interface {
	// FindByEmail returns domain.ErrNotFound when no user has the email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	// Create persists the user and fills ID and timestamps. A taken email
	// yields domain.ErrDuplicateEmail.
	Create(ctx context.Context, user *domain.User) error
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
}

// SessionRepository is the session store.
type SessionRepository interface {
	Create(ctx context.Context, s *domain.Session) error
	// FindActive returns the session for token if its expiry is after now,
	// and domain.ErrSessionNotFound otherwise.
	FindActive(ctx context.Context, token string, now time.Time) (*domain.Session, error)
	// Expire moves a live session's expiry to at. Unknown or already
	// expired tokens are not an error.
	Expire(ctx context.Context, token string, at time.Time) error
}
