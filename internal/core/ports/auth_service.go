package ports

import (
	"context"

	"github.com/salon/booking-api/internal/core/domain"
)

// RegisterInput carries the fields of a new self-service account.
type RegisterInput struct {
	Email    string
	Password string
	FullName string
	Phone    string
}

// RegisterResult is returned after a successful registration (auto-login).
type RegisterResult struct {
	SessionToken string
	UserID       int64
}

// LoginResult is returned after a successful login.
type LoginResult struct {
	SessionToken string
	User         *domain.User
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*RegisterResult, error)
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, token string) error
	ResolveSession(ctx context.Context, token string) (*domain.User, error)
	// Profile returns the account of an already resolved caller.
	Profile(ctx context.Context, userID int64) (*domain.User, error)
}

// IdentityResolver maps a session token to the caller's identity.
type IdentityResolver interface {
	Identify(ctx context.Context, token string) (*domain.Identity, error)
}
