package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/salon/booking-api/internal/core/domain"
	"github.com/salon/booking-api/internal/core/ports"
	"github.com/salon/booking-api/internal/pkg/metrics"
)

// DefaultSessionTTL is the natural lifetime of a session.
const DefaultSessionTTL = 30 * 24 * time.Hour

// AuthService implements registration, login, logout and session resolution.
type AuthService struct {
	users      ports.UserRepository
	sessions   ports.SessionRepository
	hasher     PasswordHasher
	newToken   TokenGenerator
	sessionTTL time.Duration
	now        func() time.Time
	log        zerolog.Logger
}

// AuthOption customises an AuthService.
type AuthOption func(*AuthService)

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) AuthOption {
	return func(s *AuthService) { s.now = now }
}

// WithTokenGenerator replaces RandomToken.
func WithTokenGenerator(gen TokenGenerator) AuthOption {
	return func(s *AuthService) { s.newToken = gen }
}

func NewAuthService(
	users ports.UserRepository,
	sessions ports.SessionRepository,
	hasher PasswordHasher,
	sessionTTL time.Duration,
	log zerolog.Logger,
	opts ...AuthOption,
) *AuthService {
	if sessionTTL <= 0 {
		sessionTTL = DefaultSessionTTL
	}
	s := &AuthService{
		users:      users,
		sessions:   sessions,
		hasher:     hasher,
		newToken:   RandomToken,
		sessionTTL: sessionTTL,
		now:        time.Now,
		log:        log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register creates a client account and logs it in.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.RegisterResult, error) {
	_, err := s.users.FindByEmail(ctx, in.Email)
	switch {
	case err == nil:
		metrics.AuthAttemptsTotal.WithLabelValues("register", "duplicate_email").Inc()
		return nil, domain.ErrDuplicateEmail
	case !errors.Is(err, domain.ErrNotFound):
		metrics.AuthAttemptsTotal.WithLabelValues("register", "error").Inc()
		return nil, fmt.Errorf("register: lookup email: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			metrics.AuthAttemptsTotal.WithLabelValues("register", "invalid").Inc()
			return nil, err
		}
		metrics.AuthAttemptsTotal.WithLabelValues("register", "error").Inc()
		return nil, fmt.Errorf("register: hash password: %w", err)
	}

	user := &domain.User{
		Email:        in.Email,
		PasswordHash: hash,
		FullName:     in.FullName,
		Phone:        in.Phone,
		Role:         domain.RoleClient,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			metrics.AuthAttemptsTotal.WithLabelValues("register", "duplicate_email").Inc()
			return nil, err
		}
		metrics.AuthAttemptsTotal.WithLabelValues("register", "error").Inc()
		return nil, fmt.Errorf("register: create user: %w", err)
	}

	token, err := s.issueSession(ctx, user.ID, "register")
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("register", "error").Inc()
		return nil, fmt.Errorf("register: %w", err)
	}

	metrics.AuthAttemptsTotal.WithLabelValues("register", "ok").Inc()
	s.log.Info().Int64("user_id", user.ID).Msg("user registered")

	return &ports.RegisterResult{SessionToken: token, UserID: user.ID}, nil
}

// Login verifies credentials and issues a new, independent session. Unknown
// emails and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.AuthAttemptsTotal.WithLabelValues("login", "invalid_credentials").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		metrics.AuthAttemptsTotal.WithLabelValues("login", "error").Inc()
		return nil, fmt.Errorf("login: lookup email: %w", err)
	}

	if !s.hasher.Verify(user.PasswordHash, password) {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if s.hasher.NeedsRehash(user.PasswordHash) {
		s.rehash(ctx, user, password)
	}

	token, err := s.issueSession(ctx, user.ID, "login")
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("login", "error").Inc()
		return nil, fmt.Errorf("login: %w", err)
	}

	metrics.AuthAttemptsTotal.WithLabelValues("login", "ok").Inc()
	s.log.Info().Int64("user_id", user.ID).Msg("user logged in")

	return &ports.LoginResult{SessionToken: token, User: user}, nil
}

// Logout expires the session behind token. It never fails for missing,
// unknown or already expired tokens.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		metrics.AuthAttemptsTotal.WithLabelValues("logout", "ok").Inc()
		return nil
	}
	if err := s.sessions.Expire(ctx, token, s.now().UTC()); err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("logout", "error").Inc()
		return fmt.Errorf("logout: %w", err)
	}
	metrics.AuthAttemptsTotal.WithLabelValues("logout", "ok").Inc()
	return nil
}

// ResolveSession returns the full profile of the session's owner.
func (s *AuthService) ResolveSession(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		metrics.SessionResolutionsTotal.WithLabelValues("missing").Inc()
		return nil, domain.ErrUnauthenticated
	}

	sess, err := s.sessions.FindActive(ctx, token, s.now().UTC())
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			metrics.SessionResolutionsTotal.WithLabelValues("expired").Inc()
			return nil, domain.ErrSessionExpired
		}
		metrics.SessionResolutionsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("resolve session: %w", err)
	}

	user, err := s.users.FindByID(ctx, sess.UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// The owning account is gone; the token is worthless.
			metrics.SessionResolutionsTotal.WithLabelValues("expired").Inc()
			return nil, domain.ErrSessionExpired
		}
		metrics.SessionResolutionsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("resolve session: load user: %w", err)
	}

	metrics.SessionResolutionsTotal.WithLabelValues("ok").Inc()
	return user, nil
}

// Profile loads the account behind an identity the session middleware has
// already resolved. An account that no longer exists reads as an expired
// session.
func (s *AuthService) Profile(ctx context.Context, userID int64) (*domain.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrSessionExpired
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return user, nil
}

// Identify resolves token to the caller's (user id, role) pair.
func (s *AuthService) Identify(ctx context.Context, token string) (*domain.Identity, error) {
	user, err := s.ResolveSession(ctx, token)
	if err != nil {
		return nil, err
	}
	id := user.Identity()
	return &id, nil
}

func (s *AuthService) issueSession(ctx context.Context, userID int64, operation string) (string, error) {
	token, err := s.newToken()
	if err != nil {
		return "", err
	}
	now := s.now().UTC()
	sess := &domain.Session{
		Token:     token,
		UserID:    userID,
		ExpiresAt: now.Add(s.sessionTTL),
		CreatedAt: now,
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	metrics.SessionsIssuedTotal.WithLabelValues(operation).Inc()
	return token, nil
}

// rehash upgrades a stored hash after a successful login. Failures only
// cost the upgrade, never the login.
func (s *AuthService) rehash(ctx context.Context, user *domain.User, password string) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		s.log.Warn().Err(err).Int64("user_id", user.ID).Msg("password rehash failed")
		return
	}
	if err := s.users.UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		s.log.Warn().Err(err).Int64("user_id", user.ID).Msg("failed to store upgraded password hash")
		return
	}
	user.PasswordHash = hash
	s.log.Info().Int64("user_id", user.ID).Msg("password hash upgraded")
}
