package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/salon/booking-api/internal/core/domain"
	"github.com/salon/booking-api/internal/core/policy"
	"github.com/salon/booking-api/internal/core/ports"
)

const temporaryPasswordBytes = 12

// UserService is the administrative view over accounts plus self-service
// profile edits.
type UserService struct {
	dir    ports.UserDirectory
	hasher PasswordHasher
	log    zerolog.Logger
}

func NewUserService(dir ports.UserDirectory, hasher PasswordHasher, log zerolog.Logger) *UserService {
	return &UserService{dir: dir, hasher: hasher, log: log}
}

func (s *UserService) Get(ctx context.Context, caller *domain.Identity, id int64) (*domain.User, error) {
	if err := authorize(caller, policy.UserRead, policy.Owner(id)); err != nil {
		return nil, err
	}
	return s.dir.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, caller *domain.Identity, filter ports.UserFilter) ([]*domain.User, error) {
	if err := authorize(caller, policy.UserList, policy.Target{}); err != nil {
		return nil, err
	}
	users, err := s.dir.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

// Create adds an account with a generated one-time password that is returned
// to the administrator exactly once.
func (s *UserService) Create(ctx context.Context, caller *domain.Identity, in ports.CreateUserInput) (*ports.CreatedUser, error) {
	if err := authorize(caller, policy.UserCreate, policy.Target{}); err != nil {
		return nil, err
	}
	role := in.Role
	if role == "" {
		role = domain.RoleClient
	}
	if _, err := domain.ParseRole(string(role)); err != nil {
		return nil, err
	}

	password, err := temporaryPassword()
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("create user: hash password: %w", err)
	}

	user := &domain.User{
		Email:        in.Email,
		PasswordHash: hash,
		FullName:     in.FullName,
		Phone:        in.Phone,
		Role:         role,
	}
	if err := s.dir.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info().Int64("user_id", user.ID).Str("role", string(role)).Int64("by", caller.UserID).Msg("user created")
	return &ports.CreatedUser{User: user, TemporaryPassword: password}, nil
}

// Update edits a profile. Name and phone may be changed by the account owner;
// email and role are reserved to administrators.
func (s *UserService) Update(ctx context.Context, caller *domain.Identity, id int64, changes ports.UserChanges) (*domain.User, error) {
	if changes.FullName == nil && changes.Phone == nil && changes.Email == nil && changes.Role == nil {
		return nil, fmt.Errorf("%w: nothing to update", domain.ErrValidation)
	}

	action := policy.UserUpdateProfile
	if changes.Email != nil || changes.Role != nil {
		action = policy.UserUpdateAccount
	}
	if err := authorize(caller, action, policy.Owner(id)); err != nil {
		return nil, err
	}
	if changes.Role != nil {
		if _, err := domain.ParseRole(string(*changes.Role)); err != nil {
			return nil, err
		}
	}

	user, err := s.dir.Update(ctx, id, changes)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	s.log.Info().Int64("user_id", id).Int64("by", caller.UserID).Msg("user updated")
	return user, nil
}

// Delete deactivates an account and ends its sessions. Administrators cannot
// delete themselves.
func (s *UserService) Delete(ctx context.Context, caller *domain.Identity, id int64) error {
	if err := authorize(caller, policy.UserDelete, policy.Owner(id)); err != nil {
		return err
	}
	if caller.UserID == id {
		return fmt.Errorf("%w: cannot delete your own account", domain.ErrValidation)
	}
	if err := s.dir.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	s.log.Info().Int64("user_id", id).Int64("by", caller.UserID).Msg("user deleted")
	return nil
}

func temporaryPassword() (string, error) {
	b := make([]byte, temporaryPasswordBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate temporary password: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
