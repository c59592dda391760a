package domain

import (
	"fmt"
	"time"
)

// Role is the coarse permission class attached to a User.
type Role string

const (
	RoleClient   Role = "client"
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

// ParseRole maps a stored or submitted role string onto the closed set.
func ParseRole(s string) (Role, error) {
	switch r := Role(s); r {
	case RoleClient, RoleEmployee, RoleAdmin:
		return r, nil
	default:
		return "", fmt.Errorf("%w: unknown role %q", ErrValidation, s)
	}
}

// User models an account holder of the salon application.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	Phone        string    `json:"phone"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Identity is the (user id, role) pair resolved from a valid session token.
// It is derived per request and never stored.
type Identity struct {
	UserID int64
	Role   Role
}

// IsAdmin reports whether the identity carries the admin role.
func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

// Identity returns the resolved identity of the user.
func (u *User) Identity() Identity {
	return Identity{UserID: u.ID, Role: u.Role}
}
