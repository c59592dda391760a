package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/salon/booking-api/internal/core/domain"
	"github.com/salon/booking-api/internal/core/ports"
)

// UserRepository serves both the credential store and the administrative
// user directory. Deactivated accounts are invisible to every method.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, email, password_hash, full_name, phone, role, created_at, updated_at`

func scanUser(row pgx.Row) (*domain.User, error) {
	var (
		u    domain.User
		role string
	)
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Phone, &role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Role = domain.Role(role)
	return &u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1 AND deactivated_at IS NULL`, email))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 AND deactivated_at IS NULL`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	role := user.Role
	if role == "" {
		role = domain.RoleClient
	}
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (email, password_hash, full_name, phone, role)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at, updated_at`,
		user.Email, user.PasswordHash, user.FullName, user.Phone, string(role),
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("insert user: %w", err)
	}
	user.Role = role
	return nil
}

func (r *UserRepository) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1 AND deactivated_at IS NULL`, id, hash)
	if err != nil {
		return fmt.Errorf("update password hash: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepository) List(ctx context.Context, filter ports.UserFilter) ([]*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE deactivated_at IS NULL`
	var args []any
	if filter.Role != "" {
		query += ` AND role = $1`
		args = append(args, string(filter.Role))
	}
	query += ` ORDER BY full_name, id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UserRepository) Update(ctx context.Context, id int64, changes ports.UserChanges) (*domain.User, error) {
	var (
		sets []string
		args = []any{id}
	)
	add := func(column string, v any) {
		args = append(args, v)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if changes.FullName != nil {
		add("full_name", *changes.FullName)
	}
	if changes.Phone != nil {
		add("phone", *changes.Phone)
	}
	if changes.Email != nil {
		add("email", *changes.Email)
	}
	if changes.Role != nil {
		add("role", string(*changes.Role))
	}
	if len(sets) == 0 {
		return r.FindByID(ctx, id)
	}
	sets = append(sets, "updated_at = now()")

	query := `UPDATE users SET ` + strings.Join(sets, ", ") + ` WHERE id = $1 AND deactivated_at IS NULL RETURNING ` + userColumns
	u, err := scanUser(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		switch {
		case isNoRows(err):
			return nil, domain.ErrNotFound
		case isUniqueViolation(err):
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return u, nil
}

// Delete deactivates the account and expires its live sessions in one
// transaction. The row stays because bookings, reviews, schedules and
// sessions reference it.
func (r *UserRepository) Delete(ctx context.Context, id int64) (err error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("delete user: begin: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	tag, err := tx.Exec(ctx,
		`UPDATE users SET deactivated_at = now(), updated_at = now()
		  WHERE id = $1 AND deactivated_at IS NULL`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	if _, err = tx.Exec(ctx,
		`UPDATE sessions SET expires_at = now() WHERE user_id = $1 AND expires_at > now()`, id); err != nil {
		return fmt.Errorf("delete user: expire sessions: %w", err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("delete user: commit: %w", err)
	}
	return nil
}
