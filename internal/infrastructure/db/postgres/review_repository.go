package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/salon/booking-api/internal/core/domain"
)

type ReviewRepository struct {
	pool *pgxpool.Pool
}

func NewReviewRepository(pool *pgxpool.Pool) *ReviewRepository {
	return &ReviewRepository{pool: pool}
}

const reviewColumns = `id, user_id, author, rating, comment, approved, created_at`

func scanReview(row pgx.Row) (*domain.Review, error) {
	var rv domain.Review
	if err := row.Scan(&rv.ID, &rv.UserID, &rv.Author, &rv.Rating, &rv.Comment, &rv.Approved, &rv.CreatedAt); err != nil {
		return nil, err
	}
	return &rv, nil
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO reviews (user_id, author, rating, comment, approved)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`,
		rv.UserID, rv.Author, rv.Rating, rv.Comment, rv.Approved,
	).Scan(&rv.ID, &rv.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert review: %w", err)
	}
	return nil
}

func (r *ReviewRepository) FindByID(ctx context.Context, id int64) (*domain.Review, error) {
	rv, err := scanReview(r.pool.QueryRow(ctx, `SELECT `+reviewColumns+` FROM reviews WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find review: %w", err)
	}
	return rv, nil
}

func (r *ReviewRepository) List(ctx context.Context, onlyApproved bool) ([]*domain.Review, error) {
	query := `SELECT ` + reviewColumns + ` FROM reviews`
	if onlyApproved {
		query += ` WHERE approved`
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []*domain.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

func (r *ReviewRepository) SetApproved(ctx context.Context, id int64, approved bool, ownerID *int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE reviews SET approved = $2 WHERE id = $1 AND ($3::bigint IS NULL OR user_id = $3)`,
		id, approved, ownerID,
	)
	if err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if ownerID != nil {
			return domain.ErrConflict
		}
		return domain.ErrNotFound
	}
	return nil
}
