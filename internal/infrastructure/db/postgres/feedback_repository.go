package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/salon/booking-api/internal/core/domain"
)

type FeedbackRepository struct {
	pool *pgxpool.Pool
}

func NewFeedbackRepository(pool *pgxpool.Pool) *FeedbackRepository {
	return &FeedbackRepository{pool: pool}
}

func (r *FeedbackRepository) Create(ctx context.Context, f *domain.Feedback) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO feedback (name, phone, message) VALUES ($1, $2, $3) RETURNING id, is_read, created_at`,
		f.Name, f.Phone, f.Message,
	).Scan(&f.ID, &f.IsRead, &f.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

func (r *FeedbackRepository) List(ctx context.Context) ([]*domain.Feedback, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, phone, message, is_read, created_at FROM feedback ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list feedback: %w", err)
	}
	defer rows.Close()

	var items []*domain.Feedback
	for rows.Next() {
		var f domain.Feedback
		if err := rows.Scan(&f.ID, &f.Name, &f.Phone, &f.Message, &f.IsRead, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan feedback: %w", err)
		}
		items = append(items, &f)
	}
	return items, rows.Err()
}

func (r *FeedbackRepository) SetRead(ctx context.Context, id int64, read bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE feedback SET is_read = $2 WHERE id = $1`, id, read)
	if err != nil {
		return fmt.Errorf("update feedback: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
