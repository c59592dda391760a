package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/salon/booking-api/internal/core/domain"
)

// CatalogRepository stores the price list. Prices travel as text so NUMERIC
// precision is kept end to end.
type CatalogRepository struct {
	pool *pgxpool.Pool
}

func NewCatalogRepository(pool *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{pool: pool}
}

func (r *CatalogRepository) ListActive(ctx context.Context) ([]*domain.Service, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, description, duration, price::text, category, is_active, created_at, updated_at
		   FROM services
		  WHERE is_active
		  ORDER BY category, name`)
	if err != nil {
		return nil, fmt.Errorf("list services: %w", err)
	}
	defer rows.Close()

	var services []*domain.Service
	for rows.Next() {
		var (
			s     domain.Service
			price string
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.Duration, &price, &s.Category, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan service: %w", err)
		}
		if s.Price, err = decimal.NewFromString(price); err != nil {
			return nil, fmt.Errorf("parse price of service %d: %w", s.ID, err)
		}
		services = append(services, &s)
	}
	return services, rows.Err()
}

func (r *CatalogRepository) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT DISTINCT category FROM services WHERE is_active AND category <> '' ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var cats []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		cats = append(cats, c)
	}
	return cats, rows.Err()
}

func (r *CatalogRepository) Create(ctx context.Context, s *domain.Service) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO services (name, description, duration, price, category, is_active)
		 VALUES ($1, $2, $3, $4::numeric, $5, $6)
		 RETURNING id, created_at, updated_at`,
		s.Name, s.Description, s.Duration, s.Price.String(), s.Category, s.IsActive,
	).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert service: %w", err)
	}
	return nil
}

func (r *CatalogRepository) Update(ctx context.Context, s *domain.Service) error {
	err := r.pool.QueryRow(ctx,
		`UPDATE services
		    SET name = $2, description = $3, duration = $4, price = $5::numeric,
		        category = $6, is_active = $7, updated_at = now()
		  WHERE id = $1
		  RETURNING created_at, updated_at`,
		s.ID, s.Name, s.Description, s.Duration, s.Price.String(), s.Category, s.IsActive,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update service: %w", err)
	}
	return nil
}

func (r *CatalogRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete service: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
