package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/salon/booking-api/internal/core/domain"
)

type ScheduleRepository struct {
	pool *pgxpool.Pool
}

func NewScheduleRepository(pool *pgxpool.Pool) *ScheduleRepository {
	return &ScheduleRepository{pool: pool}
}

func (r *ScheduleRepository) ListActive(ctx context.Context, employeeID *int64) ([]*domain.ScheduleEntry, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT es.id, es.employee_id, u.full_name, es.day_of_week,
		        to_char(es.start_time, 'HH24:MI'), to_char(es.end_time, 'HH24:MI'), es.is_active
		   FROM employee_schedule es
		   JOIN users u ON u.id = es.employee_id
		  WHERE es.is_active AND ($1::bigint IS NULL OR es.employee_id = $1)
		  ORDER BY es.employee_id, es.day_of_week`,
		employeeID,
	)
	if err != nil {
		return nil, fmt.Errorf("list schedule: %w", err)
	}
	defer rows.Close()

	var entries []*domain.ScheduleEntry
	for rows.Next() {
		var e domain.ScheduleEntry
		if err := rows.Scan(&e.ID, &e.EmployeeID, &e.EmployeeName, &e.DayOfWeek, &e.StartTime, &e.EndTime, &e.IsActive); err != nil {
			return nil, fmt.Errorf("scan schedule entry: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

func (r *ScheduleRepository) Upsert(ctx context.Context, e *domain.ScheduleEntry) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO employee_schedule (employee_id, day_of_week, start_time, end_time, is_active)
		 VALUES ($1, $2, $3::time, $4::time, $5)
		 ON CONFLICT (employee_id, day_of_week)
		 DO UPDATE SET start_time = EXCLUDED.start_time,
		               end_time   = EXCLUDED.end_time,
		               is_active  = EXCLUDED.is_active
		 RETURNING id`,
		e.EmployeeID, e.DayOfWeek, e.StartTime, e.EndTime, e.IsActive,
	).Scan(&e.ID)
	if err != nil {
		return fmt.Errorf("upsert schedule entry: %w", err)
	}
	return nil
}
