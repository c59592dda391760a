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

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

const bookingColumns = `id, user_id, employee_id, client_name, phone, service, master,
	to_char(booking_date, 'YYYY-MM-DD'), to_char(booking_time, 'HH24:MI'),
	notes, status, created_at, updated_at`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var (
		b      domain.Booking
		status string
	)
	err := row.Scan(&b.ID, &b.UserID, &b.EmployeeID, &b.ClientName, &b.Phone, &b.Service, &b.Master,
		&b.BookingDate, &b.BookingTime, &b.Notes, &status, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	b.Status = domain.BookingStatus(status)
	return &b, nil
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO bookings (user_id, employee_id, client_name, phone, service, master,
		                       booking_date, booking_time, notes, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7::date, $8::time, $9, $10)
		 RETURNING id, created_at, updated_at`,
		b.UserID, b.EmployeeID, b.ClientName, b.Phone, b.Service, b.Master,
		b.BookingDate, b.BookingTime, b.Notes, string(b.Status),
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id int64) (*domain.Booking, error) {
	b, err := scanBooking(r.pool.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find booking: %w", err)
	}
	return b, nil
}

func (r *BookingRepository) List(ctx context.Context, filter ports.BookingFilter) ([]*domain.Booking, error) {
	var (
		where []string
		args  []any
	)
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		where = append(where, fmt.Sprintf("user_id = $%d", len(args)))
	}
	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		where = append(where, fmt.Sprintf("employee_id = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}

	query := `SELECT ` + bookingColumns + ` FROM bookings`
	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, " AND ")
	}
	query += ` ORDER BY booking_date DESC, booking_time DESC, id DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("scan booking: %w", err)
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}

// Update writes only when the row still matches guard. A miss means the
// booking changed owner, assignee or status since it was read.
func (r *BookingRepository) Update(ctx context.Context, id int64, changes domain.BookingChanges, guard ports.BookingGuard) error {
	var status *string
	if changes.Status != nil {
		s := string(*changes.Status)
		status = &s
	}

	tag, err := r.pool.Exec(ctx,
		`UPDATE bookings
		    SET status       = COALESCE($2, status),
		        booking_date = COALESCE($3::date, booking_date),
		        booking_time = COALESCE($4::time, booking_time),
		        notes        = COALESCE($5, notes),
		        updated_at   = now()
		  WHERE id = $1
		    AND ($6::bigint IS NULL OR user_id = $6)
		    AND ($7::text = '' OR status = $7)
		    AND ($8::bigint IS NULL OR employee_id = $8)`,
		id, status, changes.BookingDate, changes.BookingTime, changes.Notes,
		guard.OwnerID, string(guard.ExpectStatus), guard.AssigneeID,
	)
	if err != nil {
		return fmt.Errorf("update booking: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}
