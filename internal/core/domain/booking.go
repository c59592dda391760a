package domain

import "time"

// BookingStatus represents the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// bookingTransitions defines the allowed state machine transitions.
// Completed and cancelled are terminal.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCompleted, BookingCancelled},
}

// ParseBookingStatus accepts only the closed set of booking statuses.
func ParseBookingStatus(s string) (BookingStatus, bool) {
	switch st := BookingStatus(s); st {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return st, true
	}
	return "", false
}

// CanTransitionTo reports whether a transition from s to next is valid.
// Staying in the same status is always allowed so repeated writes are no-ops.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Booking is a client appointment. UserID is nil for anonymous bookings and
// EmployeeID is nil until a master is assigned.
type Booking struct {
	ID          int64         `json:"id"`
	UserID      *int64        `json:"user_id"`
	EmployeeID  *int64        `json:"employee_id"`
	ClientName  string        `json:"client_name"`
	Phone       string        `json:"phone"`
	Service     string        `json:"service"`
	Master      string        `json:"master"`
	BookingDate string        `json:"booking_date"`
	BookingTime string        `json:"booking_time"`
	Notes       string        `json:"notes,omitempty"`
	Status      BookingStatus `json:"status"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// OwnedBy reports whether the booking belongs to userID.
func (b *Booking) OwnedBy(userID int64) bool {
	return b.UserID != nil && *b.UserID == userID
}

// BookingChanges carries the optional fields of a booking update.
type BookingChanges struct {
	Status      *BookingStatus
	BookingDate *string
	BookingTime *string
	Notes       *string
}
