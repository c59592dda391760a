package domain

import "time"

// Session is an issued bearer token bound to a user until ExpiresAt.
// Logout moves ExpiresAt to the logout instant; rows are never removed.
type Session struct {
	Token     string
	UserID    int64
	ExpiresAt time.Time
	CreatedAt time.Time
}

// ValidAt reports whether the session is still usable at now.
func (s *Session) ValidAt(now time.Time) bool {
	return now.Before(s.ExpiresAt)
}
