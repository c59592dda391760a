package domain

import "time"

// Review is a client testimonial. New reviews wait for moderation
// (Approved=false); deleting one only withdraws approval.
type Review struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Author    string    `json:"author"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
}
