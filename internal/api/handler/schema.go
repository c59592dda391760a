package handler

import (
	"github.com/shopspring/decimal"

	"github.com/salon/booking-api/internal/core/domain"
)

// --- Auth ---

type authActionRequest struct {
	Action string `json:"action"`
}

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,max=72"`
	FullName string `json:"full_name" validate:"required"`
	Phone    string `json:"phone"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerResponse struct {
	Success      bool   `json:"success"`
	SessionToken string `json:"session_token"`
	UserID       int64  `json:"user_id"`
}

type userSummary struct {
	ID       int64       `json:"id"`
	FullName string      `json:"full_name"`
	Role     domain.Role `json:"role"`
}

type loginResponse struct {
	Success      bool        `json:"success"`
	SessionToken string      `json:"session_token"`
	User         userSummary `json:"user"`
}

type userProfile struct {
	ID       int64       `json:"id"`
	Email    string      `json:"email"`
	FullName string      `json:"full_name"`
	Phone    string      `json:"phone"`
	Role     domain.Role `json:"role"`
}

type profileResponse struct {
	User userProfile `json:"user"`
}

type successResponse struct {
	Success bool `json:"success"`
}

// --- Bookings ---

type createBookingRequest struct {
	ClientName  string `json:"client_name" validate:"required"`
	Phone       string `json:"phone" validate:"required"`
	Service     string `json:"service" validate:"required"`
	Master      string `json:"master"`
	EmployeeID  *int64 `json:"employee_id" validate:"omitempty,gt=0"`
	BookingDate string `json:"booking_date" validate:"required,datetime=2006-01-02"`
	BookingTime string `json:"booking_time" validate:"required,datetime=15:04"`
	Notes       string `json:"notes"`
}

type updateBookingRequest struct {
	ID          int64   `json:"id" validate:"required,gt=0"`
	Status      *string `json:"status" validate:"omitempty,oneof=pending confirmed completed cancelled"`
	BookingDate *string `json:"booking_date" validate:"omitempty,datetime=2006-01-02"`
	BookingTime *string `json:"booking_time" validate:"omitempty,datetime=15:04"`
	Notes       *string `json:"notes"`
}

type bookingResponse struct {
	Booking *domain.Booking `json:"booking"`
}

type bookingListResponse struct {
	Bookings []*domain.Booking `json:"bookings"`
}

type bookingCreatedResponse struct {
	Success   bool  `json:"success"`
	BookingID int64 `json:"booking_id"`
}

// --- Reviews ---

type createReviewRequest struct {
	Author  string `json:"author" validate:"required"`
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

type moderateReviewRequest struct {
	ID       int64 `json:"id" validate:"required,gt=0"`
	Approved *bool `json:"approved" validate:"required"`
}

type reviewListResponse struct {
	Reviews []*domain.Review `json:"reviews"`
}

type reviewCreatedResponse struct {
	Success  bool  `json:"success"`
	ReviewID int64 `json:"review_id"`
}

// --- Feedback ---

type submitFeedbackRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone"`
	Message string `json:"message" validate:"required"`
}

type markFeedbackRequest struct {
	ID     int64 `json:"id" validate:"required,gt=0"`
	IsRead *bool `json:"is_read" validate:"required"`
}

type feedbackListResponse struct {
	Feedback []*domain.Feedback `json:"feedback"`
}

type feedbackCreatedResponse struct {
	Success    bool  `json:"success"`
	FeedbackID int64 `json:"feedback_id"`
}

// --- Catalog services ---

type serviceRequest struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Duration    int             `json:"duration" validate:"required,gt=0"`
	Price       decimal.Decimal `json:"price" swaggertype:"string"`
	Category    string          `json:"category"`
	IsActive    *bool           `json:"is_active"`
}

type serviceListResponse struct {
	Services []*domain.Service `json:"services"`
}

type categoryListResponse struct {
	Categories []string `json:"categories"`
}

// statusResponse mirrors the {"status": "..."} acknowledgements of the
// catalog, user and schedule surfaces.
type statusResponse struct {
	ID     int64  `json:"id,omitempty"`
	Status string `json:"status"`
}

// --- Users ---

type createUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"required"`
	Phone    string `json:"phone"`
	Role     string `json:"role" validate:"omitempty,oneof=client employee admin"`
}

type updateUserRequest struct {
	ID       int64   `json:"id" validate:"required,gt=0"`
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Role     *string `json:"role" validate:"omitempty,oneof=client employee admin"`
}

type userResponse struct {
	User *domain.User `json:"user"`
}

type userListResponse struct {
	Users []*domain.User `json:"users"`
}

type userCreatedResponse struct {
	User              *domain.User `json:"user"`
	TemporaryPassword string       `json:"temporary_password"`
}

// --- Schedule ---

type scheduleRequest struct {
	EmployeeID int64  `json:"employee_id" validate:"required,gt=0"`
	DayOfWeek  *int   `json:"day_of_week" validate:"required,min=0,max=6"`
	StartTime  string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime    string `json:"end_time" validate:"required,datetime=15:04"`
}

type scheduleListResponse struct {
	Schedule []*domain.ScheduleEntry `json:"schedule"`
}
