package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/salon/booking-api/internal/core/domain"
	"github.com/salon/booking-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct {
	mu     sync.Mutex
	byID   map[int64]*domain.User
	nextID int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byID: make(map[int64]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	clone := *u
	return &clone
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return cloneUser(u), nil
}

// Create mirrors the unique index on users.email.
func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == user.Email {
			return domain.ErrDuplicateEmail
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	r.byID[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) UpdatePasswordHash(_ context.Context, id int64, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	u.PasswordHash = hash
	return nil
}

// Delete drops the account from view, like the deactivated_at filter.
func (r *stubUserRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *stubUserRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

func (r *stubUserRepo) List(_ context.Context, f ports.UserFilter) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.User
	for _, u := range r.byID {
		if f.Role != "" && u.Role != f.Role {
			continue
		}
		out = append(out, cloneUser(u))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, id int64, c ports.UserChanges) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if c.FullName != nil {
		u.FullName = *c.FullName
	}
	if c.Phone != nil {
		u.Phone = *c.Phone
	}
	if c.Email != nil {
		u.Email = *c.Email
	}
	if c.Role != nil {
		u.Role = *c.Role
	}
	return cloneUser(u), nil
}

type stubSessionRepo struct {
	mu      sync.Mutex
	byToken map[string]*domain.Session
}

func newStubSessionRepo() *stubSessionRepo {
	return &stubSessionRepo{byToken: make(map[string]*domain.Session)}
}

func (r *stubSessionRepo) Create(_ context.Context, s *domain.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *s
	r.byToken[s.Token] = &clone
	return nil
}

func (r *stubSessionRepo) FindActive(_ context.Context, token string, now time.Time) (*domain.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.byToken[token]
	if !ok || !s.ValidAt(now) {
		return nil, domain.ErrSessionNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubSessionRepo) Expire(_ context.Context, token string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.byToken[token]; ok && s.ExpiresAt.After(at) {
		s.ExpiresAt = at
	}
	return nil
}

func (r *stubSessionRepo) get(token string) *domain.Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byToken[token]
}

type stubBookingRepo struct {
	mu     sync.Mutex
	byID   map[int64]*domain.Booking
	nextID int64
	// beforeUpdate runs inside Update before the guard is checked, so tests
	// can simulate a concurrent writer.
	beforeUpdate func(b *domain.Booking)
}

func newStubBookingRepo() *stubBookingRepo {
	return &stubBookingRepo{byID: make(map[int64]*domain.Booking)}
}

func (r *stubBookingRepo) Create(_ context.Context, b *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	b.ID = r.nextID
	clone := *b
	r.byID[b.ID] = &clone
	return nil
}

func (r *stubBookingRepo) FindByID(_ context.Context, id int64) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *stubBookingRepo) List(_ context.Context, f ports.BookingFilter) ([]*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Booking
	for _, b := range r.byID {
		if f.UserID != nil && !b.OwnedBy(*f.UserID) {
			continue
		}
		if f.EmployeeID != nil && (b.EmployeeID == nil || *b.EmployeeID != *f.EmployeeID) {
			continue
		}
		if f.Status != "" && b.Status != f.Status {
			continue
		}
		clone := *b
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubBookingRepo) Update(_ context.Context, id int64, c domain.BookingChanges, g ports.BookingGuard) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.byID[id]
	if !ok {
		return domain.ErrConflict
	}
	if r.beforeUpdate != nil {
		r.beforeUpdate(b)
	}
	if g.OwnerID != nil && !b.OwnedBy(*g.OwnerID) {
		return domain.ErrConflict
	}
	if g.AssigneeID != nil && (b.EmployeeID == nil || *b.EmployeeID != *g.AssigneeID) {
		return domain.ErrConflict
	}
	if g.ExpectStatus != "" && b.Status != g.ExpectStatus {
		return domain.ErrConflict
	}
	if c.Status != nil {
		b.Status = *c.Status
	}
	if c.BookingDate != nil {
		b.BookingDate = *c.BookingDate
	}
	if c.BookingTime != nil {
		b.BookingTime = *c.BookingTime
	}
	if c.Notes != nil {
		b.Notes = *c.Notes
	}
	return nil
}

func (r *stubBookingRepo) get(id int64) *domain.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[id]
}

type stubReviewRepo struct {
	byID   map[int64]*domain.Review
	nextID int64
}

func newStubReviewRepo() *stubReviewRepo {
	return &stubReviewRepo{byID: make(map[int64]*domain.Review)}
}

func (r *stubReviewRepo) Create(_ context.Context, rv *domain.Review) error {
	r.nextID++
	rv.ID = r.nextID
	clone := *rv
	r.byID[rv.ID] = &clone
	return nil
}

func (r *stubReviewRepo) FindByID(_ context.Context, id int64) (*domain.Review, error) {
	rv, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *rv
	return &clone, nil
}

func (r *stubReviewRepo) List(_ context.Context, onlyApproved bool) ([]*domain.Review, error) {
	var out []*domain.Review
	for _, rv := range r.byID {
		if onlyApproved && !rv.Approved {
			continue
		}
		clone := *rv
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *stubReviewRepo) SetApproved(_ context.Context, id int64, approved bool, ownerID *int64) error {
	rv, ok := r.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	if ownerID != nil && rv.UserID != *ownerID {
		return domain.ErrConflict
	}
	rv.Approved = approved
	return nil
}

type stubFeedbackRepo struct {
	items []*domain.Feedback
}

func (r *stubFeedbackRepo) Create(_ context.Context, f *domain.Feedback) error {
	f.ID = int64(len(r.items) + 1)
	clone := *f
	r.items = append(r.items, &clone)
	return nil
}

func (r *stubFeedbackRepo) List(_ context.Context) ([]*domain.Feedback, error) {
	return r.items, nil
}

func (r *stubFeedbackRepo) SetRead(_ context.Context, id int64, read bool) error {
	for _, f := range r.items {
		if f.ID == id {
			f.IsRead = read
			return nil
		}
	}
	return domain.ErrNotFound
}

type stubCatalogRepo struct {
	byID   map[int64]*domain.Service
	nextID int64
}

func newStubCatalogRepo() *stubCatalogRepo {
	return &stubCatalogRepo{byID: make(map[int64]*domain.Service)}
}

func (r *stubCatalogRepo) ListActive(_ context.Context) ([]*domain.Service, error) {
	var out []*domain.Service
	for _, s := range r.byID {
		if s.IsActive {
			clone := *s
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *stubCatalogRepo) Categories(_ context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, s := range r.byID {
		if s.IsActive && s.Category != "" && !seen[s.Category] {
			seen[s.Category] = true
			out = append(out, s.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (r *stubCatalogRepo) Create(_ context.Context, s *domain.Service) error {
	r.nextID++
	s.ID = r.nextID
	clone := *s
	r.byID[s.ID] = &clone
	return nil
}

func (r *stubCatalogRepo) Update(_ context.Context, s *domain.Service) error {
	if _, ok := r.byID[s.ID]; !ok {
		return domain.ErrNotFound
	}
	clone := *s
	r.byID[s.ID] = &clone
	return nil
}

func (r *stubCatalogRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

type stubScheduleRepo struct {
	entries map[[2]int64]*domain.ScheduleEntry
	nextID  int64
}

func newStubScheduleRepo() *stubScheduleRepo {
	return &stubScheduleRepo{entries: make(map[[2]int64]*domain.ScheduleEntry)}
}

func (r *stubScheduleRepo) ListActive(_ context.Context, employeeID *int64) ([]*domain.ScheduleEntry, error) {
	var out []*domain.ScheduleEntry
	for _, e := range r.entries {
		if !e.IsActive || (employeeID != nil && e.EmployeeID != *employeeID) {
			continue
		}
		clone := *e
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DayOfWeek < out[j].DayOfWeek })
	return out, nil
}

func (r *stubScheduleRepo) Upsert(_ context.Context, e *domain.ScheduleEntry) error {
	key := [2]int64{e.EmployeeID, int64(e.DayOfWeek)}
	if existing, ok := r.entries[key]; ok {
		e.ID = existing.ID
	} else {
		r.nextID++
		e.ID = r.nextID
	}
	clone := *e
	r.entries[key] = &clone
	return nil
}

// ---------------------------------------------------------------------------
// Identities
// ---------------------------------------------------------------------------

func client(id int64) *domain.Identity   { return &domain.Identity{UserID: id, Role: domain.RoleClient} }
func employee(id int64) *domain.Identity { return &domain.Identity{UserID: id, Role: domain.RoleEmployee} }
func admin(id int64) *domain.Identity    { return &domain.Identity{UserID: id, Role: domain.RoleAdmin} }

func int64Ptr(v int64) *int64 { return &v }
