package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"expert-booking/internal/data/entity"
	"expert-booking/internal/hub"
	"expert-booking/pkg/apperrors"

	"github.com/google/uuid"
)

// fakeBookingRepo keeps bookings in memory and enforces the same slot-key
// uniqueness contract the Postgres partial index provides: the occupancy
// check and the insert happen under one lock.
type fakeBookingRepo struct {
	mu            sync.Mutex
	bookings      map[uuid.UUID]entity.Booking
	pendingBlocks bool
	insertErr     error

	// beforeUpdateStatus, when set, runs before UpdateStatus takes the
	// lock, letting a test commit a competing write in the window between
	// a caller's read and its status write.
	beforeUpdateStatus func()
}

func newFakeBookingRepo(pendingBlocks bool) *fakeBookingRepo {
	return &fakeBookingRepo{
		bookings:      make(map[uuid.UUID]entity.Booking),
		pendingBlocks: pendingBlocks,
	}
}

func (r *fakeBookingRepo) InsertIfFree(ctx context.Context, booking *entity.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.insertErr != nil {
		return r.insertErr
	}

	for _, existing := range r.bookings {
		if existing.ExpertID == booking.ExpertID &&
			existing.Date == booking.Date &&
			existing.Slot == booking.Slot &&
			existing.Status.OccupiesSlot(r.pendingBlocks) {
			return apperrors.ErrSlotTaken
		}
	}

	r.bookings[booking.ID] = *booking
	return nil
}

func (r *fakeBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.bookings[id]
	if !ok {
		return nil, nil
	}
	return &booking, nil
}

func (r *fakeBookingRepo) FindByEmail(ctx context.Context, email string) ([]*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*entity.Booking
	for id := range r.bookings {
		booking := r.bookings[id]
		if booking.ClientEmail == email {
			result = append(result, &booking)
		}
	}
	return result, nil
}

func (r *fakeBookingRepo) FindByExpertAndDate(ctx context.Context, expertID uuid.UUID, date string) ([]*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*entity.Booking
	for id := range r.bookings {
		booking := r.bookings[id]
		if booking.ExpertID == expertID && booking.Date == date {
			result = append(result, &booking)
		}
	}
	return result, nil
}

func (r *fakeBookingRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*entity.Booking
	for id := range r.bookings {
		booking := r.bookings[id]
		result = append(result, &booking)
	}
	if offset > len(result) {
		return nil, nil
	}
	result = result[offset:]
	if limit < len(result) {
		result = result[:limit]
	}
	return result, nil
}

func (r *fakeBookingRepo) FindRecent(ctx context.Context, limit int) ([]*entity.Booking, error) {
	return r.FindAll(ctx, limit, 0)
}

func (r *fakeBookingRepo) CountAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.bookings)), nil
}

func (r *fakeBookingRepo) CountByStatus(ctx context.Context, status entity.BookingStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for _, booking := range r.bookings {
		if booking.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *fakeBookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, from, to entity.BookingStatus) error {
	if r.beforeUpdateStatus != nil {
		r.beforeUpdateStatus()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	booking, ok := r.bookings[id]
	if !ok {
		return apperrors.ErrBookingNotFound
	}
	if booking.Status != from {
		return fmt.Errorf("%w: booking %s is %s, not %s",
			apperrors.ErrInvalidTransition, id.String(), booking.Status, from)
	}
	booking.Status = to
	booking.UpdatedAt = time.Now()
	r.bookings[id] = booking
	return nil
}

func (r *fakeBookingRepo) FindBookedSlots(ctx context.Context, expertID uuid.UUID, date string, blocking []entity.BookingStatus) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	blocked := make(map[entity.BookingStatus]struct{}, len(blocking))
	for _, status := range blocking {
		blocked[status] = struct{}{}
	}

	var slots []string
	for _, booking := range r.bookings {
		if booking.ExpertID != expertID || booking.Date != date {
			continue
		}
		if _, ok := blocked[booking.Status]; ok {
			slots = append(slots, booking.Slot)
		}
	}
	return slots, nil
}

type fakeExpertRepo struct {
	mu      sync.Mutex
	experts map[uuid.UUID]entity.Expert
}

func newFakeExpertRepo() *fakeExpertRepo {
	return &fakeExpertRepo{experts: make(map[uuid.UUID]entity.Expert)}
}

func (r *fakeExpertRepo) add(name, category string) uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	expert := entity.Expert{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:     name,
		Category: category,
	}
	r.experts[expert.ID] = expert
	return expert.ID
}

func (r *fakeExpertRepo) Create(ctx context.Context, expert *entity.Expert) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.experts[expert.ID] = *expert
	return nil
}

func (r *fakeExpertRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Expert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	expert, ok := r.experts[id]
	if !ok {
		return nil, nil
	}
	return &expert, nil
}

func (r *fakeExpertRepo) FindAll(ctx context.Context, limit, offset int, category, search *string) ([]*entity.Expert, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*entity.Expert
	for id := range r.experts {
		expert := r.experts[id]
		if category != nil && expert.Category != *category {
			continue
		}
		result = append(result, &expert)
	}
	return result, nil
}

func (r *fakeExpertRepo) CountAll(ctx context.Context, category, search *string) (int64, error) {
	experts, _ := r.FindAll(ctx, 0, 0, category, search)
	return int64(len(experts)), nil
}

func (r *fakeExpertRepo) FindCategories(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]struct{})
	var categories []string
	for _, expert := range r.experts {
		if _, ok := seen[expert.Category]; !ok {
			seen[expert.Category] = struct{}{}
			categories = append(categories, expert.Category)
		}
	}
	return categories, nil
}

func (r *fakeExpertRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.experts, id)
	return nil
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]entity.User)}
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id := range r.users {
		user := r.users[id]
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) CountAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]entity.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[uuid.UUID]entity.Session)}
}

func (r *fakeSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = *session
	return nil
}

func (r *fakeSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id := range r.sessions {
		session := r.sessions[id]
		if session.Token.String() == token &&
			session.RevokedAt == nil &&
			session.ExpiresAt.After(time.Now()) {
			return &session, nil
		}
	}
	return nil, nil
}

func (r *fakeSessionRepo) Revoke(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for id, session := range r.sessions {
		if session.Token.String() == token && session.RevokedAt == nil {
			session.RevokedAt = &now
			r.sessions[id] = session
		}
	}
	return nil
}

func (r *fakeSessionRepo) RevokeAllUserSessions(ctx context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	for id, session := range r.sessions {
		if session.UserID == userID && session.RevokedAt == nil {
			session.RevokedAt = &now
			r.sessions[id] = session
		}
	}
	return nil
}

// recordingHub captures published events so tests can assert on what the
// booking service emitted.
type recordingHub struct {
	mu     sync.Mutex
	events []hub.SlotChanged
}

func (h *recordingHub) Publish(event hub.SlotChanged) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.events = append(h.events, event)
}

func (h *recordingHub) published() []hub.SlotChanged {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]hub.SlotChanged, len(h.events))
	copy(out, h.events)
	return out
}
