package usecase

import (
	"context"
	"testing"

	"expert-booking/internal/data/repository"
	"expert-booking/pkg/apperrors"
	"expert-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type calendarFixture struct {
	booking  BookingService
	calendar CalendarService
	expertID uuid.UUID
}

func newCalendarFixture(cfg utils.BookingConfig) *calendarFixture {
	bookings := newFakeBookingRepo(cfg.PendingBlocks)
	experts := newFakeExpertRepo()

	repo := &repository.Repository{
		Expert:  experts,
		Booking: bookings,
	}

	return &calendarFixture{
		booking:  NewBookingService(repo, &recordingHub{}, cfg, zap.NewNop()),
		calendar: NewCalendarService(repo, cfg, zap.NewNop()),
		expertID: experts.add("Dr. Maya Putri", "Career Coaching"),
	}
}

func TestOccupiedSlotsReflectsBookings(t *testing.T) {
	f := newCalendarFixture(defaultBookingConfig())

	req := validCreateRequest(f.expertID)
	_, err := f.booking.CreateBooking(context.Background(), req)
	require.NoError(t, err)

	day, err := f.calendar.OccupiedSlots(context.Background(), f.expertID.String(), "2026-09-15")
	require.NoError(t, err)

	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, day.Slots)
	assert.Equal(t, []string{"10:00"}, day.Booked)
	assert.Equal(t, []string{"09:00", "11:00"}, day.Available)

	// A different date is untouched.
	other, err := f.calendar.OccupiedSlots(context.Background(), f.expertID.String(), "2026-09-16")
	require.NoError(t, err)
	assert.Empty(t, other.Booked)
	assert.Equal(t, day.Slots, other.Available)
}

func TestOccupiedSlotsAfterCancellation(t *testing.T) {
	f := newCalendarFixture(defaultBookingConfig())

	created, err := f.booking.CreateBooking(context.Background(), validCreateRequest(f.expertID))
	require.NoError(t, err)

	_, err = f.booking.CancelBooking(context.Background(), created.ID)
	require.NoError(t, err)

	day, err := f.calendar.OccupiedSlots(context.Background(), f.expertID.String(), "2026-09-15")
	require.NoError(t, err)
	assert.Empty(t, day.Booked, "cancelled bookings do not occupy slots")
}

func TestOccupiedSlotsPendingVisibilityFollowsConfig(t *testing.T) {
	cfg := defaultBookingConfig()
	cfg.AutoConfirm = false
	cfg.PendingBlocks = false
	f := newCalendarFixture(cfg)

	_, err := f.booking.CreateBooking(context.Background(), validCreateRequest(f.expertID))
	require.NoError(t, err)

	day, err := f.calendar.OccupiedSlots(context.Background(), f.expertID.String(), "2026-09-15")
	require.NoError(t, err)
	assert.Empty(t, day.Booked, "non-blocking pending bookings stay invisible to the calendar")

	// With blocking pending, the same booking occupies its slot.
	blocking := defaultBookingConfig()
	blocking.AutoConfirm = false
	g := newCalendarFixture(blocking)

	_, err = g.booking.CreateBooking(context.Background(), validCreateRequest(g.expertID))
	require.NoError(t, err)

	day, err = g.calendar.OccupiedSlots(context.Background(), g.expertID.String(), "2026-09-15")
	require.NoError(t, err)
	assert.Equal(t, []string{"10:00"}, day.Booked)
}

func TestOccupiedSlotsUnknownExpert(t *testing.T) {
	f := newCalendarFixture(defaultBookingConfig())

	_, err := f.calendar.OccupiedSlots(context.Background(), uuid.New().String(), "2026-09-15")
	assert.ErrorIs(t, err, apperrors.ErrExpertNotFound)
}

func TestOccupiedSlotsRequiresDate(t *testing.T) {
	f := newCalendarFixture(defaultBookingConfig())

	_, err := f.calendar.OccupiedSlots(context.Background(), f.expertID.String(), "")
	assert.True(t, apperrors.IsValidation(err))
}
