package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{"pending to confirmed", BookingStatusPending, BookingStatusConfirmed, true},
		{"pending to cancelled", BookingStatusPending, BookingStatusCancelled, true},
		{"pending to completed", BookingStatusPending, BookingStatusCompleted, false},
		{"confirmed to completed", BookingStatusConfirmed, BookingStatusCompleted, true},
		{"confirmed to cancelled", BookingStatusConfirmed, BookingStatusCancelled, true},
		{"confirmed to pending", BookingStatusConfirmed, BookingStatusPending, false},
		{"completed to cancelled", BookingStatusCompleted, BookingStatusCancelled, false},
		{"cancelled to confirmed", BookingStatusCancelled, BookingStatusConfirmed, false},
		{"cancelled to pending", BookingStatusCancelled, BookingStatusPending, false},
		{"same state is not a transition", BookingStatusConfirmed, BookingStatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestBookingStatusTerminal(t *testing.T) {
	assert.False(t, BookingStatusPending.IsTerminal())
	assert.False(t, BookingStatusConfirmed.IsTerminal())
	assert.True(t, BookingStatusCompleted.IsTerminal())
	assert.True(t, BookingStatusCancelled.IsTerminal())
}

func TestBookingStatusCanBeCancelled(t *testing.T) {
	assert.True(t, BookingStatusPending.CanBeCancelled())
	assert.True(t, BookingStatusConfirmed.CanBeCancelled())
	assert.False(t, BookingStatusCompleted.CanBeCancelled())
	assert.False(t, BookingStatusCancelled.CanBeCancelled())
}

func TestBookingStatusOccupiesSlot(t *testing.T) {
	assert.True(t, BookingStatusConfirmed.OccupiesSlot(true))
	assert.True(t, BookingStatusCompleted.OccupiesSlot(false))
	assert.False(t, BookingStatusCancelled.OccupiesSlot(true))

	// Pending occupancy follows configuration.
	assert.True(t, BookingStatusPending.OccupiesSlot(true))
	assert.False(t, BookingStatusPending.OccupiesSlot(false))
}

func TestParseBookingStatus(t *testing.T) {
	status, err := ParseBookingStatus("confirmed")
	require.NoError(t, err)
	assert.Equal(t, BookingStatusConfirmed, status)

	_, err = ParseBookingStatus("approved")
	assert.Error(t, err)

	_, err = ParseBookingStatus("")
	assert.Error(t, err)
}
