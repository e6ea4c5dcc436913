package entity

import (
	"fmt"

	"github.com/google/uuid"
)

// BookingStatus represents the current state of a booking in its lifecycle.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// validTransitions defines the state machine for booking status changes.
// Completed and cancelled are terminal: there is no way back out, so a
// cancelled booking can never re-occupy its slot.
var validTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusCompleted, BookingStatusCancelled},
	BookingStatusCompleted: {},
	BookingStatusCancelled: {},
}

// IsValid returns true if the status is a recognized booking status.
func (s BookingStatus) IsValid() bool {
	_, exists := validTransitions[s]
	return exists
}

// CanTransitionTo returns true if a transition from this status to the target is allowed.
func (s BookingStatus) CanTransitionTo(target BookingStatus) bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return false
	}
	for _, t := range allowed {
		if t == target {
			return true
		}
	}
	return false
}

// IsTerminal returns true if no further transitions are possible from this status.
func (s BookingStatus) IsTerminal() bool {
	allowed, exists := validTransitions[s]
	if !exists {
		return true
	}
	return len(allowed) == 0
}

// CanBeCancelled returns true if the booking can be cancelled from this status.
func (s BookingStatus) CanBeCancelled() bool {
	return s.CanTransitionTo(BookingStatusCancelled)
}

// OccupiesSlot reports whether a booking in this status holds its
// (expert, date, slot) key. pendingBlocks mirrors the deployment policy
// used to build the storage uniqueness index.
func (s BookingStatus) OccupiesSlot(pendingBlocks bool) bool {
	switch s {
	case BookingStatusPending:
		return pendingBlocks
	case BookingStatusConfirmed, BookingStatusCompleted:
		return true
	default:
		return false
	}
}

func (s BookingStatus) String() string {
	return string(s)
}

// ParseBookingStatus converts a string to a BookingStatus, returning an error if invalid.
func ParseBookingStatus(s string) (BookingStatus, error) {
	status := BookingStatus(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid booking status: %s", s)
	}
	return status, nil
}

// Booking is one reserved (expert, date, slot) key plus the client who
// holds it. Dates are YYYY-MM-DD day keys and slots HH:MM labels; the
// core does no time zone arithmetic on either.
type Booking struct {
	Base
	BookingRef  string        `db:"booking_ref"`
	ExpertID    uuid.UUID     `db:"expert_id"`
	Date        string        `db:"booking_date"`
	Slot        string        `db:"slot"`
	ClientName  string        `db:"client_name"`
	ClientEmail string        `db:"client_email"`
	ClientPhone string        `db:"client_phone"`
	Notes       *string       `db:"notes"`
	Status      BookingStatus `db:"status"`
}
