package response

import (
	"time"

	"expert-booking/internal/data/entity"
)

type BookingResponse struct {
	ID          string               `json:"id"`
	BookingRef  string               `json:"booking_ref"`
	ExpertID    string               `json:"expert_id"`
	ExpertName  string               `json:"expert_name,omitempty"`
	Date        string               `json:"date"`
	Slot        string               `json:"slot"`
	ClientName  string               `json:"client_name"`
	ClientEmail string               `json:"client_email"`
	ClientPhone string               `json:"client_phone"`
	Notes       *string              `json:"notes,omitempty"`
	Status      entity.BookingStatus `json:"status"`
	CreatedAt   time.Time            `json:"created_at"`
}

// DaySlotsResponse lists slot occupancy for one expert on one date.
type DaySlotsResponse struct {
	ExpertID  string   `json:"expert_id"`
	Date      string   `json:"date"`
	Slots     []string `json:"slots"`
	Booked    []string `json:"booked"`
	Available []string `json:"available"`
}

func BookingToResponse(booking *entity.Booking, expertName string) BookingResponse {
	return BookingResponse{
		ID:          booking.ID.String(),
		BookingRef:  booking.BookingRef,
		ExpertID:    booking.ExpertID.String(),
		ExpertName:  expertName,
		Date:        booking.Date,
		Slot:        booking.Slot,
		ClientName:  booking.ClientName,
		ClientEmail: booking.ClientEmail,
		ClientPhone: booking.ClientPhone,
		Notes:       booking.Notes,
		Status:      booking.Status,
		CreatedAt:   booking.CreatedAt,
	}
}
