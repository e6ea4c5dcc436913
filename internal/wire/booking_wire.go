package wire

import (
	"expert-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func BookingWire(router *chi.Mux, handler *adaptor.Handler, logger *zap.Logger) {
	// ==================== PUBLIC ROUTES ====================
	router.Route("/api/bookings", func(r chi.Router) {
		r.Post("/", handler.Booking.CreateBooking)
		r.Get("/", handler.Booking.GetBookings)
		r.Get("/slots", handler.Booking.GetBookedSlots)
		r.Patch("/{id}/cancel", handler.Booking.CancelBooking)
	})

	logger.Info("Booking routes wired")
}
