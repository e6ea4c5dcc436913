package adaptor

import (
	"encoding/json"
	"net/http"

	"expert-booking/internal/dto/request"
	"expert-booking/internal/usecase"
	"expert-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BookingHandler struct {
	service  usecase.BookingService
	calendar usecase.CalendarService
	log      *zap.Logger
}

func NewBookingHandler(service usecase.BookingService, calendar usecase.CalendarService, log *zap.Logger) *BookingHandler {
	return &BookingHandler{
		service:  service,
		calendar: calendar,
		log:      log.With(zap.String("handler", "booking")),
	}
}

// CreateBooking handles POST /api/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	var req request.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.service.CreateBooking(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create booking")
		return
	}

	utils.ResponseCreated(w, "success", booking)
}

// GetBookings handles GET /api/bookings?email=...
func (h *BookingHandler) GetBookings(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")

	bookings, err := h.service.GetBookings(r.Context(), email)
	if err != nil {
		writeServiceError(w, h.log, err, "get bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// GetBookedSlots handles GET /api/bookings/slots?expert_id=...&date=...
func (h *BookingHandler) GetBookedSlots(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	expertID := query.Get("expert_id")
	date := query.Get("date")

	if expertID == "" || date == "" {
		utils.ResponseBadRequest(w, "expert_id and date are required", nil)
		return
	}

	slots, err := h.calendar.OccupiedSlots(r.Context(), expertID, date)
	if err != nil {
		writeServiceError(w, h.log, err, "get booked slots")
		return
	}

	utils.ResponseSuccess(w, "success", slots)
}

// CancelBooking handles PATCH /api/bookings/{id}/cancel
func (h *BookingHandler) CancelBooking(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	booking, err := h.service.CancelBooking(r.Context(), bookingID)
	if err != nil {
		writeServiceError(w, h.log, err, "cancel booking")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}
