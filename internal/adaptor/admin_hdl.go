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

type AdminHandler struct {
	admin   usecase.AdminService
	booking usecase.BookingService
	expert  usecase.ExpertService
	log     *zap.Logger
}

func NewAdminHandler(admin usecase.AdminService, booking usecase.BookingService, expert usecase.ExpertService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{
		admin:   admin,
		booking: booking,
		expert:  expert,
		log:     log.With(zap.String("handler", "admin")),
	}
}

// Dashboard handles GET /api/admin/dashboard
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.admin.DashboardStats(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "get dashboard stats")
		return
	}

	utils.ResponseSuccess(w, "success", stats)
}

// GetAllBookings handles GET /api/admin/bookings
func (h *AdminHandler) GetAllBookings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 20),
	}

	bookings, err := h.booking.GetAllBookings(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.log, err, "get all bookings")
		return
	}

	utils.ResponseSuccess(w, "success", bookings)
}

// SetBookingStatus handles PATCH /api/admin/bookings/{id}/status
func (h *AdminHandler) SetBookingStatus(w http.ResponseWriter, r *http.Request) {
	bookingID := chi.URLParam(r, "id")
	if bookingID == "" {
		utils.ResponseBadRequest(w, "Booking ID is required", nil)
		return
	}

	var req request.SetBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	booking, err := h.booking.SetBookingStatus(r.Context(), bookingID, &req)
	if err != nil {
		writeServiceError(w, h.log, err, "set booking status")
		return
	}

	utils.ResponseSuccess(w, "success", booking)
}

// CreateExpert handles POST /api/admin/experts
func (h *AdminHandler) CreateExpert(w http.ResponseWriter, r *http.Request) {
	var req request.CreateExpertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	expert, err := h.expert.CreateExpert(r.Context(), &req)
	if err != nil {
		writeServiceError(w, h.log, err, "create expert")
		return
	}

	utils.ResponseCreated(w, "success", expert)
}

// DeleteExpert handles DELETE /api/admin/experts/{id}
func (h *AdminHandler) DeleteExpert(w http.ResponseWriter, r *http.Request) {
	expertID := chi.URLParam(r, "id")
	if expertID == "" {
		utils.ResponseBadRequest(w, "Expert ID is required", nil)
		return
	}

	if err := h.expert.DeleteExpert(r.Context(), expertID); err != nil {
		writeServiceError(w, h.log, err, "delete expert")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}
