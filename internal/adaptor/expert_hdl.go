package adaptor

import (
	"net/http"

	"expert-booking/internal/dto/request"
	"expert-booking/internal/usecase"
	"expert-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ExpertHandler struct {
	service  usecase.ExpertService
	calendar usecase.CalendarService
	log      *zap.Logger
}

func NewExpertHandler(service usecase.ExpertService, calendar usecase.CalendarService, log *zap.Logger) *ExpertHandler {
	return &ExpertHandler{
		service:  service,
		calendar: calendar,
		log:      log.With(zap.String("handler", "expert")),
	}
}

// GetExperts handles GET /api/experts
func (h *ExpertHandler) GetExperts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 12),
	}

	var category, search *string
	if v := query.Get("category"); v != "" {
		category = &v
	}
	if v := query.Get("search"); v != "" {
		search = &v
	}

	experts, err := h.service.GetExperts(r.Context(), req, category, search)
	if err != nil {
		writeServiceError(w, h.log, err, "get experts")
		return
	}

	utils.ResponseSuccess(w, "success", experts)
}

// GetCategories handles GET /api/experts/categories
func (h *ExpertHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.GetCategories(r.Context())
	if err != nil {
		writeServiceError(w, h.log, err, "get categories")
		return
	}

	utils.ResponseSuccess(w, "success", categories)
}

// GetExpertByID handles GET /api/experts/{id}
func (h *ExpertHandler) GetExpertByID(w http.ResponseWriter, r *http.Request) {
	expertID := chi.URLParam(r, "id")
	if expertID == "" {
		utils.ResponseBadRequest(w, "Expert ID is required", nil)
		return
	}

	expert, err := h.service.GetExpertByID(r.Context(), expertID)
	if err != nil {
		writeServiceError(w, h.log, err, "get expert by ID")
		return
	}

	utils.ResponseSuccess(w, "success", expert)
}
