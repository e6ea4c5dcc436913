package adaptor

import (
	"errors"
	"net/http"

	"expert-booking/internal/hub"
	"expert-booking/internal/usecase"
	"expert-booking/pkg/apperrors"
	"expert-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth     *AuthHandler
	Expert   *ExpertHandler
	Booking  *BookingHandler
	Admin    *AdminHandler
	Realtime *RealtimeHandler
}

func NewHandler(service *usecase.Service, events *hub.Hub, log *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(service.Auth, log),
		Expert:   NewExpertHandler(service.Expert, service.Calendar, log),
		Booking:  NewBookingHandler(service.Booking, service.Calendar, log),
		Admin:    NewAdminHandler(service.Admin, service.Booking, service.Expert, log),
		Realtime: NewRealtimeHandler(events, log),
	}
}

// writeServiceError maps domain errors to the JSON envelope. The conflict
// case gets its own status code so clients can offer "pick another slot"
// instead of a blind retry.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	var ve *apperrors.ValidationError
	switch {
	case errors.As(err, &ve):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, "Validation failed", ve.Fields)

	case errors.Is(err, apperrors.ErrSlotTaken):
		log.Warn(operation+" failed - slot conflict", zap.Error(err))
		utils.ResponseConflict(w, "This time slot has already been booked")

	case errors.Is(err, apperrors.ErrBookingNotFound),
		errors.Is(err, apperrors.ErrExpertNotFound),
		errors.Is(err, apperrors.ErrUserNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, err.Error())

	case errors.Is(err, apperrors.ErrInvalidTransition):
		log.Warn(operation+" failed - invalid transition", zap.Error(err))
		utils.ResponseUnprocessable(w, err.Error())

	case errors.Is(err, apperrors.ErrUnauthorized):
		log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, "Invalid credentials")

	case errors.Is(err, apperrors.ErrInvalidID),
		errors.Is(err, apperrors.ErrEmailTaken):
		log.Warn(operation+" failed - bad input", zap.Error(err))
		utils.ResponseBadRequest(w, err.Error(), nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
