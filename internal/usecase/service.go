package usecase

import (
	"expert-booking/internal/data/repository"
	"expert-booking/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth     AuthService
	Expert   ExpertService
	Booking  BookingService
	Calendar CalendarService
	Admin    AdminService
}

func NewService(repo *repository.Repository, config *utils.Config, events SlotPublisher, log *zap.Logger) *Service {
	return &Service{
		Auth:     NewAuthService(repo, config, log),
		Expert:   NewExpertService(repo, log),
		Booking:  NewBookingService(repo, events, config.Booking, log),
		Calendar: NewCalendarService(repo, config.Booking, log),
		Admin:    NewAdminService(repo, log),
	}
}
