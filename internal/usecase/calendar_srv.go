package usecase

import (
	"context"
	"fmt"

	"expert-booking/internal/data/entity"
	"expert-booking/internal/data/repository"
	"expert-booking/internal/dto/response"
	"expert-booking/pkg/apperrors"
	"expert-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CalendarService is the read side of the calendar: it derives slot
// occupancy straight from the store on every call, so the answer is
// authoritative even when a viewer missed a slot event.
type CalendarService interface {
	OccupiedSlots(ctx context.Context, expertID, date string) (*response.DaySlotsResponse, error)
}

type calendarService struct {
	repo *repository.Repository
	cfg  utils.BookingConfig
	log  *zap.Logger
}

func NewCalendarService(repo *repository.Repository, cfg utils.BookingConfig, log *zap.Logger) CalendarService {
	return &calendarService{
		repo: repo,
		cfg:  cfg,
		log:  log.With(zap.String("service", "calendar")),
	}
}

func (s *calendarService) OccupiedSlots(ctx context.Context, expertID, date string) (*response.DaySlotsResponse, error) {
	id, err := uuid.Parse(expertID)
	if err != nil {
		return nil, fmt.Errorf("%w: expert ID %s", apperrors.ErrInvalidID, expertID)
	}
	if date == "" {
		return nil, apperrors.NewValidationError(map[string]string{"Date": "This field is required"})
	}

	expert, err := s.repo.Expert.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("check expert %s: %w", expertID, err)
	}
	if expert == nil {
		return nil, apperrors.ErrExpertNotFound
	}

	booked, err := s.repo.Booking.FindBookedSlots(ctx, id, date, s.blockingStatuses())
	if err != nil {
		s.log.Error("Failed to get booked slots",
			zap.Error(err),
			zap.String("expert_id", expertID),
			zap.String("date", date),
		)
		return nil, fmt.Errorf("get booked slots: %w", err)
	}

	bookedSet := make(map[string]struct{}, len(booked))
	for _, slot := range booked {
		bookedSet[slot] = struct{}{}
	}

	available := make([]string, 0, len(s.cfg.Slots))
	for _, slot := range s.cfg.Slots {
		if _, taken := bookedSet[slot]; !taken {
			available = append(available, slot)
		}
	}

	return &response.DaySlotsResponse{
		ExpertID:  expertID,
		Date:      date,
		Slots:     s.cfg.Slots,
		Booked:    booked,
		Available: available,
	}, nil
}

// blockingStatuses mirrors the predicate of the storage uniqueness index.
func (s *calendarService) blockingStatuses() []entity.BookingStatus {
	statuses := []entity.BookingStatus{
		entity.BookingStatusConfirmed,
		entity.BookingStatusCompleted,
	}
	if s.cfg.PendingBlocks {
		statuses = append(statuses, entity.BookingStatusPending)
	}
	return statuses
}
