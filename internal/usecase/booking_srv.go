package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"expert-booking/internal/data/entity"
	"expert-booking/internal/data/repository"
	"expert-booking/internal/dto/request"
	"expert-booking/internal/dto/response"
	"expert-booking/internal/hub"
	"expert-booking/pkg/apperrors"
	"expert-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SlotPublisher is the hub surface the booking service needs. Publish is
// fire-and-forget; a delivery problem never surfaces here.
type SlotPublisher interface {
	Publish(event hub.SlotChanged)
}

type BookingService interface {
	CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	CancelBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	SetBookingStatus(ctx context.Context, bookingID string, req *request.SetBookingStatusRequest) (*response.BookingResponse, error)
	GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error)
	GetBookings(ctx context.Context, email string) ([]response.BookingResponse, error)
	GetAllBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
}

type bookingService struct {
	repo   *repository.Repository
	events SlotPublisher
	cfg    utils.BookingConfig
	log    *zap.Logger
}

func NewBookingService(repo *repository.Repository, events SlotPublisher, cfg utils.BookingConfig, log *zap.Logger) BookingService {
	return &bookingService{
		repo:   repo,
		events: events,
		cfg:    cfg,
		log:    log.With(zap.String("service", "booking")),
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	// Validate before touching the store; an invalid request must not
	// cause a write or an event.
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, apperrors.NewValidationError(errs)
	}

	if !s.isKnownSlot(req.Slot) {
		return nil, apperrors.NewValidationError(map[string]string{
			"Slot": fmt.Sprintf("Unknown slot label %q", req.Slot),
		})
	}

	expertID, err := uuid.Parse(req.ExpertID)
	if err != nil {
		return nil, fmt.Errorf("%w: expert ID %s", apperrors.ErrInvalidID, req.ExpertID)
	}

	expert, err := s.repo.Expert.FindByID(ctx, expertID)
	if err != nil {
		return nil, fmt.Errorf("check expert %s: %w", req.ExpertID, err)
	}
	if expert == nil {
		return nil, apperrors.ErrExpertNotFound
	}

	status := entity.BookingStatusPending
	if s.cfg.AutoConfirm {
		status = entity.BookingStatusConfirmed
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingRef:  utils.GenerateBookingRef(),
		ExpertID:    expertID,
		Date:        req.Date,
		Slot:        req.Slot,
		ClientName:  req.ClientName,
		ClientEmail: req.ClientEmail,
		ClientPhone: req.ClientPhone,
		Notes:       req.Notes,
		Status:      status,
	}

	// One atomic insert decides the race. A conflict means the slot is
	// genuinely occupied, so there is nothing to retry here - the caller
	// gets the conflict and picks another slot.
	if err := s.repo.Booking.InsertIfFree(ctx, booking); err != nil {
		if err == apperrors.ErrSlotTaken {
			return nil, err
		}
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("expert_id", req.ExpertID),
			zap.String("date", req.Date),
			zap.String("slot", req.Slot),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.events.Publish(hub.SlotChanged{
		ExpertID: expertID,
		Date:     booking.Date,
		Slot:     booking.Slot,
		Status:   booking.Status,
	})

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("booking_ref", booking.BookingRef),
		zap.String("expert_id", req.ExpertID),
		zap.String("date", booking.Date),
		zap.String("slot", booking.Slot),
		zap.String("status", string(booking.Status)),
	)

	resp := response.BookingToResponse(booking, expert.Name)
	return &resp, nil
}

func (s *bookingService) CancelBooking(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: booking ID %s", apperrors.ErrInvalidID, bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return nil, apperrors.ErrBookingNotFound
	}

	if !booking.Status.CanBeCancelled() {
		return nil, fmt.Errorf("%w: cannot cancel a %s booking", apperrors.ErrInvalidTransition, booking.Status)
	}

	// Compare-and-set against the status we validated; a concurrent
	// status change fails the write instead of being overwritten.
	if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, booking.Status, entity.BookingStatusCancelled); err != nil {
		if errors.Is(err, apperrors.ErrInvalidTransition) || errors.Is(err, apperrors.ErrBookingNotFound) {
			return nil, err
		}
		s.log.Error("Failed to cancel booking",
			zap.Error(err),
			zap.String("booking_id", bookingID),
		)
		return nil, fmt.Errorf("cancel booking %s: %w", bookingID, err)
	}
	booking.Status = entity.BookingStatusCancelled

	// Cancelling frees the key; tell every viewer the slot opened up.
	s.events.Publish(hub.SlotChanged{
		ExpertID: booking.ExpertID,
		Date:     booking.Date,
		Slot:     booking.Slot,
		Status:   booking.Status,
	})

	s.log.Info("Booking cancelled",
		zap.String("booking_id", bookingID),
		zap.String("booking_ref", booking.BookingRef),
	)

	return s.withExpertName(ctx, booking), nil
}

func (s *bookingService) SetBookingStatus(ctx context.Context, bookingID string, req *request.SetBookingStatusRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Set booking status validation failed", zap.Any("errors", errs))
		return nil, apperrors.NewValidationError(errs)
	}

	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: booking ID %s", apperrors.ErrInvalidID, bookingID)
	}

	target, err := entity.ParseBookingStatus(req.Status)
	if err != nil {
		return nil, apperrors.NewValidationError(map[string]string{"Status": err.Error()})
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return nil, apperrors.ErrBookingNotFound
	}

	if !booking.Status.CanTransitionTo(target) {
		return nil, fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidTransition, booking.Status, target)
	}

	if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, booking.Status, target); err != nil {
		if errors.Is(err, apperrors.ErrInvalidTransition) || errors.Is(err, apperrors.ErrBookingNotFound) {
			return nil, err
		}
		s.log.Error("Failed to set booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID),
			zap.String("status", string(target)),
		)
		return nil, fmt.Errorf("set booking %s status: %w", bookingID, err)
	}

	wasOccupying := booking.Status.OccupiesSlot(s.cfg.PendingBlocks)
	booking.Status = target

	// Viewers only care when occupancy flips (a cancellation freeing the
	// key, or a pending booking starting to block it).
	if wasOccupying != target.OccupiesSlot(s.cfg.PendingBlocks) {
		s.events.Publish(hub.SlotChanged{
			ExpertID: booking.ExpertID,
			Date:     booking.Date,
			Slot:     booking.Slot,
			Status:   booking.Status,
		})
	}

	s.log.Info("Booking status updated",
		zap.String("booking_id", bookingID),
		zap.String("status", string(target)),
	)

	return s.withExpertName(ctx, booking), nil
}

func (s *bookingService) GetBookingByID(ctx context.Context, bookingID string) (*response.BookingResponse, error) {
	id, err := uuid.Parse(bookingID)
	if err != nil {
		return nil, fmt.Errorf("%w: booking ID %s", apperrors.ErrInvalidID, bookingID)
	}

	booking, err := s.repo.Booking.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find booking %s: %w", bookingID, err)
	}
	if booking == nil {
		return nil, apperrors.ErrBookingNotFound
	}

	return s.withExpertName(ctx, booking), nil
}

func (s *bookingService) GetBookings(ctx context.Context, email string) ([]response.BookingResponse, error) {
	var (
		bookings []*entity.Booking
		err      error
	)

	if email != "" {
		bookings, err = s.repo.Booking.FindByEmail(ctx, email)
	} else {
		bookings, err = s.repo.Booking.FindRecent(ctx, 100)
	}
	if err != nil {
		s.log.Error("Failed to get bookings", zap.Error(err), zap.String("client_email", email))
		return nil, fmt.Errorf("get bookings: %w", err)
	}

	return s.toResponses(ctx, bookings), nil
}

func (s *bookingService) GetAllBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	bookings, err := s.repo.Booking.FindAll(ctx, limit, offset)
	if err != nil {
		s.log.Error("Failed to get all bookings",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
		)
		return nil, fmt.Errorf("get all bookings: %w", err)
	}

	total, err := s.repo.Booking.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count bookings", zap.Error(err))
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	return response.NewPaginatedResponse(s.toResponses(ctx, bookings), req.Page, req.PerPage, total), nil
}

// ==================== HELPER METHODS ====================

func (s *bookingService) isKnownSlot(slot string) bool {
	for _, known := range s.cfg.Slots {
		if slot == known {
			return true
		}
	}
	return false
}

func (s *bookingService) withExpertName(ctx context.Context, booking *entity.Booking) *response.BookingResponse {
	var expertName string
	expert, _ := s.repo.Expert.FindByID(ctx, booking.ExpertID)
	if expert != nil {
		expertName = expert.Name
	}

	resp := response.BookingToResponse(booking, expertName)
	return &resp
}

func (s *bookingService) toResponses(ctx context.Context, bookings []*entity.Booking) []response.BookingResponse {
	// Cache expert names; listings routinely repeat the same expert.
	names := make(map[uuid.UUID]string)
	responses := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		name, ok := names[booking.ExpertID]
		if !ok {
			expert, _ := s.repo.Expert.FindByID(ctx, booking.ExpertID)
			if expert != nil {
				name = expert.Name
			}
			names[booking.ExpertID] = name
		}
		responses[i] = response.BookingToResponse(booking, name)
	}
	return responses
}
