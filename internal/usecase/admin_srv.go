package usecase

import (
	"context"
	"fmt"

	"expert-booking/internal/data/entity"
	"expert-booking/internal/data/repository"
	"expert-booking/internal/dto/response"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AdminService interface {
	DashboardStats(ctx context.Context) (*response.DashboardResponse, error)
}

type adminService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewAdminService(repo *repository.Repository, log *zap.Logger) AdminService {
	return &adminService{
		repo: repo,
		log:  log.With(zap.String("service", "admin")),
	}
}

func (s *adminService) DashboardStats(ctx context.Context) (*response.DashboardResponse, error) {
	totalExperts, err := s.repo.Expert.CountAll(ctx, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("count experts: %w", err)
	}

	totalBookings, err := s.repo.Booking.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	totalUsers, err := s.repo.User.CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	pendingBookings, err := s.repo.Booking.CountByStatus(ctx, entity.BookingStatusPending)
	if err != nil {
		return nil, fmt.Errorf("count pending bookings: %w", err)
	}

	recent, err := s.repo.Booking.FindRecent(ctx, 10)
	if err != nil {
		return nil, fmt.Errorf("find recent bookings: %w", err)
	}

	names := make(map[uuid.UUID]string)
	recentResponses := make([]response.BookingResponse, len(recent))
	for i, booking := range recent {
		name, ok := names[booking.ExpertID]
		if !ok {
			expert, _ := s.repo.Expert.FindByID(ctx, booking.ExpertID)
			if expert != nil {
				name = expert.Name
			}
			names[booking.ExpertID] = name
		}
		recentResponses[i] = response.BookingToResponse(booking, name)
	}

	s.log.Info("Dashboard stats retrieved",
		zap.Int64("experts", totalExperts),
		zap.Int64("bookings", totalBookings),
		zap.Int64("users", totalUsers),
		zap.Int64("pending", pendingBookings),
	)

	return &response.DashboardResponse{
		Stats: response.DashboardStats{
			TotalExperts:    totalExperts,
			TotalBookings:   totalBookings,
			TotalUsers:      totalUsers,
			PendingBookings: pendingBookings,
		},
		RecentBookings: recentResponses,
	}, nil
}
