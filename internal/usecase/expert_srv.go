package usecase

import (
	"context"
	"fmt"
	"time"

	"expert-booking/internal/data/entity"
	"expert-booking/internal/data/repository"
	"expert-booking/internal/dto/request"
	"expert-booking/internal/dto/response"
	"expert-booking/pkg/apperrors"
	"expert-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ExpertService interface {
	GetExperts(ctx context.Context, req *request.PaginatedRequest, category, search *string) (*response.PaginatedResponse[response.ExpertResponse], error)
	GetExpertByID(ctx context.Context, expertID string) (*response.ExpertResponse, error)
	GetCategories(ctx context.Context) ([]string, error)
	CreateExpert(ctx context.Context, req *request.CreateExpertRequest) (*response.ExpertResponse, error)
	DeleteExpert(ctx context.Context, expertID string) error
}

type expertService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewExpertService(repo *repository.Repository, log *zap.Logger) ExpertService {
	return &expertService{
		repo: repo,
		log:  log.With(zap.String("service", "expert")),
	}
}

func (s *expertService) GetExperts(ctx context.Context, req *request.PaginatedRequest, category, search *string) (*response.PaginatedResponse[response.ExpertResponse], error) {
	limit := req.Limit()
	offset := req.Offset()

	experts, err := s.repo.Expert.FindAll(ctx, limit, offset, category, search)
	if err != nil {
		s.log.Error("Failed to get experts",
			zap.Error(err),
			zap.Int("page", req.Page),
			zap.Int("per_page", req.PerPage),
			zap.Stringp("category", category),
			zap.Stringp("search", search),
		)
		return nil, fmt.Errorf("get experts: %w", err)
	}

	total, err := s.repo.Expert.CountAll(ctx, category, search)
	if err != nil {
		s.log.Error("Failed to count experts", zap.Error(err))
		return nil, fmt.Errorf("count experts: %w", err)
	}

	expertResponses := make([]response.ExpertResponse, len(experts))
	for i, expert := range experts {
		expertResponses[i] = response.ExpertToResponse(expert)
	}

	s.log.Info("Experts retrieved",
		zap.Int("count", len(experts)),
		zap.Int64("total", total),
		zap.Int("page", req.Page),
		zap.Int("per_page", req.PerPage),
	)

	return response.NewPaginatedResponse(expertResponses, req.Page, req.PerPage, total), nil
}

func (s *expertService) GetExpertByID(ctx context.Context, expertID string) (*response.ExpertResponse, error) {
	id, err := uuid.Parse(expertID)
	if err != nil {
		return nil, fmt.Errorf("%w: expert ID %s", apperrors.ErrInvalidID, expertID)
	}

	expert, err := s.repo.Expert.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find expert %s: %w", expertID, err)
	}
	if expert == nil {
		return nil, apperrors.ErrExpertNotFound
	}

	resp := response.ExpertToResponse(expert)
	return &resp, nil
}

func (s *expertService) GetCategories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.Expert.FindCategories(ctx)
	if err != nil {
		s.log.Error("Failed to get categories", zap.Error(err))
		return nil, fmt.Errorf("get categories: %w", err)
	}

	return categories, nil
}

func (s *expertService) CreateExpert(ctx context.Context, req *request.CreateExpertRequest) (*response.ExpertResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create expert validation failed", zap.Any("errors", errs))
		return nil, apperrors.NewValidationError(errs)
	}

	now := time.Now()
	expert := &entity.Expert{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Name:       req.Name,
		Category:   req.Category,
		Experience: req.Experience,
		Rating:     req.Rating,
		Bio:        req.Bio,
	}

	if err := s.repo.Expert.Create(ctx, expert); err != nil {
		s.log.Error("Failed to create expert", zap.Error(err), zap.String("name", req.Name))
		return nil, fmt.Errorf("create expert: %w", err)
	}

	s.log.Info("Expert created",
		zap.String("expert_id", expert.ID.String()),
		zap.String("name", expert.Name),
		zap.String("category", expert.Category),
	)

	resp := response.ExpertToResponse(expert)
	return &resp, nil
}

func (s *expertService) DeleteExpert(ctx context.Context, expertID string) error {
	id, err := uuid.Parse(expertID)
	if err != nil {
		return fmt.Errorf("%w: expert ID %s", apperrors.ErrInvalidID, expertID)
	}

	if err := s.repo.Expert.Delete(ctx, id); err != nil {
		s.log.Error("Failed to delete expert", zap.Error(err), zap.String("expert_id", expertID))
		return fmt.Errorf("delete expert %s: %w", expertID, err)
	}

	return nil
}
