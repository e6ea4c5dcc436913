package repository

import (
	"context"
	"fmt"

	"expert-booking/internal/data/entity"
	"expert-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ExpertRepository interface {
	Create(ctx context.Context, expert *entity.Expert) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Expert, error)
	FindAll(ctx context.Context, limit, offset int, category, search *string) ([]*entity.Expert, error)
	CountAll(ctx context.Context, category, search *string) (int64, error)
	FindCategories(ctx context.Context) ([]string, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type expertRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewExpertRepository(db database.PgxIface, log *zap.Logger) ExpertRepository {
	return &expertRepository{
		db:  db,
		log: log.With(zap.String("repository", "expert")),
	}
}

func (r *expertRepository) Create(ctx context.Context, expert *entity.Expert) error {
	query := `
		INSERT INTO experts (id, name, category, experience, rating, bio, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		expert.ID,
		expert.Name,
		expert.Category,
		expert.Experience,
		expert.Rating,
		expert.Bio,
		expert.CreatedAt,
		expert.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create expert",
			zap.Error(err),
			zap.String("name", expert.Name),
		)
		return fmt.Errorf("create expert %s: %w", expert.Name, err)
	}

	return nil
}

func (r *expertRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Expert, error) {
	query := `
		SELECT id, name, category, experience, rating, bio, created_at, updated_at
		FROM experts
		WHERE id = $1
	`

	var expert entity.Expert
	err := r.db.QueryRow(ctx, query, id).Scan(
		&expert.ID,
		&expert.Name,
		&expert.Category,
		&expert.Experience,
		&expert.Rating,
		&expert.Bio,
		&expert.CreatedAt,
		&expert.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find expert by ID",
			zap.Error(err),
			zap.String("expert_id", id.String()),
		)
		return nil, fmt.Errorf("find expert by ID %s: %w", id.String(), err)
	}

	return &expert, nil
}

func (r *expertRepository) FindAll(ctx context.Context, limit, offset int, category, search *string) ([]*entity.Expert, error) {
	query := `
		SELECT id, name, category, experience, rating, bio, created_at, updated_at
		FROM experts
		WHERE ($3::text IS NULL OR category = $3)
		  AND ($4::text IS NULL OR name ILIKE '%' || $4 || '%' OR category ILIKE '%' || $4 || '%')
		ORDER BY rating DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset, category, search)
	if err != nil {
		r.log.Error("Failed to find experts",
			zap.Error(err),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
			zap.Stringp("category", category),
			zap.Stringp("search", search),
		)
		return nil, fmt.Errorf("find experts: %w", err)
	}
	defer rows.Close()

	var experts []*entity.Expert
	for rows.Next() {
		var expert entity.Expert
		err := rows.Scan(
			&expert.ID,
			&expert.Name,
			&expert.Category,
			&expert.Experience,
			&expert.Rating,
			&expert.Bio,
			&expert.CreatedAt,
			&expert.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan expert row", zap.Error(err))
			return nil, fmt.Errorf("scan expert row: %w", err)
		}
		experts = append(experts, &expert)
	}

	return experts, nil
}

func (r *expertRepository) CountAll(ctx context.Context, category, search *string) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM experts
		WHERE ($1::text IS NULL OR category = $1)
		  AND ($2::text IS NULL OR name ILIKE '%' || $2 || '%' OR category ILIKE '%' || $2 || '%')
	`

	var count int64
	err := r.db.QueryRow(ctx, query, category, search).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count experts", zap.Error(err))
		return 0, fmt.Errorf("count experts: %w", err)
	}

	return count, nil
}

func (r *expertRepository) FindCategories(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT category FROM experts ORDER BY category`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find categories", zap.Error(err))
		return nil, fmt.Errorf("find categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var category string
		if err := rows.Scan(&category); err != nil {
			r.log.Error("Failed to scan category row", zap.Error(err))
			return nil, fmt.Errorf("scan category row: %w", err)
		}
		categories = append(categories, category)
	}

	return categories, nil
}

func (r *expertRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM experts WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete expert",
			zap.Error(err),
			zap.String("expert_id", id.String()),
		)
		return fmt.Errorf("delete expert %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("expert %s not found", id.String())
	}

	r.log.Info("Expert deleted", zap.String("expert_id", id.String()))
	return nil
}
