package response

import (
	"time"

	"expert-booking/internal/data/entity"
)

type ExpertResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Experience int       `json:"experience"`
	Rating     float64   `json:"rating"`
	Bio        *string   `json:"bio,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

func ExpertToResponse(expert *entity.Expert) ExpertResponse {
	return ExpertResponse{
		ID:         expert.ID.String(),
		Name:       expert.Name,
		Category:   expert.Category,
		Experience: expert.Experience,
		Rating:     expert.Rating,
		Bio:        expert.Bio,
		CreatedAt:  expert.CreatedAt,
	}
}
