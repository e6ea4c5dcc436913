package request

type CreateExpertRequest struct {
	Name       string  `json:"name" validate:"required,min=2,max=100"`
	Category   string  `json:"category" validate:"required,min=2,max=50"`
	Experience int     `json:"experience" validate:"min=0,max=80"`
	Rating     float64 `json:"rating" validate:"min=0,max=5"`
	Bio        *string `json:"bio,omitempty" validate:"omitempty,max=1000"`
}
