package request

type CreateBookingRequest struct {
	ExpertID    string  `json:"expert_id" validate:"required,uuid4"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
	Slot        string  `json:"slot" validate:"required"`
	ClientName  string  `json:"client_name" validate:"required,min=2,max=100"`
	ClientEmail string  `json:"client_email" validate:"required,email"`
	ClientPhone string  `json:"client_phone" validate:"required,min=6,max=20"`
	Notes       *string `json:"notes,omitempty" validate:"omitempty,max=500"`
}

type SetBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed completed cancelled"`
}
