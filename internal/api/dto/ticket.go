package dto

// CreateTicketRequest represents a maintenance ticket creation request
type CreateTicketRequest struct {
	PropertyID  string  `json:"property_id" validate:"required"`
	RoomID      *string `json:"room_id,omitempty"`
	Description string  `json:"description" validate:"required,max=2000"`
	Priority    string  `json:"priority" validate:"omitempty,oneof=low medium high"`
	Assignee    *string `json:"assignee,omitempty" validate:"omitempty,max=120"`
}

// UpdateTicketRequest represents a ticket update request
type UpdateTicketRequest struct {
	Description *string `json:"description,omitempty" validate:"omitempty,min=1,max=2000"`
	Priority    *string `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	Status      *string `json:"status,omitempty" validate:"omitempty,oneof=open progress done"`
	Assignee    *string `json:"assignee,omitempty" validate:"omitempty,max=120"`
}
