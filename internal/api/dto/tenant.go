package dto

// CreateTenantRequest represents a tenant creation request
type CreateTenantRequest struct {
	PropertyID    string  `json:"property_id" validate:"required"`
	RoomID        *string `json:"room_id,omitempty"`
	FullName      string  `json:"full_name" validate:"required,max=200"`
	Phone         string  `json:"phone" validate:"max=32"`
	StartDate     string  `json:"start_date" validate:"required,isodate"`
	EndDate       *string `json:"end_date,omitempty" validate:"omitempty,isodate"`
	DepositAmount int64   `json:"deposit_amount" validate:"gte=0"`
}

// UpdateTenantRequest represents a tenant update request
type UpdateTenantRequest struct {
	RoomID        *string `json:"room_id,omitempty"`
	FullName      *string `json:"full_name,omitempty" validate:"omitempty,min=1,max=200"`
	Phone         *string `json:"phone,omitempty" validate:"omitempty,max=32"`
	StartDate     *string `json:"start_date,omitempty" validate:"omitempty,isodate"`
	EndDate       *string `json:"end_date,omitempty" validate:"omitempty,isodate"`
	DepositAmount *int64  `json:"deposit_amount,omitempty" validate:"omitempty,gte=0"`
}
