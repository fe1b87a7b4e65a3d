package dto

// CreatePropertyRequest represents a property creation request
type CreatePropertyRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Address string `json:"address" validate:"max=500"`
	City    string `json:"city" validate:"max=100"`
}

// UpdatePropertyRequest represents a property update request
type UpdatePropertyRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=500"`
	City    *string `json:"city,omitempty" validate:"omitempty,max=100"`
}

// CreateRoomRequest represents a room creation request
type CreateRoomRequest struct {
	PropertyID   string  `json:"property_id" validate:"required"`
	Name         string  `json:"name" validate:"required,max=100"`
	PriceMonthly int64   `json:"price_monthly" validate:"gte=0"`
	Status       string  `json:"status" validate:"omitempty,oneof=vacant occupied maintenance"`
	TenantID     *string `json:"tenant_id,omitempty"`
}

// UpdateRoomRequest represents a room update request. An empty tenant_id
// frees the room.
type UpdateRoomRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	PriceMonthly *int64  `json:"price_monthly,omitempty" validate:"omitempty,gte=0"`
	Status       *string `json:"status,omitempty" validate:"omitempty,oneof=vacant occupied maintenance"`
	TenantID     *string `json:"tenant_id,omitempty"`
}
