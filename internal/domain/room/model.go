package room

import "time"

// Status is the occupancy state of a room
type Status string

// Room statuses
const (
	StatusVacant      Status = "vacant"
	StatusOccupied    Status = "occupied"
	StatusMaintenance Status = "maintenance"
)

// Room is a rentable unit inside a property
type Room struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	PropertyID   string    `json:"property_id"`
	Name         string    `json:"name"`
	PriceMonthly int64     `json:"price_monthly"`
	Status       Status    `json:"status"`
	TenantID     *string   `json:"tenant_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Filter narrows room listings and counts
type Filter struct {
	PropertyID string
	Status     Status
}

// Update holds optional field changes. An empty TenantID clears the tenant.
type Update struct {
	Name         *string
	PriceMonthly *int64
	Status       *Status
	TenantID     *string
}
