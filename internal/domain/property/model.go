package property

import "time"

// Property is a kos building owned by one owner
type Property struct {
	ID      string `json:"id"`
	OwnerID string `json:"owner_id"`
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	// derived from the rooms table on read
	RoomsTotal int       `json:"rooms_total"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Update holds optional field changes
type Update struct {
	Name    *string
	Address *string
	City    *string
}
