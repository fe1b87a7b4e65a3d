package tenant

import "time"

// Tenant is a lodger with a lease on a property
type Tenant struct {
	ID            string    `json:"id"`
	OwnerID       string    `json:"owner_id"`
	PropertyID    string    `json:"property_id"`
	RoomID        *string   `json:"room_id,omitempty"`
	FullName      string    `json:"full_name"`
	Phone         string    `json:"phone,omitempty"`
	StartDate     string    `json:"start_date"`
	EndDate       *string   `json:"end_date,omitempty"`
	DepositAmount int64     `json:"deposit_amount"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// IsActive reports whether the lease is running on day (YYYY-MM-DD).
func (t *Tenant) IsActive(day string) bool {
	return t.EndDate == nil || *t.EndDate >= day
}

// Filter narrows tenant listings
type Filter struct {
	PropertyID string
	// when set, only leases active on this day
	ActiveOn string
}

// Update holds optional field changes
type Update struct {
	RoomID        *string
	FullName      *string
	Phone         *string
	StartDate     *string
	EndDate       *string
	DepositAmount *int64
}

// Lease is the lease view of a tenant
type Lease struct {
	Tenant     *Tenant `json:"tenant"`
	EndingSoon bool    `json:"ending_soon"`
	DaysLeft   *int    `json:"days_left,omitempty"`
}

// EndingSoonWindow is how many days ahead a lease end is flagged
const EndingSoonWindow = 30
