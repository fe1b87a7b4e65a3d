package invoice

import "time"

// Status is the payment state of an invoice
type Status string

// Invoice statuses
const (
	StatusPending Status = "pending"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
	StatusPartial Status = "partial"
)

// Invoice is a rent bill addressed to a tenant
type Invoice struct {
	ID         string     `json:"id"`
	OwnerID    string     `json:"owner_id"`
	TenantID   string     `json:"tenant_id"`
	TenantName string     `json:"tenant_name,omitempty"`
	Amount     int64      `json:"amount"`
	DueDate    string     `json:"due_date"`
	Status     Status     `json:"status"`
	PaidAt     *time.Time `json:"paid_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// Filter narrows invoice listings and counts
type Filter struct {
	TenantID    string
	Statuses    []Status
	DueDate     string
	ExcludePaid bool
}

// Update holds optional field changes
type Update struct {
	Amount  *int64
	DueDate *string
	Status  *Status
}
