package ticket

import "time"

// Priority of a maintenance ticket
type Priority string

// Ticket priorities
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Status of a maintenance ticket
type Status string

// Ticket statuses
const (
	StatusOpen     Status = "open"
	StatusProgress Status = "progress"
	StatusDone     Status = "done"
)

// Ticket is a maintenance request
type Ticket struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"owner_id"`
	PropertyID  string    `json:"property_id"`
	RoomID      *string   `json:"room_id,omitempty"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority"`
	Status      Status    `json:"status"`
	Assignee    *string   `json:"assignee,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Filter narrows ticket listings and counts
type Filter struct {
	PropertyID string
	Statuses   []Status
	Priority   Priority
	// 0 means no limit
	Limit int
}

// Update holds optional field changes
type Update struct {
	Description *string
	Priority    *Priority
	Status      *Status
	Assignee    *string
}
