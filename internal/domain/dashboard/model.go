package dashboard

import "context"

// Overview is the headline card row of the dashboard
type Overview struct {
	OccupancyRate   float64 `json:"occupancy_rate"`
	TotalRooms      int     `json:"total_rooms"`
	OccupiedRooms   int     `json:"occupied_rooms"`
	MonthlyIncome   int64   `json:"monthly_income"`
	PendingPayments int     `json:"pending_payments"`
	OpenTickets     int     `json:"open_tickets"`
}

// QuickStats are the small counters next to the overview
type QuickStats struct {
	Properties    int `json:"properties"`
	Rooms         int `json:"rooms"`
	ActiveTenants int `json:"active_tenants"`
}

// Task kinds
const (
	TaskPayment = "payment"
	TaskTicket  = "ticket"
)

// Task is a derived to-do item, never stored
type Task struct {
	ID          string `json:"id"`
	Kind        string `json:"kind"`
	Title       string `json:"title"`
	Priority    string `json:"priority"`
	DueDate     string `json:"due_date,omitempty"`
	ReferenceID string `json:"reference_id"`
}

// MaxTasks caps the task list
const MaxTasks = 4

// RevenuePoint is one month of collected payments
type RevenuePoint struct {
	Month string `json:"month"` // YYYY-MM
	Label string `json:"label"`
	Total int64  `json:"total"`
}

// RevenueMonths is the length of the revenue series
const RevenueMonths = 6

// Service computes dashboard aggregates for one owner
type Service interface {
	Overview(ctx context.Context, ownerID string) (*Overview, error)
	QuickStats(ctx context.Context, ownerID string) (*QuickStats, error)
	Tasks(ctx context.Context, ownerID string) ([]Task, error)
	Revenue(ctx context.Context, ownerID string) ([]RevenuePoint, error)
}
