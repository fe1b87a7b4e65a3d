package client

import "time"

// Profile is the signed-in owner
type Profile struct {
	ID                 string     `json:"id"`
	Email              string     `json:"email"`
	Name               string     `json:"name,omitempty"`
	Plan               string     `json:"plan"`
	Status             string     `json:"status"`
	TrialEndAt         *time.Time `json:"trial_end_at,omitempty"`
	TrialDaysRemaining int        `json:"trial_days_remaining"`
	HasBilling         bool       `json:"has_billing"`
	CreatedAt          time.Time  `json:"created_at"`
}

// Usage is the count and limit for one metered resource
type Usage struct {
	Resource string `json:"resource" yaml:"resource"`
	Used     int    `json:"used" yaml:"used"`
	Limit    int    `json:"limit" yaml:"limit"`
	CanAdd   bool   `json:"can_add" yaml:"can_add"`
	Message  string `json:"message,omitempty" yaml:"message,omitempty"`
}

// Limits summarizes an owner's plan usage
type Limits struct {
	Plan          string `json:"plan" yaml:"plan"`
	Status        string `json:"status" yaml:"status"`
	Properties    Usage  `json:"properties" yaml:"properties"`
	Rooms         Usage  `json:"rooms" yaml:"rooms"`
	SuggestedPlan string `json:"suggested_plan,omitempty" yaml:"suggested_plan,omitempty"`
}

// Me is the response of the current-owner endpoint
type Me struct {
	Profile        Profile `json:"profile"`
	Usage          *Limits `json:"usage"`
	NeedsAttention bool    `json:"needs_attention"`
	Banner         string  `json:"banner,omitempty"`
}

// PlanLimits are the caps of one plan
type PlanLimits struct {
	Properties int `json:"properties" yaml:"properties"`
	Rooms      int `json:"rooms" yaml:"rooms"`
}

// Plan is one purchasable plan
type Plan struct {
	Plan      string     `json:"plan" yaml:"plan"`
	Name      string     `json:"name" yaml:"name"`
	Price     int64      `json:"price" yaml:"price"`
	Currency  string     `json:"currency" yaml:"currency"`
	Interval  string     `json:"interval" yaml:"interval"`
	Features  []string   `json:"features" yaml:"features"`
	Limits    PlanLimits `json:"limits" yaml:"limits"`
	IsCurrent bool       `json:"is_current" yaml:"is_current"`
}

// Property is a boarding house
type Property struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Address    string    `json:"address,omitempty"`
	City       string    `json:"city,omitempty"`
	RoomsTotal int       `json:"rooms_total"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// PropertyInput is the body for creating or updating a property
type PropertyInput struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
}

// Overview is the dashboard headline
type Overview struct {
	OccupancyRate   float64 `json:"occupancy_rate" yaml:"occupancy_rate"`
	TotalRooms      int     `json:"total_rooms" yaml:"total_rooms"`
	OccupiedRooms   int     `json:"occupied_rooms" yaml:"occupied_rooms"`
	MonthlyIncome   int64   `json:"monthly_income" yaml:"monthly_income"`
	PendingPayments int     `json:"pending_payments" yaml:"pending_payments"`
	OpenTickets     int     `json:"open_tickets" yaml:"open_tickets"`
}
