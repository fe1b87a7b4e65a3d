package entitlement

import "github.com/kosbot/kosbot-api/internal/domain/profile"

// Usage is one resource's consumption against its plan limit
type Usage struct {
	Resource Resource `json:"resource"`
	Used     int      `json:"used"`
	Limit    int      `json:"limit"`
	CanAdd   bool     `json:"can_add"`
	Message  string   `json:"message,omitempty"`
}

// Summary is an owner's usage across every limited resource
type Summary struct {
	Plan          profile.Plan   `json:"plan"`
	Status        profile.Status `json:"status"`
	Properties    Usage          `json:"properties"`
	Rooms         Usage          `json:"rooms"`
	SuggestedPlan profile.Plan   `json:"suggested_plan,omitempty"`
}
