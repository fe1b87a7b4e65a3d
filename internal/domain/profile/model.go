package profile

import "time"

// Plan is a subscription tier
type Plan string

// Subscription plans
const (
	PlanBasic      Plan = "basic"
	PlanPro        Plan = "pro"
	PlanEnterprise Plan = "enterprise"
)

// DefaultPlan is the tier assigned at signup and after cancellation
const DefaultPlan = PlanBasic

// Valid reports whether p is a known plan
func (p Plan) Valid() bool {
	switch p {
	case PlanBasic, PlanPro, PlanEnterprise:
		return true
	}
	return false
}

// Status is the subscription lifecycle state of a profile
type Status string

// Subscription statuses
const (
	StatusTrial    Status = "trial"
	StatusActive   Status = "active"
	StatusPastDue  Status = "past_due"
	StatusCanceled Status = "canceled"
	StatusExpired  Status = "expired"
)

// Profile is the per-owner account record. Its plan and status are only
// changed by billing reconciliation.
type Profile struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	Name             string     `json:"name,omitempty"`
	PasswordHash     string     `json:"-"`
	Plan             Plan       `json:"plan"`
	Status           Status     `json:"status"`
	TrialEndAt       *time.Time `json:"trial_end_at,omitempty"`
	BillingReference *string    `json:"billing_reference,omitempty"`
	// creation time of the last billing event applied to this profile
	BillingEventAt *time.Time `json:"-"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// NewTrial returns a fresh signup profile on the default plan.
func NewTrial(email, name string, now time.Time, trialDays int) *Profile {
	trialEnd := now.AddDate(0, 0, trialDays)
	return &Profile{
		Email:      email,
		Name:       name,
		Plan:       DefaultPlan,
		Status:     StatusTrial,
		TrialEndAt: &trialEnd,
	}
}

// EffectiveStatus derives the status observed at now. A trial whose end
// date has passed reads as expired; the stored row is left untouched.
func (p *Profile) EffectiveStatus(now time.Time) Status {
	if p.Status == StatusTrial && p.TrialEndAt != nil && now.After(*p.TrialEndAt) {
		return StatusExpired
	}
	return p.Status
}

// NeedsAttention reports whether the owner should be prompted to fix billing.
func (p *Profile) NeedsAttention(now time.Time) bool {
	switch p.EffectiveStatus(now) {
	case StatusPastDue, StatusExpired:
		return true
	}
	return false
}

// TrialDaysRemaining returns whole days left in the trial, or 0.
func (p *Profile) TrialDaysRemaining(now time.Time) int {
	if p.Status != StatusTrial || p.TrialEndAt == nil || !p.TrialEndAt.After(now) {
		return 0
	}
	return int(p.TrialEndAt.Sub(now).Hours()/24) + 1
}

// HasBillingReference reports whether a billing customer is linked.
func (p *Profile) HasBillingReference() bool {
	return p.BillingReference != nil && *p.BillingReference != ""
}

// Consistent checks the stored-state invariants: trial profiles sit on the
// default plan with a trial end date, active profiles carry a billing reference.
func (p *Profile) Consistent() bool {
	switch p.Status {
	case StatusTrial:
		return p.Plan == DefaultPlan && p.TrialEndAt != nil
	case StatusActive:
		return p.HasBillingReference()
	}
	return true
}
