// Package entitlement decides whether an owner may create another
// plan-limited resource. Everything here is pure: callers supply the
// current persisted count and the owner's plan.
package entitlement

import (
	"errors"
	"fmt"

	"github.com/kosbot/kosbot-api/internal/domain/profile"
)

// Resource is a plan-limited resource kind
type Resource string

// Limited resources
const (
	ResourceProperty Resource = "property"
	ResourceRoom     Resource = "room"
)

// Unlimited marks a limit that is never reached
const Unlimited = -1

var (
	// ErrUnknownPlan is returned for plans missing from the limit table
	ErrUnknownPlan = errors.New("entitlement: unknown plan")
	// ErrUnknownResource is returned for resources that are not plan-limited
	ErrUnknownResource = errors.New("entitlement: unknown resource")
)

// Limits holds the per-plan caps
type Limits struct {
	Properties int `json:"properties"`
	Rooms      int `json:"rooms"`
}

func (l Limits) of(r Resource) (int, error) {
	switch r {
	case ResourceProperty:
		return l.Properties, nil
	case ResourceRoom:
		return l.Rooms, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownResource, r)
}

var table = map[profile.Plan]Limits{
	profile.PlanBasic:      {Properties: 1, Rooms: 10},
	profile.PlanPro:        {Properties: 5, Rooms: 100},
	profile.PlanEnterprise: {Properties: Unlimited, Rooms: Unlimited},
}

// LimitsFor returns a copy of the caps for plan.
func LimitsFor(plan profile.Plan) (Limits, error) {
	l, ok := table[plan]
	if !ok {
		return Limits{}, fmt.Errorf("%w: %q", ErrUnknownPlan, plan)
	}
	return l, nil
}

// Limit returns the cap for one resource on plan, or Unlimited.
func Limit(r Resource, plan profile.Plan) (int, error) {
	l, err := LimitsFor(plan)
	if err != nil {
		return 0, err
	}
	return l.of(r)
}

// CanAdd reports whether one more r fits under plan given count existing.
func CanAdd(r Resource, count int, plan profile.Plan) (bool, error) {
	limit, err := Limit(r, plan)
	if err != nil {
		return false, err
	}
	if limit == Unlimited {
		return true, nil
	}
	return count < limit, nil
}

// SuggestedUpgrade returns the plan to offer when plan runs out of room.
func SuggestedUpgrade(plan profile.Plan) profile.Plan {
	if plan == profile.PlanBasic {
		return profile.PlanPro
	}
	return profile.PlanEnterprise
}

// Decision is the outcome of evaluating one gated create
type Decision struct {
	Allowed       bool         `json:"allowed"`
	Resource      Resource     `json:"resource"`
	Plan          profile.Plan `json:"plan"`
	Limit         int          `json:"limit"`
	Current       int          `json:"current"`
	SuggestedPlan profile.Plan `json:"suggested_plan,omitempty"`
}

// Evaluate runs CanAdd and captures the inputs for rendering an upgrade prompt.
func Evaluate(r Resource, count int, plan profile.Plan) (Decision, error) {
	limit, err := Limit(r, plan)
	if err != nil {
		return Decision{}, err
	}
	allowed, err := CanAdd(r, count, plan)
	if err != nil {
		return Decision{}, err
	}
	d := Decision{
		Allowed:  allowed,
		Resource: r,
		Plan:     plan,
		Limit:    limit,
		Current:  count,
	}
	if !allowed {
		d.SuggestedPlan = SuggestedUpgrade(plan)
	}
	return d, nil
}
