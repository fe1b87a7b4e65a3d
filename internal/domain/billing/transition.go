package billing

import (
	"github.com/kosbot/kosbot-api/internal/domain/profile"
)

// Apply returns p with the effects of e. Every arm overwrites fields
// rather than diffing, so applying the same event twice is a no-op the
// second time. Unrecognized events return p unchanged.
func Apply(p profile.Profile, e Event) profile.Profile {
	switch ev := e.(type) {
	case CheckoutCompleted:
		ref := ev.CustomerID
		p.Status = profile.StatusActive
		p.Plan = ev.Plan
		p.BillingReference = &ref
		p.TrialEndAt = nil
	case PaymentFailed:
		p.Status = profile.StatusPastDue
	case SubscriptionDeleted:
		p.Status = profile.StatusCanceled
		p.Plan = profile.DefaultPlan
	case SubscriptionUpdated:
		p.Status, _ = SubscriptionStatus(ev.ProviderStatus)
	default:
		return p
	}

	if created := e.Meta().Created; !created.IsZero() {
		p.BillingEventAt = &created
	}
	return p
}

// IsStale reports whether e was created before the last event already
// applied to p. Events with equal timestamps are not stale.
func IsStale(p profile.Profile, e Event) bool {
	created := e.Meta().Created
	if p.BillingEventAt == nil || created.IsZero() {
		return false
	}
	return created.Before(*p.BillingEventAt)
}

// SubscriptionStatus maps a provider subscription status onto a profile
// status. past_due and unpaid degrade, canceled cancels, anything else
// counts as active. known is false for statuses the provider does not
// document, so callers can flag them.
func SubscriptionStatus(providerStatus string) (status profile.Status, known bool) {
	switch providerStatus {
	case "past_due", "unpaid":
		return profile.StatusPastDue, true
	case "canceled":
		return profile.StatusCanceled, true
	case "active", "trialing", "incomplete", "incomplete_expired", "paused":
		return profile.StatusActive, true
	}
	return profile.StatusActive, false
}
