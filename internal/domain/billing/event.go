// Package billing models billing-provider lifecycle events and the pure
// profile transitions they cause.
package billing

import (
	"errors"
	"time"

	"github.com/kosbot/kosbot-api/internal/domain/profile"
)

// Provider event type identifiers
const (
	TypeCheckoutCompleted   = "checkout.session.completed"
	TypePaymentFailed       = "invoice.payment_failed"
	TypeSubscriptionDeleted = "customer.subscription.deleted"
	TypeSubscriptionUpdated = "customer.subscription.updated"
)

var (
	// ErrInvalidSignature is returned when a webhook payload fails verification
	ErrInvalidSignature = errors.New("billing: invalid webhook signature")
	// ErrMalformedEvent is returned when a verified payload cannot be decoded
	ErrMalformedEvent = errors.New("billing: malformed event")
	// ErrNotConfigured is returned when the provider credentials are missing
	ErrNotConfigured = errors.New("billing: provider not configured")
)

// Header carries the provider metadata shared by every event
type Header struct {
	ID      string
	Type    string
	Created time.Time
}

// Meta returns the event header
func (h Header) Meta() Header { return h }

// Event is one of the variants below
type Event interface {
	Meta() Header
	isEvent()
}

// CheckoutCompleted is a finished hosted checkout. Email and Plan are
// filled in during resolution against the provider.
type CheckoutCompleted struct {
	Header
	SessionID      string
	CustomerID     string
	SubscriptionID string
	Email          string
	Plan           profile.Plan
}

// PaymentFailed is a failed invoice charge
type PaymentFailed struct {
	Header
	CustomerID string
	InvoiceID  string
}

// SubscriptionDeleted is a subscription that ended
type SubscriptionDeleted struct {
	Header
	CustomerID     string
	SubscriptionID string
}

// SubscriptionUpdated is a subscription status change
type SubscriptionUpdated struct {
	Header
	CustomerID     string
	SubscriptionID string
	ProviderStatus string
}

// Unrecognized is any event type without a transition
type Unrecognized struct {
	Header
}

func (CheckoutCompleted) isEvent()   {}
func (PaymentFailed) isEvent()       {}
func (SubscriptionDeleted) isEvent() {}
func (SubscriptionUpdated) isEvent() {}
func (Unrecognized) isEvent()        {}

// CustomerID returns the billing customer an event refers to, or "".
func CustomerID(e Event) string {
	switch ev := e.(type) {
	case CheckoutCompleted:
		return ev.CustomerID
	case PaymentFailed:
		return ev.CustomerID
	case SubscriptionDeleted:
		return ev.CustomerID
	case SubscriptionUpdated:
		return ev.CustomerID
	}
	return ""
}
