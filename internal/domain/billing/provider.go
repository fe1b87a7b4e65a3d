package billing

import (
	"context"

	"github.com/kosbot/kosbot-api/internal/domain/profile"
)

// Customer is the subset of a provider customer needed for reconciliation
type Customer struct {
	ID      string
	Email   string
	Deleted bool
}

// CheckoutRequest describes a hosted subscription checkout
type CheckoutRequest struct {
	OwnerID    string
	Email      string
	PriceID    string
	SuccessURL string
	CancelURL  string
}

// Provider is the billing provider as seen by the application
type Provider interface {
	// ParseWebhook verifies and decodes one webhook delivery
	ParseWebhook(payload []byte, signature string) (Event, error)

	// GetCustomer fetches a customer by id
	GetCustomer(ctx context.Context, customerID string) (*Customer, error)

	// SubscriptionProduct returns the product id of a subscription's first item
	SubscriptionProduct(ctx context.Context, subscriptionID string) (string, error)

	// CreateCheckoutSession returns the hosted checkout URL
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (string, error)

	// CreatePortalSession returns the hosted billing portal URL
	CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error)
}

// Notifier tells an owner that reconciliation moved their subscription
// into a state that needs action. Implementations are best effort.
type Notifier interface {
	NotifyStatusChange(ctx context.Context, p *profile.Profile, from profile.Status) error
}
