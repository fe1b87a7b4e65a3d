// Package stripe adapts the Stripe API to billing.Provider.
package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	stripelib "github.com/stripe/stripe-go/v82"
	portalsession "github.com/stripe/stripe-go/v82/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/customer"
	"github.com/stripe/stripe-go/v82/subscription"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/kosbot/kosbot-api/internal/domain/billing"
	"github.com/kosbot/kosbot-api/internal/pkg/logger"
)

// Config holds Stripe credentials
type Config struct {
	SecretKey     string
	WebhookSecret string
}

// Client implements billing.Provider against the Stripe API
type Client struct {
	secretKey     string
	webhookSecret string
	logger        *logger.Logger

	getCustomer        func(id string, params *stripelib.CustomerParams) (*stripelib.Customer, error)
	getSubscription    func(id string, params *stripelib.SubscriptionParams) (*stripelib.Subscription, error)
	newCheckoutSession func(params *stripelib.CheckoutSessionParams) (*stripelib.CheckoutSession, error)
	newPortalSession   func(params *stripelib.BillingPortalSessionParams) (*stripelib.BillingPortalSession, error)
}

// NewClient creates a Stripe client. Either secret may be empty; the
// operations that need it then fail with billing.ErrNotConfigured.
func NewClient(cfg Config, log *logger.Logger) *Client {
	secretKey := strings.TrimSpace(cfg.SecretKey)
	if secretKey != "" {
		stripelib.Key = secretKey
	}
	return &Client{
		secretKey:          secretKey,
		webhookSecret:      strings.TrimSpace(cfg.WebhookSecret),
		logger:             log,
		getCustomer:        customer.Get,
		getSubscription:    subscription.Get,
		newCheckoutSession: checkoutsession.New,
		newPortalSession:   portalsession.New,
	}
}

// checkoutSession is the subset of a checkout.session object we read
type checkoutSession struct {
	ID                string `json:"id"`
	Customer          string `json:"customer"`
	Subscription      string `json:"subscription"`
	ClientReferenceID string `json:"client_reference_id"`
}

type invoiceObject struct {
	ID       string `json:"id"`
	Customer string `json:"customer"`
}

type subscriptionObject struct {
	ID       string `json:"id"`
	Customer string `json:"customer"`
	Status   string `json:"status"`
}

// ParseWebhook verifies the Stripe-Signature header and decodes the event
func (c *Client) ParseWebhook(payload []byte, signature string) (billing.Event, error) {
	if c.webhookSecret == "" {
		return nil, billing.ErrNotConfigured
	}
	if strings.TrimSpace(signature) == "" {
		return nil, fmt.Errorf("%w: missing signature header", billing.ErrInvalidSignature)
	}

	event, err := webhook.ConstructEventWithOptions(payload, signature, c.webhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", billing.ErrInvalidSignature, err)
	}

	return decodeEvent(&event)
}

func decodeEvent(event *stripelib.Event) (billing.Event, error) {
	h := billing.Header{
		ID:   event.ID,
		Type: string(event.Type),
	}
	if event.Created > 0 {
		h.Created = time.Unix(event.Created, 0).UTC()
	}

	var raw json.RawMessage
	if event.Data != nil {
		raw = event.Data.Raw
	}

	switch h.Type {
	case billing.TypeCheckoutCompleted:
		var s checkoutSession
		if err := decodeObject(raw, &s); err != nil {
			return nil, err
		}
		return billing.CheckoutCompleted{
			Header:         h,
			SessionID:      s.ID,
			CustomerID:     strings.TrimSpace(s.Customer),
			SubscriptionID: strings.TrimSpace(s.Subscription),
		}, nil

	case billing.TypePaymentFailed:
		var inv invoiceObject
		if err := decodeObject(raw, &inv); err != nil {
			return nil, err
		}
		return billing.PaymentFailed{
			Header:     h,
			CustomerID: strings.TrimSpace(inv.Customer),
			InvoiceID:  inv.ID,
		}, nil

	case billing.TypeSubscriptionDeleted:
		var sub subscriptionObject
		if err := decodeObject(raw, &sub); err != nil {
			return nil, err
		}
		return billing.SubscriptionDeleted{
			Header:         h,
			CustomerID:     strings.TrimSpace(sub.Customer),
			SubscriptionID: sub.ID,
		}, nil

	case billing.TypeSubscriptionUpdated:
		var sub subscriptionObject
		if err := decodeObject(raw, &sub); err != nil {
			return nil, err
		}
		return billing.SubscriptionUpdated{
			Header:         h,
			CustomerID:     strings.TrimSpace(sub.Customer),
			SubscriptionID: sub.ID,
			ProviderStatus: sub.Status,
		}, nil
	}

	return billing.Unrecognized{Header: h}, nil
}

func decodeObject(raw json.RawMessage, v interface{}) error {
	if len(raw) == 0 {
		return fmt.Errorf("%w: event has no data object", billing.ErrMalformedEvent)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", billing.ErrMalformedEvent, err)
	}
	return nil
}

// GetCustomer fetches a Stripe customer
func (c *Client) GetCustomer(ctx context.Context, customerID string) (*billing.Customer, error) {
	if c.secretKey == "" {
		return nil, billing.ErrNotConfigured
	}
	params := &stripelib.CustomerParams{}
	params.Context = ctx

	cust, err := c.getCustomer(customerID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe customer %s: %w", customerID, err)
	}
	return &billing.Customer{
		ID:      cust.ID,
		Email:   strings.TrimSpace(cust.Email),
		Deleted: cust.Deleted,
	}, nil
}

// SubscriptionProduct returns the product of the subscription's first item
func (c *Client) SubscriptionProduct(ctx context.Context, subscriptionID string) (string, error) {
	if c.secretKey == "" {
		return "", billing.ErrNotConfigured
	}
	params := &stripelib.SubscriptionParams{}
	params.Context = ctx

	sub, err := c.getSubscription(subscriptionID, params)
	if err != nil {
		return "", fmt.Errorf("stripe subscription %s: %w", subscriptionID, err)
	}
	if sub.Items == nil || len(sub.Items.Data) == 0 {
		return "", fmt.Errorf("stripe subscription %s has no items", subscriptionID)
	}
	item := sub.Items.Data[0]
	if item.Price == nil || item.Price.Product == nil || item.Price.Product.ID == "" {
		return "", fmt.Errorf("stripe subscription %s has no product", subscriptionID)
	}
	return item.Price.Product.ID, nil
}

// CreateCheckoutSession opens a hosted subscription checkout
func (c *Client) CreateCheckoutSession(ctx context.Context, req billing.CheckoutRequest) (string, error) {
	if c.secretKey == "" {
		return "", billing.ErrNotConfigured
	}

	params := &stripelib.CheckoutSessionParams{
		Mode:              stripelib.String(string(stripelib.CheckoutSessionModeSubscription)),
		SuccessURL:        stripelib.String(req.SuccessURL),
		CancelURL:         stripelib.String(req.CancelURL),
		CustomerEmail:     stripelib.String(req.Email),
		ClientReferenceID: stripelib.String(req.OwnerID),
		LineItems: []*stripelib.CheckoutSessionLineItemParams{
			{
				Price:    stripelib.String(req.PriceID),
				Quantity: stripelib.Int64(1),
			},
		},
	}
	params.Context = ctx
	params.AddMetadata("owner_id", req.OwnerID)

	session, err := c.newCheckoutSession(params)
	if err != nil {
		return "", fmt.Errorf("stripe checkout session: %w", err)
	}
	if session == nil || strings.TrimSpace(session.URL) == "" {
		return "", fmt.Errorf("stripe checkout session returned no url")
	}

	c.logger.WithFields(map[string]interface{}{
		"session_id": session.ID,
		"owner_id":   req.OwnerID,
	}).Debug("Stripe checkout session created")
	return session.URL, nil
}

// CreatePortalSession opens the hosted billing portal for a customer
func (c *Client) CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	if c.secretKey == "" {
		return "", billing.ErrNotConfigured
	}

	params := &stripelib.BillingPortalSessionParams{
		Customer:  stripelib.String(customerID),
		ReturnURL: stripelib.String(returnURL),
	}
	params.Context = ctx

	session, err := c.newPortalSession(params)
	if err != nil {
		return "", fmt.Errorf("stripe portal session: %w", err)
	}
	return session.URL, nil
}
