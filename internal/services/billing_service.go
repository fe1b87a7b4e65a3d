package services

import (
	"context"
	stderrors "errors"

	"github.com/kosbot/kosbot-api/internal/domain/billing"
	"github.com/kosbot/kosbot-api/internal/domain/profile"
	"github.com/kosbot/kosbot-api/internal/pkg/errors"
	"github.com/kosbot/kosbot-api/internal/pkg/logger"
)

// BillingURLs are the hosted-page return addresses
type BillingURLs struct {
	Success      string
	Cancel       string
	PortalReturn string
}

// PlanOffer is a catalog entry marked against the caller's current plan
type PlanOffer struct {
	billing.Offer
	IsCurrent bool `json:"is_current"`
}

// BillingService opens checkout and portal sessions and serves the plan
// catalog. It never changes a profile; reconciliation does.
type BillingService struct {
	profiles profile.Repository
	provider billing.Provider
	offers   []billing.Offer
	urls     BillingURLs
	logger   *logger.Logger
}

// NewBillingService creates a new billing service. prices maps plan -> provider price id.
func NewBillingService(profiles profile.Repository, provider billing.Provider, prices map[string]string, urls BillingURLs, log *logger.Logger) *BillingService {
	return &BillingService{
		profiles: profiles,
		provider: provider,
		offers:   billing.Offers(prices),
		urls:     urls,
		logger:   log,
	}
}

// Plans lists the catalog, flagging the owner's current plan
func (s *BillingService) Plans(ctx context.Context, ownerID string) ([]PlanOffer, error) {
	p, err := s.profiles.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	out := make([]PlanOffer, 0, len(s.offers))
	for _, o := range s.offers {
		out = append(out, PlanOffer{Offer: o, IsCurrent: o.Plan == p.Plan})
	}
	return out, nil
}

// Checkout opens a hosted subscription checkout for plan and returns its URL
func (s *BillingService) Checkout(ctx context.Context, ownerID string, plan profile.Plan) (string, error) {
	offer, ok := billing.FindOffer(s.offers, plan)
	if !ok {
		return "", errors.ValidationError("Unknown plan", map[string]string{"plan": string(plan)})
	}
	if offer.PriceID == "" {
		return "", errors.Configuration("No price configured for plan "+string(plan), nil)
	}

	p, err := s.profiles.GetByID(ctx, ownerID)
	if err != nil {
		return "", err
	}

	url, err := s.provider.CreateCheckoutSession(ctx, billing.CheckoutRequest{
		OwnerID:    p.ID,
		Email:      p.Email,
		PriceID:    offer.PriceID,
		SuccessURL: s.urls.Success,
		CancelURL:  s.urls.Cancel,
	})
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to create checkout session")
		return "", providerError(err)
	}

	s.logger.WithFields(map[string]interface{}{
		"owner_id": p.ID,
		"plan":     plan,
	}).Info("Checkout session created")
	return url, nil
}

// Portal opens the hosted billing portal for an owner with a billing customer
func (s *BillingService) Portal(ctx context.Context, ownerID string) (string, error) {
	p, err := s.profiles.GetByID(ctx, ownerID)
	if err != nil {
		return "", err
	}
	if !p.HasBillingReference() {
		return "", errors.Conflict("No billing account yet; complete a checkout first")
	}

	url, err := s.provider.CreatePortalSession(ctx, *p.BillingReference, s.urls.PortalReturn)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to create portal session")
		return "", providerError(err)
	}
	return url, nil
}

func providerError(err error) error {
	if stderrors.Is(err, billing.ErrNotConfigured) {
		return errors.ServiceUnavailable("Billing is not configured")
	}
	return errors.ProviderAPIError("stripe", err)
}
