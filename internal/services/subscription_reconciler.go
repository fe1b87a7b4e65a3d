package services

import (
	"context"
	stderrors "errors"
	"net/http"
	"strings"
	"time"

	"github.com/kosbot/kosbot-api/internal/domain/billing"
	"github.com/kosbot/kosbot-api/internal/domain/profile"
	"github.com/kosbot/kosbot-api/internal/pkg/errors"
	"github.com/kosbot/kosbot-api/internal/pkg/logger"
	"github.com/kosbot/kosbot-api/internal/pkg/metrics"
)

// Outcome describes what reconciliation did with one event
type Outcome string

// Reconciliation outcomes
const (
	OutcomeApplied Outcome = "applied"
	OutcomeStale   Outcome = "stale"
	OutcomeIgnored Outcome = "ignored"
)

// ReconcileResult reports the effect of one billing event
type ReconcileResult struct {
	Outcome   Outcome
	ProfileID string
	From      profile.Status
	To        profile.Status
}

// SubscriptionReconciler keeps profiles in step with the billing
// provider's lifecycle events. Every transition is a field overwrite, so
// redelivered events leave the profile unchanged.
type SubscriptionReconciler struct {
	profiles profile.Repository
	provider billing.Provider
	products *billing.ProductCatalog
	notifier billing.Notifier
	logger   *logger.Logger

	// bounds the notice send, which runs before the webhook is acknowledged
	notifyTimeout time.Duration
}

const defaultNotifyTimeout = 5 * time.Second

// NewSubscriptionReconciler creates a new reconciler. notifier may be nil.
func NewSubscriptionReconciler(profiles profile.Repository, provider billing.Provider, products *billing.ProductCatalog, notifier billing.Notifier, log *logger.Logger) *SubscriptionReconciler {
	return &SubscriptionReconciler{
		profiles: profiles,
		provider: provider,
		products: products,
		notifier: notifier,
		logger:   log,

		notifyTimeout: defaultNotifyTimeout,
	}
}

// HandleWebhook verifies one webhook delivery and reconciles it. Nothing
// is written unless the signature verifies and the payload decodes.
func (r *SubscriptionReconciler) HandleWebhook(ctx context.Context, payload []byte, signature string) (billing.Event, *ReconcileResult, error) {
	e, err := r.provider.ParseWebhook(payload, signature)
	if err != nil {
		r.logger.WithError(err).Warn("Billing webhook rejected")
		switch {
		case stderrors.Is(err, billing.ErrNotConfigured):
			return nil, nil, errors.Reconciliation("Billing webhooks are not configured", http.StatusServiceUnavailable, err)
		case stderrors.Is(err, billing.ErrInvalidSignature):
			return nil, nil, errors.Reconciliation("Invalid webhook signature", http.StatusBadRequest, err)
		default:
			return nil, nil, errors.Reconciliation("Malformed webhook payload", http.StatusBadRequest, err)
		}
	}

	res, err := r.Reconcile(ctx, e)
	return e, res, err
}

// Reconcile applies one verified event to the profile it refers to.
// Unrecognized events and events older than the last one applied are
// acknowledged without writing.
func (r *SubscriptionReconciler) Reconcile(ctx context.Context, e billing.Event) (*ReconcileResult, error) {
	h := e.Meta()
	log := r.logger.WithFields(map[string]interface{}{
		"event_id":   h.ID,
		"event_type": h.Type,
	})
	log.Info("Billing event received")

	switch ev := e.(type) {
	case billing.Unrecognized:
		log.Info("Unhandled billing event type ignored")
		return &ReconcileResult{Outcome: OutcomeIgnored}, nil
	case billing.SubscriptionUpdated:
		if _, known := billing.SubscriptionStatus(ev.ProviderStatus); !known {
			log.With("provider_status", ev.ProviderStatus).
				Warn("Unknown subscription status treated as active")
		}
	}

	p, e, err := r.resolve(ctx, e)
	if err != nil {
		log.ErrorWithErr(err, "Billing event could not be resolved")
		return nil, err
	}

	log = log.WithFields(map[string]interface{}{
		"owner_id":          p.ID,
		"billing_reference": billing.CustomerID(e),
	})

	if billing.IsStale(*p, e) {
		log.WithFields(map[string]interface{}{
			"event_created":   h.Created,
			"last_applied_at": p.BillingEventAt,
			"current_status":  p.Status,
		}).Warn("Stale billing event skipped")
		return &ReconcileResult{Outcome: OutcomeStale, ProfileID: p.ID, From: p.Status, To: p.Status}, nil
	}

	from := p.Status
	next := billing.Apply(*p, e)
	if err := r.profiles.Update(ctx, &next); err != nil {
		log.ErrorWithErr(err, "Failed to update profile from billing event")
		return nil, errors.Reconciliation("Failed to update profile", http.StatusInternalServerError, err)
	}

	if from != next.Status {
		metrics.RecordProfileTransition(string(from), string(next.Status))
	}
	log.WithFields(map[string]interface{}{
		"from":   from,
		"status": next.Status,
		"plan":   next.Plan,
	}).Info("Profile reconciled")

	r.notify(ctx, &next, from)

	return &ReconcileResult{Outcome: OutcomeApplied, ProfileID: next.ID, From: from, To: next.Status}, nil
}

// resolve finds the profile an event refers to. Checkout events are
// completed against the provider first, since they only carry ids.
func (r *SubscriptionReconciler) resolve(ctx context.Context, e billing.Event) (*profile.Profile, billing.Event, error) {
	if ev, ok := e.(billing.CheckoutCompleted); ok {
		resolved, err := r.resolveCheckout(ctx, ev)
		if err != nil {
			return nil, nil, err
		}
		p, err := r.profiles.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(resolved.Email)))
		if err != nil {
			return nil, nil, lookupError(err, "No profile matches the checkout email")
		}
		return p, resolved, nil
	}

	ref := billing.CustomerID(e)
	if ref == "" {
		return nil, nil, errors.Reconciliation("Event carries no customer reference", http.StatusBadRequest, billing.ErrMalformedEvent)
	}
	p, err := r.profiles.GetByBillingReference(ctx, ref)
	if err != nil {
		return nil, nil, lookupError(err, "No profile matches the billing reference")
	}
	return p, e, nil
}

func (r *SubscriptionReconciler) resolveCheckout(ctx context.Context, ev billing.CheckoutCompleted) (billing.CheckoutCompleted, error) {
	if ev.CustomerID == "" || ev.SubscriptionID == "" {
		return ev, errors.Reconciliation("Checkout session lacks customer or subscription", http.StatusBadRequest, billing.ErrMalformedEvent)
	}

	cust, err := r.provider.GetCustomer(ctx, ev.CustomerID)
	if err != nil {
		return ev, errors.Reconciliation("Failed to retrieve billing customer", http.StatusInternalServerError, err)
	}
	if cust.Deleted {
		return ev, errors.Reconciliation("Billing customer was deleted", http.StatusInternalServerError, nil)
	}
	if cust.Email == "" {
		return ev, errors.Reconciliation("Billing customer has no email", http.StatusInternalServerError, nil)
	}

	productID, err := r.provider.SubscriptionProduct(ctx, ev.SubscriptionID)
	if err != nil {
		return ev, errors.Reconciliation("Failed to retrieve subscription", http.StatusInternalServerError, err)
	}

	plan, known := r.products.PlanFor(productID)
	if !known {
		r.logger.WithFields(map[string]interface{}{
			"event_id":   ev.ID,
			"product_id": productID,
			"plan":       plan,
		}).Warn("Unknown billing product, using default plan")
	}

	ev.Email = cust.Email
	ev.Plan = plan
	return ev, nil
}

// notify sends a best-effort notice when a profile loses good standing.
func (r *SubscriptionReconciler) notify(ctx context.Context, p *profile.Profile, from profile.Status) {
	if r.notifier == nil || p.Status == from {
		return
	}
	if p.Status != profile.StatusPastDue && p.Status != profile.StatusCanceled {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, r.notifyTimeout)
	defer cancel()
	if err := r.notifier.NotifyStatusChange(ctx, p, from); err != nil {
		r.logger.WithFields(map[string]interface{}{
			"owner_id": p.ID,
			"status":   p.Status,
		}).WithError(err).Warn("Failed to send billing notice")
	}
}

func lookupError(err error, notFound string) error {
	if errors.IsNotFound(err) {
		return errors.Reconciliation(notFound, http.StatusInternalServerError, err)
	}
	return errors.Reconciliation("Failed to load profile", http.StatusInternalServerError, err)
}
