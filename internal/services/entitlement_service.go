package services

import (
	"context"
	"time"

	"github.com/kosbot/kosbot-api/internal/domain/entitlement"
	"github.com/kosbot/kosbot-api/internal/domain/profile"
	"github.com/kosbot/kosbot-api/internal/domain/property"
	"github.com/kosbot/kosbot-api/internal/domain/room"
	"github.com/kosbot/kosbot-api/internal/pkg/errors"
	"github.com/kosbot/kosbot-api/internal/pkg/i18n"
	"github.com/kosbot/kosbot-api/internal/pkg/logger"
	"github.com/kosbot/kosbot-api/internal/pkg/metrics"
)

// EntitlementService counts an owner's resources and runs them through the
// plan limit table. Counting and the create that follows are separate
// statements, so concurrent creates can overshoot a limit by at most the
// number of concurrent requests minus one.
type EntitlementService struct {
	profiles   profile.Repository
	properties property.Repository
	rooms      room.Repository
	logger     *logger.Logger
	now        func() time.Time
}

// NewEntitlementService creates a new entitlement service
func NewEntitlementService(profiles profile.Repository, properties property.Repository, rooms room.Repository, log *logger.Logger) *EntitlementService {
	return &EntitlementService{
		profiles:   profiles,
		properties: properties,
		rooms:      rooms,
		logger:     log,
		now:        time.Now,
	}
}

// Authorize returns nil when ownerID may create one more r. A denial is a
// PLAN_LIMIT_REACHED error carrying the decision and a localized message.
func (s *EntitlementService) Authorize(ctx context.Context, ownerID string, r entitlement.Resource) error {
	p, err := s.profiles.GetByID(ctx, ownerID)
	if err != nil {
		return err
	}

	count, err := s.count(ctx, ownerID, r)
	if err != nil {
		return err
	}

	decision, err := entitlement.Evaluate(r, count, p.Plan)
	if err != nil {
		s.logger.ErrorWithErr(err, "Entitlement evaluation failed")
		return errors.Configuration("Plan limits are misconfigured", err)
	}
	if decision.Allowed {
		return nil
	}

	msg, err := entitlement.LocalizedLimitMessage(i18n.FromContext(ctx), r, p.Plan)
	if err != nil {
		return errors.Configuration("Plan limits are misconfigured", err)
	}

	metrics.RecordEntitlementDenial(string(r), string(p.Plan))
	s.logger.WithFields(map[string]interface{}{
		"owner_id": ownerID,
		"resource": r,
		"plan":     p.Plan,
		"limit":    decision.Limit,
		"current":  decision.Current,
	}).Info("Plan limit reached")

	return errors.LimitExceeded(msg, map[string]interface{}{
		"resource":       decision.Resource,
		"plan":           decision.Plan,
		"limit":          decision.Limit,
		"current":        decision.Current,
		"suggested_plan": decision.SuggestedPlan,
		"message":        msg,
	})
}

// Summary reports usage against every plan limit for ownerID
func (s *EntitlementService) Summary(ctx context.Context, ownerID string) (*entitlement.Summary, error) {
	p, err := s.profiles.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	props, err := s.usage(ctx, p, entitlement.ResourceProperty)
	if err != nil {
		return nil, err
	}
	rooms, err := s.usage(ctx, p, entitlement.ResourceRoom)
	if err != nil {
		return nil, err
	}

	summary := &entitlement.Summary{
		Plan:       p.Plan,
		Status:     p.EffectiveStatus(s.now()),
		Properties: props,
		Rooms:      rooms,
	}
	if !props.CanAdd || !rooms.CanAdd {
		summary.SuggestedPlan = entitlement.SuggestedUpgrade(p.Plan)
	}
	return summary, nil
}

func (s *EntitlementService) usage(ctx context.Context, p *profile.Profile, r entitlement.Resource) (entitlement.Usage, error) {
	count, err := s.count(ctx, p.ID, r)
	if err != nil {
		return entitlement.Usage{}, err
	}

	decision, err := entitlement.Evaluate(r, count, p.Plan)
	if err != nil {
		return entitlement.Usage{}, errors.Configuration("Plan limits are misconfigured", err)
	}

	u := entitlement.Usage{
		Resource: r,
		Used:     count,
		Limit:    decision.Limit,
		CanAdd:   decision.Allowed,
	}
	if !decision.Allowed {
		u.Message, _ = entitlement.LocalizedLimitMessage(i18n.FromContext(ctx), r, p.Plan)
	}
	return u, nil
}

func (s *EntitlementService) count(ctx context.Context, ownerID string, r entitlement.Resource) (int, error) {
	switch r {
	case entitlement.ResourceProperty:
		return s.properties.Count(ctx, ownerID)
	case entitlement.ResourceRoom:
		return s.rooms.Count(ctx, ownerID, room.Filter{})
	}
	return 0, errors.Configuration("Unknown limited resource", entitlement.ErrUnknownResource)
}
