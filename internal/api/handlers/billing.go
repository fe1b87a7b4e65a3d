package handlers

import (
	"net/http"

	"github.com/kosbot/kosbot-api/internal/api/dto"
	"github.com/kosbot/kosbot-api/internal/domain/profile"
	"github.com/kosbot/kosbot-api/internal/pkg/logger"
	"github.com/kosbot/kosbot-api/internal/pkg/utils"
	"github.com/kosbot/kosbot-api/internal/pkg/validator"
	"github.com/kosbot/kosbot-api/internal/services"
)

// BillingHandler serves the plan catalog and opens hosted billing pages
type BillingHandler struct {
	billing   *services.BillingService
	usage     UsageReader
	logger    *logger.Logger
	validator *validator.Validator
}

// NewBillingHandler creates a new billing handler
func NewBillingHandler(billing *services.BillingService, usage UsageReader, log *logger.Logger, val *validator.Validator) *BillingHandler {
	return &BillingHandler{
		billing:   billing,
		usage:     usage,
		logger:    log,
		validator: val,
	}
}

// ListPlans returns the plan catalog, flagging the caller's current plan
func (h *BillingHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerID(w, r)
	if !ok {
		return
	}

	plans, err := h.billing.Plans(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to list plans")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, plans)
}

// Checkout opens a subscription checkout for the requested plan
func (h *BillingHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req dto.CheckoutRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	url, err := h.billing.Checkout(r.Context(), id, profile.Plan(req.Plan))
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to start checkout")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, dto.SessionResponse{URL: url})
}

// Portal opens the hosted billing portal
func (h *BillingHandler) Portal(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerID(w, r)
	if !ok {
		return
	}

	url, err := h.billing.Portal(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to open billing portal")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, dto.SessionResponse{URL: url})
}

// Limits reports usage against the caller's plan limits
func (h *BillingHandler) Limits(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerID(w, r)
	if !ok {
		return
	}

	summary, err := h.usage.Summary(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to load plan limits")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, summary)
}
