package handlers

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/kosbot/kosbot-api/internal/api/dto"
	"github.com/kosbot/kosbot-api/internal/pkg/errors"
	"github.com/kosbot/kosbot-api/internal/pkg/logger"
	"github.com/kosbot/kosbot-api/internal/pkg/metrics"
	"github.com/kosbot/kosbot-api/internal/pkg/utils"
	"github.com/kosbot/kosbot-api/internal/services"
)

// maxWebhookBytes matches the largest payload Stripe documents sending
const maxWebhookBytes = 1 << 20

// signatureHeader carries the Stripe webhook signature
const signatureHeader = "Stripe-Signature"

// WebhookHandler receives billing provider webhooks
type WebhookHandler struct {
	reconciler *services.SubscriptionReconciler
	logger     *logger.Logger
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(reconciler *services.SubscriptionReconciler, log *logger.Logger) *WebhookHandler {
	return &WebhookHandler{
		reconciler: reconciler,
		logger:     log,
	}
}

// Stripe verifies and reconciles one Stripe event. The response shape is
// what Stripe expects, not the API envelope.
func (h *WebhookHandler) Stripe(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	eventType := ""
	status := http.StatusOK
	defer func() {
		metrics.RecordWebhook(eventType, strconv.Itoa(status), time.Since(start))
	}()

	payload, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBytes))
	if err != nil {
		status = http.StatusRequestEntityTooLarge
		h.logger.WithError(err).Warn("Webhook body rejected")
		utils.WriteJSON(w, status, dto.WebhookError{Error: "Request body too large"})
		return
	}

	event, res, err := h.reconciler.HandleWebhook(r.Context(), payload, r.Header.Get(signatureHeader))
	if event != nil {
		eventType = event.Meta().Type
	}
	if err != nil {
		status = http.StatusInternalServerError
		msg := "Webhook processing failed"
		if appErr, ok := errors.AsAppError(err); ok {
			status = appErr.StatusCode
			msg = appErr.Message
		}
		utils.WriteJSON(w, status, dto.WebhookError{Error: msg})
		return
	}

	if res != nil {
		h.logger.WithFields(map[string]interface{}{
			"event_type": eventType,
			"outcome":    res.Outcome,
			"owner_id":   res.ProfileID,
		}).Debug("Webhook acknowledged")
	}
	utils.WriteJSON(w, http.StatusOK, dto.WebhookAck{Received: true})
}
