package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/kosbot/kosbot-api/internal/api/dto"
	"github.com/kosbot/kosbot-api/internal/domain/invoice"
	"github.com/kosbot/kosbot-api/internal/domain/payment"
	"github.com/kosbot/kosbot-api/internal/pkg/logger"
	"github.com/kosbot/kosbot-api/internal/pkg/utils"
	"github.com/kosbot/kosbot-api/internal/pkg/validator"
)

// InvoiceHandler handles rent invoices
type InvoiceHandler struct {
	service   invoice.Service
	logger    *logger.Logger
	validator *validator.Validator
}

func NewInvoiceHandler(service invoice.Service, log *logger.Logger, val *validator.Validator) *InvoiceHandler {
	return &InvoiceHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// List returns invoices. status takes a comma-separated list.
func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerID(w, r)
	if !ok {
		return
	}

	filter := invoice.Filter{TenantID: r.URL.Query().Get("tenant_id")}
	if raw := r.URL.Query().Get("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				filter.Statuses = append(filter.Statuses, invoice.Status(s))
			}
		}
	}

	invoices, err := h.service.List(r.Context(), id, filter)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to list invoices")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, invoices)
}

// Get returns a single invoice
func (h *InvoiceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerID(w, r)
	if !ok {
		return
	}

	inv, err := h.service.GetByID(r.Context(), id, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to get invoice")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, inv)
}

// Create bills a tenant
func (h *InvoiceHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req dto.CreateInvoiceRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	inv := &invoice.Invoice{
		OwnerID:  id,
		TenantID: req.TenantID,
		Amount:   req.Amount,
		DueDate:  req.DueDate,
		Status:   invoice.Status(req.Status),
	}
	if err := h.service.Create(r.Context(), inv); err != nil {
		writeServiceError(w, h.logger, err, "Failed to create invoice")
		return
	}
	utils.WriteSuccess(w, http.StatusCreated, inv)
}

// Update changes an invoice
func (h *InvoiceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateInvoiceRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	u := invoice.Update{Amount: req.Amount, DueDate: req.DueDate}
	if req.Status != nil {
		s := invoice.Status(*req.Status)
		u.Status = &s
	}

	inv, err := h.service.Update(r.Context(), id, chi.URLParam(r, "id"), u)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to update invoice")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, inv)
}

// Delete removes an invoice
func (h *InvoiceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.logger, err, "Failed to delete invoice")
		return
	}
	utils.WriteSuccessWithMessage(w, http.StatusOK, "Invoice deleted", nil)
}

// PaymentHandler records payments against invoices
type PaymentHandler struct {
	service   payment.Service
	logger    *logger.Logger
	validator *validator.Validator
}

func NewPaymentHandler(service payment.Service, log *logger.Logger, val *validator.Validator) *PaymentHandler {
	return &PaymentHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// List returns payments, optionally for one invoice or a since/until
// window of YYYY-MM-DD dates
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerID(w, r)
	if !ok {
		return
	}

	filter := payment.Filter{InvoiceID: r.URL.Query().Get("invoice_id")}
	for key, dst := range map[string]*time.Time{"since": &filter.Since, "until": &filter.Until} {
		raw := r.URL.Query().Get(key)
		if raw == "" {
			continue
		}
		day, err := utils.ParseDate(raw)
		if err != nil {
			utils.WriteErrorMessage(w, http.StatusBadRequest, "BAD_REQUEST", key+" must be YYYY-MM-DD")
			return
		}
		*dst = day
	}

	payments, err := h.service.List(r.Context(), id, filter)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to list payments")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, payments)
}

// Create records a payment and settles its invoice
func (h *PaymentHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req dto.CreatePaymentRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	p := &payment.Payment{
		OwnerID:   id,
		InvoiceID: req.InvoiceID,
		Amount:    req.Amount,
		Method:    req.Method,
		Notes:     req.Notes,
	}
	if req.PaidAt != nil {
		p.PaidAt = req.PaidAt.UTC()
	}
	if err := h.service.Record(r.Context(), p); err != nil {
		writeServiceError(w, h.logger, err, "Failed to record payment")
		return
	}
	utils.WriteSuccess(w, http.StatusCreated, p)
}
