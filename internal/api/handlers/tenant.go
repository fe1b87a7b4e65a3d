package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kosbot/kosbot-api/internal/api/dto"
	"github.com/kosbot/kosbot-api/internal/domain/tenant"
	"github.com/kosbot/kosbot-api/internal/pkg/logger"
	"github.com/kosbot/kosbot-api/internal/pkg/utils"
	"github.com/kosbot/kosbot-api/internal/pkg/validator"
)

type TenantHandler struct {
	service   tenant.Service
	logger    *logger.Logger
	validator *validator.Validator
}

func NewTenantHandler(service tenant.Service, log *logger.Logger, val *validator.Validator) *TenantHandler {
	return &TenantHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// List returns tenants. property_id filters by property; active_on=YYYY-MM-DD
// keeps only leases running that day.
func (h *TenantHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerID(w, r)
	if !ok {
		return
	}

	filter := tenant.Filter{
		PropertyID: r.URL.Query().Get("property_id"),
		ActiveOn:   r.URL.Query().Get("active_on"),
	}
	if filter.ActiveOn != "" {
		if _, err := utils.ParseDate(filter.ActiveOn); err != nil {
			utils.WriteErrorMessage(w, http.StatusBadRequest, "BAD_REQUEST", "active_on must be YYYY-MM-DD")
			return
		}
	}

	tenants, err := h.service.List(r.Context(), id, filter)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to list tenants")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, tenants)
}

// Leases returns active leases, flagging those ending soon
func (h *TenantHandler) Leases(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerID(w, r)
	if !ok {
		return
	}

	leases, err := h.service.Leases(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to list leases")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, leases)
}

// Get returns a single tenant
func (h *TenantHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerID(w, r)
	if !ok {
		return
	}

	t, err := h.service.GetByID(r.Context(), id, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to get tenant")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, t)
}

// Create adds a tenant to one of the owner's properties
func (h *TenantHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req dto.CreateTenantRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	t := &tenant.Tenant{
		OwnerID:       id,
		PropertyID:    req.PropertyID,
		RoomID:        req.RoomID,
		FullName:      req.FullName,
		Phone:         req.Phone,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		DepositAmount: req.DepositAmount,
	}
	if err := h.service.Create(r.Context(), t); err != nil {
		writeServiceError(w, h.logger, err, "Failed to create tenant")
		return
	}
	utils.WriteSuccess(w, http.StatusCreated, t)
}

// Update changes a tenant
func (h *TenantHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateTenantRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	t, err := h.service.Update(r.Context(), id, chi.URLParam(r, "id"), tenant.Update{
		RoomID:        req.RoomID,
		FullName:      req.FullName,
		Phone:         req.Phone,
		StartDate:     req.StartDate,
		EndDate:       req.EndDate,
		DepositAmount: req.DepositAmount,
	})
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to update tenant")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, t)
}

// Delete removes a tenant
func (h *TenantHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.logger, err, "Failed to delete tenant")
		return
	}
	utils.WriteSuccessWithMessage(w, http.StatusOK, "Tenant deleted", nil)
}
