package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kosbot/kosbot-api/internal/api/dto"
	"github.com/kosbot/kosbot-api/internal/domain/property"
	"github.com/kosbot/kosbot-api/internal/pkg/logger"
	"github.com/kosbot/kosbot-api/internal/pkg/utils"
	"github.com/kosbot/kosbot-api/internal/pkg/validator"
)

type PropertyHandler struct {
	service   property.Service
	logger    *logger.Logger
	validator *validator.Validator
}

func NewPropertyHandler(service property.Service, log *logger.Logger, val *validator.Validator) *PropertyHandler {
	return &PropertyHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// List returns the owner's properties
func (h *PropertyHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerID(w, r)
	if !ok {
		return
	}

	props, err := h.service.List(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to list properties")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, props)
}

// Get returns a single property
func (h *PropertyHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerID(w, r)
	if !ok {
		return
	}

	p, err := h.service.GetByID(r.Context(), id, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to get property")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, p)
}

// Create adds a property, subject to the plan's property limit
func (h *PropertyHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req dto.CreatePropertyRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	p := &property.Property{
		OwnerID: id,
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
	}
	if err := h.service.Create(r.Context(), p); err != nil {
		writeServiceError(w, h.logger, err, "Failed to create property")
		return
	}
	utils.WriteSuccess(w, http.StatusCreated, p)
}

// Update changes a property's details
func (h *PropertyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req dto.UpdatePropertyRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	p, err := h.service.Update(r.Context(), id, chi.URLParam(r, "id"), property.Update{
		Name:    req.Name,
		Address: req.Address,
		City:    req.City,
	})
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to update property")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, p)
}

// Delete removes a property with no rooms
func (h *PropertyHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.logger, err, "Failed to delete property")
		return
	}
	utils.WriteSuccessWithMessage(w, http.StatusOK, "Property deleted", nil)
}
