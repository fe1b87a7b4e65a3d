package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/kosbot/kosbot-api/internal/api/dto"
	"github.com/kosbot/kosbot-api/internal/domain/room"
	"github.com/kosbot/kosbot-api/internal/pkg/logger"
	"github.com/kosbot/kosbot-api/internal/pkg/utils"
	"github.com/kosbot/kosbot-api/internal/pkg/validator"
)

type RoomHandler struct {
	service   room.Service
	logger    *logger.Logger
	validator *validator.Validator
}

func NewRoomHandler(service room.Service, log *logger.Logger, val *validator.Validator) *RoomHandler {
	return &RoomHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// List returns rooms, optionally filtered by property_id and status
func (h *RoomHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerID(w, r)
	if !ok {
		return
	}

	filter := room.Filter{
		PropertyID: r.URL.Query().Get("property_id"),
		Status:     room.Status(r.URL.Query().Get("status")),
	}
	rooms, err := h.service.List(r.Context(), id, filter)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to list rooms")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, rooms)
}

// Get returns a single room
func (h *RoomHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerID(w, r)
	if !ok {
		return
	}

	rm, err := h.service.GetByID(r.Context(), id, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to get room")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, rm)
}

// Create adds a room, subject to the plan's room limit
func (h *RoomHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req dto.CreateRoomRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	rm := &room.Room{
		OwnerID:      id,
		PropertyID:   req.PropertyID,
		Name:         req.Name,
		PriceMonthly: req.PriceMonthly,
		Status:       room.Status(req.Status),
		TenantID:     req.TenantID,
	}
	if err := h.service.Create(r.Context(), rm); err != nil {
		writeServiceError(w, h.logger, err, "Failed to create room")
		return
	}
	utils.WriteSuccess(w, http.StatusCreated, rm)
}

// Update changes a room. Assigning a tenant marks the room occupied.
func (h *RoomHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateRoomRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	u := room.Update{
		Name:         req.Name,
		PriceMonthly: req.PriceMonthly,
		TenantID:     req.TenantID,
	}
	if req.Status != nil {
		s := room.Status(*req.Status)
		u.Status = &s
	}

	rm, err := h.service.Update(r.Context(), id, chi.URLParam(r, "id"), u)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to update room")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, rm)
}

// Delete removes a room that is not occupied
func (h *RoomHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.logger, err, "Failed to delete room")
		return
	}
	utils.WriteSuccessWithMessage(w, http.StatusOK, "Room deleted", nil)
}
