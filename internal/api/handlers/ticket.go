package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kosbot/kosbot-api/internal/api/dto"
	"github.com/kosbot/kosbot-api/internal/domain/ticket"
	"github.com/kosbot/kosbot-api/internal/pkg/logger"
	"github.com/kosbot/kosbot-api/internal/pkg/utils"
	"github.com/kosbot/kosbot-api/internal/pkg/validator"
)

type TicketHandler struct {
	service   ticket.Service
	logger    *logger.Logger
	validator *validator.Validator
}

func NewTicketHandler(service ticket.Service, log *logger.Logger, val *validator.Validator) *TicketHandler {
	return &TicketHandler{
		service:   service,
		logger:    log,
		validator: val,
	}
}

// List returns tickets filtered by property_id, priority and a
// comma-separated status list
func (h *TicketHandler) List(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerID(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter := ticket.Filter{
		PropertyID: q.Get("property_id"),
		Priority:   ticket.Priority(q.Get("priority")),
	}
	if raw := q.Get("status"); raw != "" {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				filter.Statuses = append(filter.Statuses, ticket.Status(s))
			}
		}
	}

	tickets, err := h.service.List(r.Context(), id, filter)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to list tickets")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, tickets)
}

// Get returns a single ticket
func (h *TicketHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerID(w, r)
	if !ok {
		return
	}

	t, err := h.service.GetByID(r.Context(), id, chi.URLParam(r, "id"))
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to get ticket")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, t)
}

// Create opens a maintenance ticket
func (h *TicketHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req dto.CreateTicketRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	t := &ticket.Ticket{
		OwnerID:     id,
		PropertyID:  req.PropertyID,
		RoomID:      req.RoomID,
		Description: req.Description,
		Priority:    ticket.Priority(req.Priority),
		Assignee:    req.Assignee,
	}
	if err := h.service.Create(r.Context(), t); err != nil {
		writeServiceError(w, h.logger, err, "Failed to create ticket")
		return
	}
	utils.WriteSuccess(w, http.StatusCreated, t)
}

// Update changes a ticket
func (h *TicketHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateTicketRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	u := ticket.Update{Description: req.Description, Assignee: req.Assignee}
	if req.Priority != nil {
		p := ticket.Priority(*req.Priority)
		u.Priority = &p
	}
	if req.Status != nil {
		s := ticket.Status(*req.Status)
		u.Status = &s
	}

	t, err := h.service.Update(r.Context(), id, chi.URLParam(r, "id"), u)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to update ticket")
		return
	}
	utils.WriteSuccess(w, http.StatusOK, t)
}

// Delete removes a ticket
func (h *TicketHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := ownerID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.logger, err, "Failed to delete ticket")
		return
	}
	utils.WriteSuccessWithMessage(w, http.StatusOK, "Ticket deleted", nil)
}
