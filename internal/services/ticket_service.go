package services

import (
	"context"
	"strings"

	"github.com/kosbot/kosbot-api/internal/domain/property"
	"github.com/kosbot/kosbot-api/internal/domain/room"
	"github.com/kosbot/kosbot-api/internal/domain/ticket"
	"github.com/kosbot/kosbot-api/internal/pkg/errors"
	"github.com/kosbot/kosbot-api/internal/pkg/logger"
)

// TicketService implements ticket.Service
type TicketService struct {
	repo       ticket.Repository
	properties property.Repository
	rooms      room.Repository
	logger     *logger.Logger
}

// NewTicketService creates a new ticket service
func NewTicketService(repo ticket.Repository, properties property.Repository, rooms room.Repository, log *logger.Logger) ticket.Service {
	return &TicketService{
		repo:       repo,
		properties: properties,
		rooms:      rooms,
		logger:     log,
	}
}

// Create opens a maintenance ticket
func (s *TicketService) Create(ctx context.Context, t *ticket.Ticket) error {
	t.Description = strings.TrimSpace(t.Description)
	if t.Priority == "" {
		t.Priority = ticket.PriorityMedium
	}
	if t.Status == "" {
		t.Status = ticket.StatusOpen
	}
	if err := validateTicket(t); err != nil {
		return err
	}

	if _, err := s.properties.GetByID(ctx, t.OwnerID, t.PropertyID); err != nil {
		return err
	}
	if t.RoomID != nil {
		r, err := s.rooms.GetByID(ctx, t.OwnerID, *t.RoomID)
		if err != nil {
			return err
		}
		if r.PropertyID != t.PropertyID {
			return errors.ValidationError("Room does not belong to the ticket's property", nil)
		}
	}

	if err := s.repo.Create(ctx, t); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create ticket")
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"owner_id":  t.OwnerID,
		"ticket_id": t.ID,
		"priority":  t.Priority,
	}).Info("Ticket created")
	return nil
}

// GetByID retrieves a ticket
func (s *TicketService) GetByID(ctx context.Context, ownerID, id string) (*ticket.Ticket, error) {
	return s.repo.GetByID(ctx, ownerID, id)
}

// List lists the owner's tickets
func (s *TicketService) List(ctx context.Context, ownerID string, filter ticket.Filter) ([]*ticket.Ticket, error) {
	return s.repo.List(ctx, ownerID, filter)
}

// Update applies field changes to a ticket
func (s *TicketService) Update(ctx context.Context, ownerID, id string, u ticket.Update) (*ticket.Ticket, error) {
	t, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if u.Description != nil {
		t.Description = strings.TrimSpace(*u.Description)
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
	if u.Status != nil {
		t.Status = *u.Status
	}
	if u.Assignee != nil {
		if *u.Assignee == "" {
			t.Assignee = nil
		} else {
			assignee := *u.Assignee
			t.Assignee = &assignee
		}
	}
	if err := validateTicket(t); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, t); err != nil {
		s.logger.ErrorWithErr(err, "Failed to update ticket")
		return nil, err
	}
	return t, nil
}

// Delete removes a ticket
func (s *TicketService) Delete(ctx context.Context, ownerID, id string) error {
	return s.repo.Delete(ctx, ownerID, id)
}

func validateTicket(t *ticket.Ticket) error {
	if t.Description == "" {
		return errors.ValidationError("Ticket description is required", nil)
	}
	switch t.Priority {
	case ticket.PriorityLow, ticket.PriorityMedium, ticket.PriorityHigh:
	default:
		return errors.ValidationError("Priority must be one of low, medium, high", nil)
	}
	switch t.Status {
	case ticket.StatusOpen, ticket.StatusProgress, ticket.StatusDone:
	default:
		return errors.ValidationError("Status must be one of open, progress, done", nil)
	}
	return nil
}
