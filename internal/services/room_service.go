package services

import (
	"context"
	"strings"

	"github.com/kosbot/kosbot-api/internal/domain/entitlement"
	"github.com/kosbot/kosbot-api/internal/domain/property"
	"github.com/kosbot/kosbot-api/internal/domain/room"
	"github.com/kosbot/kosbot-api/internal/domain/tenant"
	"github.com/kosbot/kosbot-api/internal/pkg/errors"
	"github.com/kosbot/kosbot-api/internal/pkg/logger"
)

// RoomService implements room.Service
type RoomService struct {
	repo       room.Repository
	properties property.Repository
	tenants    tenant.Repository
	gate       *EntitlementService
	logger     *logger.Logger
}

// NewRoomService creates a new room service
func NewRoomService(repo room.Repository, properties property.Repository, tenants tenant.Repository, gate *EntitlementService, log *logger.Logger) room.Service {
	return &RoomService{
		repo:       repo,
		properties: properties,
		tenants:    tenants,
		gate:       gate,
		logger:     log,
	}
}

// Create adds a room if the owner's plan allows another one
func (s *RoomService) Create(ctx context.Context, r *room.Room) error {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return errors.ValidationError("Room name is required", nil)
	}
	if r.PriceMonthly < 0 {
		return errors.ValidationError("Monthly price must not be negative", nil)
	}
	if r.Status == "" {
		r.Status = room.StatusVacant
	}
	if !validRoomStatus(r.Status) {
		return errors.ValidationError("Invalid room status", nil)
	}

	if _, err := s.properties.GetByID(ctx, r.OwnerID, r.PropertyID); err != nil {
		return err
	}

	if r.TenantID != nil && *r.TenantID != "" {
		if _, err := s.tenants.GetByID(ctx, r.OwnerID, *r.TenantID); err != nil {
			return err
		}
		r.Status = room.StatusOccupied
	}

	if err := s.gate.Authorize(ctx, r.OwnerID, entitlement.ResourceRoom); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, r); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create room")
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"owner_id":    r.OwnerID,
		"property_id": r.PropertyID,
		"room_id":     r.ID,
	}).Info("Room created")

	return nil
}

// GetByID retrieves a room
func (s *RoomService) GetByID(ctx context.Context, ownerID, id string) (*room.Room, error) {
	return s.repo.GetByID(ctx, ownerID, id)
}

// List lists the owner's rooms
func (s *RoomService) List(ctx context.Context, ownerID string, filter room.Filter) ([]*room.Room, error) {
	if filter.Status != "" && !validRoomStatus(filter.Status) {
		return nil, errors.ValidationError("Invalid room status", nil)
	}
	return s.repo.List(ctx, ownerID, filter)
}

// Update applies field changes to a room. Assigning a tenant marks the
// room occupied; clearing it frees an occupied room.
func (s *RoomService) Update(ctx context.Context, ownerID, id string, u room.Update) (*room.Room, error) {
	r, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		if name == "" {
			return nil, errors.ValidationError("Room name is required", nil)
		}
		r.Name = name
	}
	if u.PriceMonthly != nil {
		if *u.PriceMonthly < 0 {
			return nil, errors.ValidationError("Monthly price must not be negative", nil)
		}
		r.PriceMonthly = *u.PriceMonthly
	}
	if u.Status != nil {
		if !validRoomStatus(*u.Status) {
			return nil, errors.ValidationError("Invalid room status", nil)
		}
		r.Status = *u.Status
	}

	if u.TenantID != nil {
		if *u.TenantID == "" {
			r.TenantID = nil
			if r.Status == room.StatusOccupied && u.Status == nil {
				r.Status = room.StatusVacant
			}
		} else {
			if _, err := s.tenants.GetByID(ctx, ownerID, *u.TenantID); err != nil {
				return nil, err
			}
			tenantID := *u.TenantID
			r.TenantID = &tenantID
			r.Status = room.StatusOccupied
		}
	}

	if err := s.repo.Update(ctx, r); err != nil {
		s.logger.ErrorWithErr(err, "Failed to update room")
		return nil, err
	}
	return r, nil
}

// Delete removes a room that is not occupied
func (s *RoomService) Delete(ctx context.Context, ownerID, id string) error {
	r, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return err
	}
	if r.Status == room.StatusOccupied {
		return errors.Conflict("Room is occupied; move the tenant out first")
	}

	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		s.logger.ErrorWithErr(err, "Failed to delete room")
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"owner_id": ownerID,
		"room_id":  id,
	}).Info("Room deleted")
	return nil
}

func validRoomStatus(s room.Status) bool {
	switch s {
	case room.StatusVacant, room.StatusOccupied, room.StatusMaintenance:
		return true
	}
	return false
}
