package services

import (
	"context"
	"strings"

	"github.com/kosbot/kosbot-api/internal/domain/entitlement"
	"github.com/kosbot/kosbot-api/internal/domain/property"
	"github.com/kosbot/kosbot-api/internal/domain/room"
	"github.com/kosbot/kosbot-api/internal/pkg/errors"
	"github.com/kosbot/kosbot-api/internal/pkg/logger"
)

// PropertyService implements property.Service
type PropertyService struct {
	repo   property.Repository
	rooms  room.Repository
	gate   *EntitlementService
	logger *logger.Logger
}

// NewPropertyService creates a new property service
func NewPropertyService(repo property.Repository, rooms room.Repository, gate *EntitlementService, log *logger.Logger) property.Service {
	return &PropertyService{
		repo:   repo,
		rooms:  rooms,
		gate:   gate,
		logger: log,
	}
}

// Create adds a property if the owner's plan allows another one
func (s *PropertyService) Create(ctx context.Context, p *property.Property) error {
	p.Name = strings.TrimSpace(p.Name)
	if p.Name == "" {
		return errors.ValidationError("Property name is required", nil)
	}

	if err := s.gate.Authorize(ctx, p.OwnerID, entitlement.ResourceProperty); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create property")
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"owner_id":    p.OwnerID,
		"property_id": p.ID,
	}).Info("Property created")

	return nil
}

// GetByID retrieves a property
func (s *PropertyService) GetByID(ctx context.Context, ownerID, id string) (*property.Property, error) {
	return s.repo.GetByID(ctx, ownerID, id)
}

// List lists the owner's properties
func (s *PropertyService) List(ctx context.Context, ownerID string) ([]*property.Property, error) {
	return s.repo.List(ctx, ownerID)
}

// Update applies field changes to a property
func (s *PropertyService) Update(ctx context.Context, ownerID, id string, u property.Update) (*property.Property, error) {
	p, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		if name == "" {
			return nil, errors.ValidationError("Property name is required", nil)
		}
		p.Name = name
	}
	if u.Address != nil {
		p.Address = *u.Address
	}
	if u.City != nil {
		p.City = *u.City
	}

	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.ErrorWithErr(err, "Failed to update property")
		return nil, err
	}
	return p, nil
}

// Delete removes a property that has no rooms left
func (s *PropertyService) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := s.repo.GetByID(ctx, ownerID, id); err != nil {
		return err
	}

	n, err := s.rooms.Count(ctx, ownerID, room.Filter{PropertyID: id})
	if err != nil {
		return err
	}
	if n > 0 {
		return errors.Conflict("Property still has rooms; delete them first").
			WithDetails(map[string]interface{}{"rooms": n})
	}

	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		s.logger.ErrorWithErr(err, "Failed to delete property")
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"owner_id":    ownerID,
		"property_id": id,
	}).Info("Property deleted")
	return nil
}
