package services

import (
	"context"
	"strings"
	"time"

	"github.com/kosbot/kosbot-api/internal/domain/property"
	"github.com/kosbot/kosbot-api/internal/domain/room"
	"github.com/kosbot/kosbot-api/internal/domain/tenant"
	"github.com/kosbot/kosbot-api/internal/pkg/errors"
	"github.com/kosbot/kosbot-api/internal/pkg/logger"
	"github.com/kosbot/kosbot-api/internal/pkg/utils"
)

// TenantService implements tenant.Service
type TenantService struct {
	repo       tenant.Repository
	properties property.Repository
	rooms      room.Repository
	logger     *logger.Logger
	now        func() time.Time
}

// NewTenantService creates a new tenant service
func NewTenantService(repo tenant.Repository, properties property.Repository, rooms room.Repository, log *logger.Logger) *TenantService {
	return &TenantService{
		repo:       repo,
		properties: properties,
		rooms:      rooms,
		logger:     log,
		now:        time.Now,
	}
}

// Create adds a tenant to one of the owner's properties
func (s *TenantService) Create(ctx context.Context, t *tenant.Tenant) error {
	t.FullName = strings.TrimSpace(t.FullName)
	if err := validateTenant(t); err != nil {
		return err
	}

	if _, err := s.properties.GetByID(ctx, t.OwnerID, t.PropertyID); err != nil {
		return err
	}
	if err := s.checkRoom(ctx, t); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, t); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create tenant")
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"owner_id":  t.OwnerID,
		"tenant_id": t.ID,
	}).Info("Tenant created")
	return nil
}

// GetByID retrieves a tenant
func (s *TenantService) GetByID(ctx context.Context, ownerID, id string) (*tenant.Tenant, error) {
	return s.repo.GetByID(ctx, ownerID, id)
}

// List lists the owner's tenants
func (s *TenantService) List(ctx context.Context, ownerID string, filter tenant.Filter) ([]*tenant.Tenant, error) {
	return s.repo.List(ctx, ownerID, filter)
}

// Update applies field changes to a tenant
func (s *TenantService) Update(ctx context.Context, ownerID, id string, u tenant.Update) (*tenant.Tenant, error) {
	t, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if u.FullName != nil {
		t.FullName = strings.TrimSpace(*u.FullName)
	}
	if u.Phone != nil {
		t.Phone = *u.Phone
	}
	if u.StartDate != nil {
		t.StartDate = *u.StartDate
	}
	if u.EndDate != nil {
		if *u.EndDate == "" {
			t.EndDate = nil
		} else {
			end := *u.EndDate
			t.EndDate = &end
		}
	}
	if u.DepositAmount != nil {
		t.DepositAmount = *u.DepositAmount
	}
	if u.RoomID != nil {
		if *u.RoomID == "" {
			t.RoomID = nil
		} else {
			roomID := *u.RoomID
			t.RoomID = &roomID
		}
	}

	if err := validateTenant(t); err != nil {
		return nil, err
	}
	if u.RoomID != nil {
		if err := s.checkRoom(ctx, t); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, t); err != nil {
		s.logger.ErrorWithErr(err, "Failed to update tenant")
		return nil, err
	}
	return t, nil
}

// Delete removes a tenant
func (s *TenantService) Delete(ctx context.Context, ownerID, id string) error {
	if err := s.repo.Delete(ctx, ownerID, id); err != nil {
		return err
	}
	s.logger.WithFields(map[string]interface{}{
		"owner_id":  ownerID,
		"tenant_id": id,
	}).Info("Tenant deleted")
	return nil
}

// Leases lists active leases, flagging those that end soon
func (s *TenantService) Leases(ctx context.Context, ownerID string) ([]tenant.Lease, error) {
	now := s.now().UTC()
	today := utils.FormatDate(now)

	tenants, err := s.repo.List(ctx, ownerID, tenant.Filter{ActiveOn: today})
	if err != nil {
		return nil, err
	}

	leases := make([]tenant.Lease, 0, len(tenants))
	for _, t := range tenants {
		lease := tenant.Lease{Tenant: t}
		if t.EndDate != nil {
			if end, err := utils.ParseDate(*t.EndDate); err == nil {
				days := utils.DaysBetween(now, end)
				lease.DaysLeft = &days
				lease.EndingSoon = days <= tenant.EndingSoonWindow
			}
		}
		leases = append(leases, lease)
	}
	return leases, nil
}

func (s *TenantService) checkRoom(ctx context.Context, t *tenant.Tenant) error {
	if t.RoomID == nil {
		return nil
	}
	r, err := s.rooms.GetByID(ctx, t.OwnerID, *t.RoomID)
	if err != nil {
		return err
	}
	if r.PropertyID != t.PropertyID {
		return errors.ValidationError("Room does not belong to the tenant's property", nil)
	}
	return nil
}

func validateTenant(t *tenant.Tenant) error {
	if t.FullName == "" {
		return errors.ValidationError("Tenant name is required", nil)
	}
	if t.DepositAmount < 0 {
		return errors.ValidationError("Deposit must not be negative", nil)
	}
	start, err := utils.ParseDate(t.StartDate)
	if err != nil {
		return errors.ValidationError("Invalid lease start date", err.Error())
	}
	if t.EndDate != nil {
		end, err := utils.ParseDate(*t.EndDate)
		if err != nil {
			return errors.ValidationError("Invalid lease end date", err.Error())
		}
		if end.Before(start) {
			return errors.ValidationError("Lease end date is before its start date", nil)
		}
	}
	return nil
}
