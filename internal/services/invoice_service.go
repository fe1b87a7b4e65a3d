package services

import (
	"context"

	"github.com/kosbot/kosbot-api/internal/domain/invoice"
	"github.com/kosbot/kosbot-api/internal/domain/tenant"
	"github.com/kosbot/kosbot-api/internal/pkg/errors"
	"github.com/kosbot/kosbot-api/internal/pkg/logger"
	"github.com/kosbot/kosbot-api/internal/pkg/utils"
)

// InvoiceService implements invoice.Service
type InvoiceService struct {
	repo    invoice.Repository
	tenants tenant.Repository
	logger  *logger.Logger
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(repo invoice.Repository, tenants tenant.Repository, log *logger.Logger) invoice.Service {
	return &InvoiceService{
		repo:    repo,
		tenants: tenants,
		logger:  log,
	}
}

// Create bills a tenant
func (s *InvoiceService) Create(ctx context.Context, inv *invoice.Invoice) error {
	if inv.Status == "" {
		inv.Status = invoice.StatusPending
	}
	if err := validateInvoice(inv); err != nil {
		return err
	}

	t, err := s.tenants.GetByID(ctx, inv.OwnerID, inv.TenantID)
	if err != nil {
		return err
	}

	if err := s.repo.Create(ctx, inv); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create invoice")
		return err
	}
	inv.TenantName = t.FullName

	s.logger.WithFields(map[string]interface{}{
		"owner_id":   inv.OwnerID,
		"invoice_id": inv.ID,
		"amount":     inv.Amount,
	}).Info("Invoice created")
	return nil
}

// GetByID retrieves an invoice
func (s *InvoiceService) GetByID(ctx context.Context, ownerID, id string) (*invoice.Invoice, error) {
	return s.repo.GetByID(ctx, ownerID, id)
}

// List lists the owner's invoices
func (s *InvoiceService) List(ctx context.Context, ownerID string, filter invoice.Filter) ([]*invoice.Invoice, error) {
	for _, st := range filter.Statuses {
		if !validInvoiceStatus(st) {
			return nil, errors.ValidationError("Invalid invoice status", nil)
		}
	}
	return s.repo.List(ctx, ownerID, filter)
}

// Update applies field changes to an invoice
func (s *InvoiceService) Update(ctx context.Context, ownerID, id string, u invoice.Update) (*invoice.Invoice, error) {
	inv, err := s.repo.GetByID(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if u.Amount != nil {
		inv.Amount = *u.Amount
	}
	if u.DueDate != nil {
		inv.DueDate = *u.DueDate
	}
	if u.Status != nil {
		inv.Status = *u.Status
		if inv.Status != invoice.StatusPaid {
			inv.PaidAt = nil
		}
	}
	if err := validateInvoice(inv); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, inv); err != nil {
		s.logger.ErrorWithErr(err, "Failed to update invoice")
		return nil, err
	}
	return inv, nil
}

// Delete removes an invoice
func (s *InvoiceService) Delete(ctx context.Context, ownerID, id string) error {
	return s.repo.Delete(ctx, ownerID, id)
}

func validateInvoice(inv *invoice.Invoice) error {
	if inv.Amount <= 0 {
		return errors.ValidationError("Invoice amount must be greater than zero", nil)
	}
	if inv.DueDate == "" {
		return errors.ValidationError("Due date is required", nil)
	}
	if _, err := utils.ParseDate(inv.DueDate); err != nil {
		return errors.ValidationError("Invalid due date", err.Error())
	}
	if !validInvoiceStatus(inv.Status) {
		return errors.ValidationError("Invalid invoice status", nil)
	}
	return nil
}

func validInvoiceStatus(s invoice.Status) bool {
	switch s {
	case invoice.StatusPending, invoice.StatusPaid, invoice.StatusOverdue, invoice.StatusPartial:
		return true
	}
	return false
}
